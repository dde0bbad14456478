package match

import (
	"regexp"
	"strconv"
)

// identifierRule pairs a structural pattern with a name so each rule is
// independently testable. The capture group holds the candidate identifier.
type identifierRule struct {
	name    string
	pattern *regexp.Regexp
}

// Ordered most specific first. The first rule that matches structurally
// decides the outcome; a non-positive capture fails extraction outright
// rather than falling through to a weaker rule.
var identifierRules = []identifierRule{
	{name: "source_tag", pattern: regexp.MustCompile(`\[ ?#?scnzb@?efnet ?\]\[(\d+)\]`)},
	{name: "bracketed", pattern: regexp.MustCompile(`\[\s*(\d+)\s*\]`)},
	{name: "request_marker", pattern: regexp.MustCompile(`(?i)^REQ\s*(\d{4,6})`)},
	{name: "leading_digits", pattern: regexp.MustCompile(`^(\d{4,6})-\d\[`)},
	{name: "digits_dash", pattern: regexp.MustCompile(`(\d{4,6}) -`)},
}

// ExtractIdentifier parses the correlation identifier out of a raw release
// title. The second return is false when no rule matched or the matched
// value was not strictly positive.
func ExtractIdentifier(rawTitle string) (int64, bool) {
	for _, rule := range identifierRules {
		captures := rule.pattern.FindStringSubmatch(rawTitle)
		if captures == nil {
			continue
		}
		value, err := strconv.ParseInt(captures[1], 10, 64)
		if err != nil || value <= 0 {
			return 0, false
		}
		return value, true
	}
	return 0, false
}
