package match

import (
	"strings"
)

// remapRule maps a noisy group or title keyword to the canonical group the
// catalog actually indexes. literalGroup rules compare the posting group
// exactly; keyword rules look for the substring in the raw title.
type remapRule struct {
	literalGroup string
	keyword      string
	target       string
}

// Fixed priority order; exactly one rule fires per call.
var remapRules = []remapRule{
	{literalGroup: "alt.binaries.etc", target: "alt.binaries.teevee"},
	{keyword: "teevee", target: "alt.binaries.teevee"},
	{keyword: "moovee", target: "alt.binaries.moovee"},
	{keyword: "erotica", target: "alt.binaries.erotica"},
	{keyword: "foreign", target: "alt.binaries.mom"},
	{keyword: "inner-sanctum", target: "alt.binaries.inner-sanctum"},
	{keyword: "sounds.flac", target: "alt.binaries.sounds.flac"},
	{keyword: "scnzb", target: "alt.binaries.boneless"},
	{keyword: "hdtv.x264", target: "alt.binaries.hdtv.x264"},
}

// RemapGroup maps an unreliable posting group to its canonical alternate.
// The second return is false when no rule applies.
func RemapGroup(group, rawTitle string) (string, bool) {
	for _, rule := range remapRules {
		if rule.literalGroup != "" {
			if group == rule.literalGroup {
				return rule.target, true
			}
			continue
		}
		if strings.Contains(rawTitle, rule.keyword) {
			return rule.target, true
		}
	}
	return "", false
}
