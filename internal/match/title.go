package match

import (
	"regexp"
)

// The strict pattern handles fully decorated postings: a bracketed
// sequence number, optional content tags, the source-tag bracket, then a
// quoted or bracketed title with file-extension and volume/part decoration
// stripped, optionally followed by a quoted or dash-separated filename.
var titleStrictPattern = regexp.MustCompile(
	`(?i)^\[\s*\d+\s*\][ -]+(\[(ISO|FULL|PART|MP3|0DAY|android)\][ -]+)?` +
		`\[(alt-?bin| ?#?a[a-z0-9. -]+)((@?ef{1,2})?net)? ?\]` +
		`[ -]+(\[(ISO|FULL|PART|MP3|0DAY|android)\][ -]+)?(\[\s*\d+\s*\][ -]+)?(\[\d+/\d+\][ -]+)?("|\[)\s*` +
		`(?P<title>.+?)(\.+(vol\d+\+\d+\.)?(-cd\d\.)?(avi|jpg|nzb|m3u|mkv|par2|part\d+|nfo|sample|sfv|rar|r?\d{1,3}|\d+|zip)*)?\s*("|\])` +
		`[ -]*(\[\d+/\d+\][ -]*)?(("\s*(?P<filename1>.+?)([-.]sample)?([-.]cd(\d|[ab]))?(\.+(vol\d+\+\d+\.)?([-.]d\d\.)?([-.]part\d+)?` +
		`(avi|jpg|nzb|m3u|mkv|par2|nfo|sample|sfv|rar|r?\d{1,3}|\d+|zip)*)?\s*")| - (?P<filename2>.+?) (yEnc|\(\d+/\d+\)))?.*`,
)

// The loose fallback only needs a quoted title with an extension cluster.
var titleLoosePattern = regexp.MustCompile(
	`(?i)"\s*(?P<title>.+?)(\.+(vol\d+\+\d+\.)?(-cd\d\.)?` +
		`(avi|jpg|nzb|m3u|mkv|par2|part\d+|nfo|sample|sfv|rar|r?\d{1,3}|\d+|zip)*)\s*".*`,
)

var titlePatterns = []*regexp.Regexp{titleStrictPattern, titleLoosePattern}

// titleExtraction is the canonical title (and optional filename) isolated
// from a decorated posting.
type titleExtraction struct {
	title    string
	filename string
}

// extractCanonicalTitle strips network-posting decoration from a raw
// release title. Patterns run in order; first structural match wins.
func extractCanonicalTitle(rawTitle string) (titleExtraction, bool) {
	for _, pattern := range titlePatterns {
		captures := pattern.FindStringSubmatch(rawTitle)
		if captures == nil {
			continue
		}

		var out titleExtraction
		for i, name := range pattern.SubexpNames() {
			if i >= len(captures) || captures[i] == "" {
				continue
			}
			switch name {
			case "title":
				out.title = captures[i]
			case "filename1", "filename2":
				if out.filename == "" {
					out.filename = captures[i]
				}
			}
		}
		if out.title == "" {
			continue
		}
		return out, true
	}
	return titleExtraction{}, false
}
