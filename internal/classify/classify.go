package classify

import (
	"regexp"
	"strings"
)

// Category identifiers. Coarse parents only; fine-grained subcategories
// belong to downstream post-processing.
const (
	CategoryConsole int64 = 1000
	CategoryMovies  int64 = 2000
	CategoryAudio   int64 = 3000
	CategoryPC      int64 = 4000
	CategoryTV      int64 = 5000
	CategoryXXX     int64 = 6000
	CategoryBooks   int64 = 7000
	CategoryOther   int64 = 8000
)

// Classifier determines the category for a canonical title posted in a group.
type Classifier interface {
	Classify(title, group string) int64
}

// rule maps a title or group pattern to a category. Rules are evaluated in
// order; the first hit wins.
type rule struct {
	pattern  *regexp.Regexp
	onGroup  bool
	category int64
}

var rules = []rule{
	// Group-scoped rules first: the posting channel is a stronger signal
	// than title keywords.
	{pattern: regexp.MustCompile(`(?i)\b(teevee|tvseries|hdtv)\b`), onGroup: true, category: CategoryTV},
	{pattern: regexp.MustCompile(`(?i)\b(moovee|movies|x264\.bluray)\b`), onGroup: true, category: CategoryMovies},
	{pattern: regexp.MustCompile(`(?i)\b(sounds|mp3|flac|lossless)\b`), onGroup: true, category: CategoryAudio},
	{pattern: regexp.MustCompile(`(?i)\b(erotica|kleverig)\b`), onGroup: true, category: CategoryXXX},
	{pattern: regexp.MustCompile(`(?i)\b(games|console|nintendo|playstation|xbox)\b`), onGroup: true, category: CategoryConsole},
	{pattern: regexp.MustCompile(`(?i)\b(e-?books?|ebook)\b`), onGroup: true, category: CategoryBooks},

	// Title-scoped rules.
	{pattern: regexp.MustCompile(`(?i)\bS\d{1,3}[ ._-]?E\d{1,3}\b`), category: CategoryTV},
	{pattern: regexp.MustCompile(`(?i)\b\d{1,2}x\d{2}\b`), category: CategoryTV},
	{pattern: regexp.MustCompile(`(?i)\b(HDTV|PDTV|DSR)\b`), category: CategoryTV},
	{pattern: regexp.MustCompile(`(?i)\bXXX\b`), category: CategoryXXX},
	{pattern: regexp.MustCompile(`(?i)\b(NSW|WiiU|PS[345]|XBOX(360|ONE)?)\b`), category: CategoryConsole},
	{pattern: regexp.MustCompile(`(?i)\b(FLAC|MP3|WEB-?FLAC|CDDA)\b`), category: CategoryAudio},
	{pattern: regexp.MustCompile(`(?i)\b(EPUB|MOBI|RETAiL-?EBOOK|COMICS?)\b`), category: CategoryBooks},
	{pattern: regexp.MustCompile(`(?i)\b(MacOSX?|WiN(32|64|ALL)?|KeyGen|Cracked|x86|x64)\b`), category: CategoryPC},
	{pattern: regexp.MustCompile(`(?i)\b(720p|1080p|2160p|BluRay|BDRiP|DVDRip|WEB-?DL|WEBRip|HDRip)\b`), category: CategoryMovies},
	{pattern: regexp.MustCompile(`(?i)\b(19|20)\d{2}\b.*\b(x264|x265|XviD|DivX)\b`), category: CategoryMovies},
}

// Keyword returns the default keyword-rule classifier.
func Keyword() Classifier {
	return keywordClassifier{}
}

type keywordClassifier struct{}

func (keywordClassifier) Classify(title, group string) int64 {
	title = strings.TrimSpace(title)
	group = strings.TrimSpace(group)

	for _, r := range rules {
		subject := title
		if r.onGroup {
			subject = group
		}
		if subject == "" {
			continue
		}
		if r.pattern.MatchString(subject) {
			return r.category
		}
	}
	return CategoryOther
}

// Func adapts a plain function to the Classifier interface.
type Func func(title, group string) int64

func (f Func) Classify(title, group string) int64 {
	return f(title, group)
}
