package match

import (
	"testing"
)

func TestExtractCanonicalTitleStrict(t *testing.T) {
	raw := `[123456]-[FULL]-[#a.b.teevee@efnet]-[01/42]-"Some.Show.S02E04.720p.HDTV.rar"`
	extraction, ok := extractCanonicalTitle(raw)
	if !ok {
		t.Fatalf("no pattern matched %q", raw)
	}
	if extraction.title != "Some.Show.S02E04.720p.HDTV" {
		t.Fatalf("title = %q", extraction.title)
	}
}

func TestExtractCanonicalTitleStrictWithFilename(t *testing.T) {
	raw := `[123456] - [#a.b.teevee@efnet] - "Some.Show.S02E04.HDTV" - "some.show.s02e04.rar" yEnc`
	extraction, ok := extractCanonicalTitle(raw)
	if !ok {
		t.Fatalf("no pattern matched %q", raw)
	}
	if extraction.title != "Some.Show.S02E04.HDTV" {
		t.Fatalf("title = %q", extraction.title)
	}
	if extraction.filename != "some.show.s02e04" {
		t.Fatalf("filename = %q", extraction.filename)
	}
}

func TestExtractCanonicalTitleLooseFallback(t *testing.T) {
	// No sequence-number bracket, no source tag: only the loose quoted
	// pattern applies.
	raw := `"My.Great.Title.avi" yEnc (1/20)`
	extraction, ok := extractCanonicalTitle(raw)
	if !ok {
		t.Fatalf("no pattern matched %q", raw)
	}
	if extraction.title != "My.Great.Title" {
		t.Fatalf("title = %q", extraction.title)
	}
	if extraction.filename != "" {
		t.Fatalf("unexpected filename %q", extraction.filename)
	}
}

func TestExtractCanonicalTitleStripsVolumeDecoration(t *testing.T) {
	raw := `[99] "Some.Album.vol12+34.par2" yEnc`
	extraction, ok := extractCanonicalTitle(raw)
	if !ok {
		t.Fatalf("no pattern matched %q", raw)
	}
	if extraction.title != "Some.Album" {
		t.Fatalf("title = %q", extraction.title)
	}
}

func TestExtractCanonicalTitleNoMatch(t *testing.T) {
	for _, raw := range []string{
		"completely undecorated posting",
		"",
	} {
		if _, ok := extractCanonicalTitle(raw); ok {
			t.Fatalf("expected no extraction for %q", raw)
		}
	}
}
