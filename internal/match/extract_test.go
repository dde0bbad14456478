package match

import (
	"testing"
)

func TestExtractIdentifier(t *testing.T) {
	cases := []struct {
		name     string
		rawTitle string
		expected int64
		present  bool
	}{
		{"generic bracket", "[12345] - Some.Show.S02E04.720p", 12345, true},
		{"bracket with spaces", "[ 4321 ] something", 4321, true},
		{"source tag beats generic bracket", `[111] [scnzb@efnet][222] "title"`, 222, true},
		{"source tag spacing", `[ #scnzb@efnet ][333] "title"`, 333, true},
		{"request marker", "REQ 12345 Some.Title", 12345, true},
		{"request marker lowercase", "req123456 Some.Title", 123456, true},
		{"leading digits dash bracket", "12345-1[FULL] Some.Title", 12345, true},
		{"digits space dash", "54321 - Some.Title yEnc", 54321, true},
		{"zero in source tag fails outright", `[scnzb@efnet][0] REQ 12345`, 0, false},
		{"zero generic bracket", "[0] Some.Title", 0, false},
		{"no identifier", `"My.Great.Title.avi" yEnc (1/20)`, 0, false},
		{"request marker too short", "REQ 123 Some.Title", 0, false},
		{"empty", "", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			value, present := ExtractIdentifier(tc.rawTitle)
			if present != tc.present || value != tc.expected {
				t.Fatalf("ExtractIdentifier(%q) = (%d, %v), want (%d, %v)",
					tc.rawTitle, value, present, tc.expected, tc.present)
			}
		})
	}
}

func TestIdentifierRulesIndependently(t *testing.T) {
	for _, rule := range identifierRules {
		if rule.pattern.NumSubexp() < 1 {
			t.Fatalf("rule %s has no capture group", rule.name)
		}
	}

	// The generic bracket rule also matches the source-tag suffix; rule
	// order is what keeps the source-tag capture authoritative.
	raw := `[scnzb@efnet][777] x`
	if got := identifierRules[1].pattern.FindStringSubmatch(raw); got == nil {
		t.Fatal("generic rule should match the bracketed digits too")
	}
	got := identifierRules[0].pattern.FindStringSubmatch(raw)
	if got == nil || got[1] != "777" {
		t.Fatalf("source tag rule capture = %v", got)
	}
}
