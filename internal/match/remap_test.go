package match

import (
	"testing"
)

func TestRemapGroup(t *testing.T) {
	cases := []struct {
		name     string
		group    string
		rawTitle string
		expected string
		ok       bool
	}{
		{"literal etc group", "alt.binaries.etc", "[123] whatever", "alt.binaries.teevee", true},
		{"teevee keyword", "alt.binaries.misc", "[123] teevee repost", "alt.binaries.teevee", true},
		{"moovee keyword", "alt.binaries.misc", "moovee [123] film", "alt.binaries.moovee", true},
		{"foreign maps to mom", "alt.binaries.misc", "[123] foreign film", "alt.binaries.mom", true},
		{"scnzb maps to boneless", "alt.binaries.misc", "[scnzb@efnet][123] x", "alt.binaries.boneless", true},
		{"hdtv keyword", "alt.binaries.misc", "posted via hdtv.x264 [123]", "alt.binaries.hdtv.x264", true},
		{"sounds flac", "alt.binaries.misc", "repost from sounds.flac [123]", "alt.binaries.sounds.flac", true},
		{"literal beats keyword", "alt.binaries.etc", "[123] moovee film", "alt.binaries.teevee", true},
		{"no rule", "alt.binaries.misc", "[123] plain title", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := RemapGroup(tc.group, tc.rawTitle)
			if ok != tc.ok || got != tc.expected {
				t.Fatalf("RemapGroup(%q, %q) = (%q, %v), want (%q, %v)",
					tc.group, tc.rawTitle, got, ok, tc.expected, tc.ok)
			}
		})
	}
}
