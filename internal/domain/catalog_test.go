package domain

import (
	"reflect"
	"testing"
)

var testMaster = []CatalogEntry{
	{ID: "A1", Description: "Bolt M4"},
	{ID: "A2", Description: "Bolt M4 stainless"},
	{ID: "A3", Description: "Bolt M6"},
	{ID: "B1", Description: "Hex nut M4"},
	{ID: "B2", Description: "Washer M4 zinc"},
	{ID: "C1", Description: "Lock washer M4\r\n"},
}

func TestNormalizeDescription(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bolt M4", "bolt m4"},
		{"  Bolt M4  ", "bolt m4"},
		{"Bolt M4\r\n", "bolt m4"},
		{"BOLT\nM4", "boltm4"},
		{"", ""},
		{"\r\n", ""},
	}
	for _, tt := range tests {
		if got := NormalizeDescription(tt.in); got != tt.want {
			t.Errorf("NormalizeDescription(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{
			name:  "empty_query_yields_nothing",
			query: "   ",
			want:  nil,
		},
		{
			name:  "no_match",
			query: "gasket",
			want:  []string{},
		},
		{
			name:  "prefix_matches_before_substring_matches",
			query: "bolt m4",
			want:  []string{"Bolt M4", "Bolt M4 stainless"},
		},
		{
			name:  "substring_ordered_by_distance",
			query: "m4",
			want: []string{
				"Bolt M4",
				"Hex nut M4",
				"Lock washer M4\r\n",
				"Washer M4 zinc",
				"Bolt M4 stainless",
			},
		},
		{
			name:  "limit_caps_results",
			query: "m4",
			limit: 2,
			want:  []string{"Bolt M4", "Hex nut M4"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := Search(testMaster, tt.query, tt.limit)
			if tt.want == nil {
				if entries != nil {
					t.Fatalf("Search(%q) = %v, want nil", tt.query, entries)
				}
				return
			}
			got := make([]string, 0, len(entries))
			for _, e := range entries {
				got = append(got, e.Description)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Search(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		wantID string
		wantOK bool
	}{
		{"exact", "Bolt M4", "A1", true},
		{"case_insensitive", "bolt m4", "A1", true},
		{"surrounding_space", "  Bolt M4  ", "A1", true},
		{"master_entry_with_crlf", "Lock washer M4", "C1", true},
		{"prefix_is_not_a_match", "Bolt M4x", "", false},
		{"empty", "", "", false},
		{"only_line_endings", "\r\n", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, ok := Resolve(testMaster, tt.text)
			if ok != tt.wantOK || entry.ID != tt.wantID {
				t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)",
					tt.text, entry.ID, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}
