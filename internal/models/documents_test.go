package models

import (
	"encoding/json"
	"testing"
)

func TestFlexString_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"quoted string", `"1,234"`, "1,234"},
		{"bare number", `1234`, "1234"},
		{"bare float keeps formatting", `55.5`, "55.5"},
		{"null becomes empty", `null`, ""},
		{"empty string", `""`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexString
			if err := json.Unmarshal([]byte(tt.input), &f); err != nil {
				t.Fatalf("Unmarshal(%s) returned error: %v", tt.input, err)
			}

			if f.String() != tt.want {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.input, f.String(), tt.want)
			}
		})
	}
}

func TestFlexString_Int64(t *testing.T) {
	tests := []struct {
		name   string
		input  FlexString
		want   int64
		wantOK bool
	}{
		{"plain integer", "1234", 1234, true},
		{"comma grouped", "1,234", 1234, true},
		{"large comma grouped", "1,234,567", 1234567, true},
		{"empty", "", 0, false},
		{"text", "n/a", 0, false},
		{"percentage", "55%", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.input.Int64()
			if ok != tt.wantOK {
				t.Fatalf("Int64(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}

			if ok && got != tt.want {
				t.Errorf("Int64(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestElectionDocument_Unmarshal(t *testing.T) {
	raw := `{
		"townVotes": {"5": {"10": [{"100": {"V": "1,234", "TO": "55%"}}]}},
		"voterTurnout": {"5": {"NM": "Hartford", "EV": 10000, "VV": "5,500", "TO": "55%"}},
		"townStatus": {"5": {"PR": "12 of 20"}}
	}`

	var doc ElectionDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}

	tally := doc.TownVotes["5"]["10"][0]["100"]
	if tally.Votes != "1,234" {
		t.Errorf("Votes = %q, want 1,234", tally.Votes)
	}

	if tally.Percent != "55%" {
		t.Errorf("Percent = %q, want 55%%", tally.Percent)
	}

	turnout := doc.VoterTurnout["5"]
	if turnout.Electors != "10000" {
		t.Errorf("Electors = %q, want 10000 (bare number accepted)", turnout.Electors)
	}

	if doc.TownStatus["5"].PrecinctsReported != "12 of 20" {
		t.Errorf("PrecinctsReported = %q, want 12 of 20", doc.TownStatus["5"].PrecinctsReported)
	}
}
