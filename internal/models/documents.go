// Package models defines the source document shapes and the tabular types
// shared by the scraper pipeline.
package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FlexString is a string that also accepts bare JSON numbers. The upstream
// feed is inconsistent about quoting identifiers and vote counts, so every
// field that may arrive as either form uses this type.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) == 0 || string(data) == "null" {
		*f = ""

		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		*f = FlexString(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}

	*f = FlexString(n.String())

	return nil
}

// String returns the underlying string value.
func (f FlexString) String() string {
	return string(f)
}

// VersionDocument is the version marker published next to the election
// documents. Its version value is embedded in the fallback URL path once the
// election has been finalized upstream.
type VersionDocument struct {
	Version FlexString `json:"Version"`
}

// PartyRecord describes one party in the lookup document.
type PartyRecord struct {
	Name string `json:"NM"`
}

// CandidateRecord describes one candidate in the lookup document. Party is a
// reference into LookupDocument.PartyIDs.
type CandidateRecord struct {
	Name  string     `json:"NM"`
	Party FlexString `json:"P"`
}

// OfficeRecord describes one contested office.
type OfficeRecord struct {
	Name string `json:"NM"`
}

// LookupDocument is the reference document mapping opaque identifiers to
// display names for a single election.
type LookupDocument struct {
	TownIDs      map[string]string          `json:"townIds"`
	PartyIDs     map[string]PartyRecord     `json:"partyIds"`
	CandidateIDs map[string]CandidateRecord `json:"candidateIds"`
	// OfficeList is a sequence of single-entry maps. Duplicate office ids
	// across entries resolve last-wins; see normalizer.OfficeMap.
	OfficeList []map[string]OfficeRecord `json:"officeList"`
}

// Tally holds one candidate's vote count and percentage for one office in
// one town. The percentage keeps upstream formatting ("55%") and is never
// coerced.
type Tally struct {
	Votes   FlexString `json:"V"`
	Percent FlexString `json:"TO"`
}

// TurnoutRecord holds the per-town turnout figures.
type TurnoutRecord struct {
	Name       string     `json:"NM"`
	Electors   FlexString `json:"EV"`
	VotesCast  FlexString `json:"VV"`
	TurnoutPct FlexString `json:"TO"`
}

// StatusRecord holds the per-town reporting status.
type StatusRecord struct {
	PrecinctsReported string `json:"PR"`
}

// ElectionDocument is the per-election results payload. TownVotes nests
// town id → office id → candidate-tally entries, where each entry is a
// single-entry map keyed by candidate id.
type ElectionDocument struct {
	TownVotes    map[string]map[string][]map[string]Tally `json:"townVotes"`
	VoterTurnout map[string]TurnoutRecord                  `json:"voterTurnout"`
	TownStatus   map[string]StatusRecord                   `json:"townStatus"`
}

// RunMetadata identifies one scraper run. It is attached as extra columns to
// every published table.
type RunMetadata struct {
	ElectionID int
	Version    string
	ScrapedAt  string
}

var _ json.Unmarshaler = (*FlexString)(nil)

// Int64 parses the value as an integer after stripping thousands
// separators. The second return is false when the value does not parse.
func (f FlexString) Int64() (int64, bool) {
	s := string(f)
	if s == "" {
		return 0, false
	}

	cleaned := make([]byte, 0, len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			continue
		}

		cleaned = append(cleaned, s[i])
	}

	v, err := strconv.ParseInt(string(cleaned), 10, 64)
	if err != nil {
		return 0, false
	}

	return v, true
}
