// Package normalizer converts the raw lookup and election documents into the
// two flat tables the scraper publishes.
package normalizer

import (
	"sort"
	"strconv"

	"github.com/ang-eichhorst/2025municipalelections/internal/models"
)

// Results table column names.
const (
	ColTownName      = "town_name"
	ColOfficeName    = "office_name"
	ColCandidateName = "candidate_name"
	ColParty         = "party"
	ColVotes         = "votes"
	ColPercent       = "percent"
	ColTownID        = "town_id"
	ColOfficeID      = "office_id"
	ColCandidateID   = "candidate_id"
)

// Turnout table column names.
const (
	ColPrecinctsReported = "precincts_reported"
	ColElectors          = "electors"
	ColVotesCast         = "votes_cast"
	ColTurnoutPercent    = "turnout_percent"
)

// ResultsColumns returns the results table header in order.
func ResultsColumns() []string {
	return []string{
		ColTownName, ColOfficeName, ColCandidateName, ColParty,
		ColVotes, ColPercent, ColTownID, ColOfficeID, ColCandidateID,
	}
}

// TurnoutColumns returns the turnout table header in order.
func TurnoutColumns() []string {
	return []string{
		ColTownID, ColTownName, ColPrecinctsReported,
		ColElectors, ColVotesCast, ColTurnoutPercent,
	}
}

// OfficeMap merges the officeList sequence of single-entry maps into one
// office-id → name map. A duplicate office id across entries resolves
// last-wins; that mirrors an upstream format quirk and is deliberate.
func OfficeMap(officeList []map[string]models.OfficeRecord) map[string]string {
	out := make(map[string]string, len(officeList))

	for _, entry := range officeList {
		for id, office := range entry {
			out[id] = office.Name
		}
	}

	return out
}

// TownName resolves a town id to its display name, empty string on a miss.
func TownName(lookup *models.LookupDocument, townID string) string {
	return lookup.TownIDs[townID]
}

// OfficeName resolves an office id against a merged office map, empty string
// on a miss.
func OfficeName(offices map[string]string, officeID string) string {
	return offices[officeID]
}

// Candidate resolves a candidate id; a miss yields a zero record whose name
// and party reference are empty.
func Candidate(lookup *models.LookupDocument, candidateID string) models.CandidateRecord {
	return lookup.CandidateIDs[candidateID]
}

// PartyName resolves a party id to its display name, empty string on a miss.
func PartyName(lookup *models.LookupDocument, partyID string) string {
	return lookup.PartyIDs[partyID].Name
}

// NumericCell coerces a comma-grouped decimal value to an int64 cell. Values
// that do not parse become a nil cell, never an error.
func NumericCell(v models.FlexString) any {
	n, ok := v.Int64()
	if !ok {
		return nil
	}

	return n
}

// BuildResults produces one row per candidate-tally entry in townVotes.
// Identifier resolution misses degrade to empty strings. An election with no
// townVotes yields an empty table with no columns defined.
func BuildResults(lookup *models.LookupDocument, election *models.ElectionDocument) *models.Table {
	if len(election.TownVotes) == 0 {
		return &models.Table{}
	}

	offices := OfficeMap(lookup.OfficeList)
	table := models.NewTable(ResultsColumns()...)

	for _, townID := range sortedIDs(election.TownVotes) {
		contests := election.TownVotes[townID]

		for _, officeID := range sortedIDs(contests) {
			for _, entry := range contests[officeID] {
				for _, candidateID := range sortedIDs(entry) {
					tally := entry[candidateID]
					candidate := Candidate(lookup, candidateID)

					table.AppendRow(
						TownName(lookup, townID),
						OfficeName(offices, officeID),
						candidate.Name,
						PartyName(lookup, candidate.Party.String()),
						NumericCell(tally.Votes),
						tally.Percent.String(),
						townID,
						officeID,
						candidateID,
					)
				}
			}
		}
	}

	return table
}

// BuildTurnout produces one row per town in voterTurnout. The precincts
// reported value is cross-referenced from townStatus; a town missing there
// still gets a row with an empty precincts field.
func BuildTurnout(election *models.ElectionDocument) *models.Table {
	if len(election.VoterTurnout) == 0 {
		return &models.Table{}
	}

	table := models.NewTable(TurnoutColumns()...)

	for _, townID := range sortedIDs(election.VoterTurnout) {
		turnout := election.VoterTurnout[townID]
		status := election.TownStatus[townID]

		table.AppendRow(
			townID,
			turnout.Name,
			status.PrecinctsReported,
			NumericCell(turnout.Electors),
			NumericCell(turnout.VotesCast),
			turnout.TurnoutPct.String(),
		)
	}

	return table
}

// sortedIDs returns the map keys in a stable order: numerically where both
// keys parse as integers, lexically otherwise. The source documents are
// keyed by opaque ids, so this pins the row order across runs.
func sortedIDs[V any](m map[string]V) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		return idLess(ids[i], ids[j])
	})

	return ids
}

func idLess(a, b string) bool {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)

	if aErr == nil && bErr == nil {
		return ai < bi
	}

	return a < b
}
