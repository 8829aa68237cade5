// Package validator runs sanity checks over the fetched documents before
// normalization. It is not a schema validator; it only guards against
// obviously truncated or mismatched feeds.
package validator

import (
	"fmt"

	"github.com/ang-eichhorst/2025municipalelections/internal/config"
	"github.com/ang-eichhorst/2025municipalelections/internal/models"
)

// Result holds document check findings. Warnings never fail a run; Errors
// fail it only in strict mode.
type Result struct {
	Warnings []string
	Errors   []string
}

// IsValid reports whether no errors were found.
func (r *Result) IsValid() bool {
	return len(r.Errors) == 0
}

// Validator checks fetched documents against configured thresholds.
type Validator struct {
	minTowns int
}

// New creates a validator from the validation config.
func New(cfg config.ValidationConfig) *Validator {
	return &Validator{minTowns: cfg.MinTowns}
}

// Check inspects one lookup/election document pair.
func (v *Validator) Check(lookup *models.LookupDocument, election *models.ElectionDocument) *Result {
	result := &Result{}

	if len(lookup.TownIDs) < v.minTowns {
		result.Errors = append(result.Errors,
			fmt.Sprintf("lookup has %d towns, expected at least %d", len(lookup.TownIDs), v.minTowns))
	}

	if len(election.TownVotes) == 0 {
		result.Warnings = append(result.Warnings, "election has no townVotes; results table will be empty")
	}

	if len(election.VoterTurnout) == 0 {
		result.Warnings = append(result.Warnings, "election has no voterTurnout; turnout table will be empty")
	}

	// Unresolved identifiers degrade to empty strings during normalization,
	// so they are surfaced here only as aggregate warnings.
	unresolvedTowns := 0

	for townID := range election.TownVotes {
		if _, ok := lookup.TownIDs[townID]; !ok {
			unresolvedTowns++
		}
	}

	if unresolvedTowns > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d of %d towns in townVotes missing from lookup townIds", unresolvedTowns, len(election.TownVotes)))
	}

	unresolvedStatus := 0

	for townID := range election.VoterTurnout {
		if _, ok := election.TownStatus[townID]; !ok {
			unresolvedStatus++
		}
	}

	if unresolvedStatus > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d of %d towns in voterTurnout missing from townStatus", unresolvedStatus, len(election.VoterTurnout)))
	}

	return result
}
