// Package localizer projects the English results and turnout tables into
// their Spanish-labeled variants. Localization is a pure relabeling: it
// never adds, drops, or reorders rows.
package localizer

import (
	"errors"
	"strings"

	"golang.org/x/text/language"

	"github.com/ang-eichhorst/2025municipalelections/internal/models"
	"github.com/ang-eichhorst/2025municipalelections/internal/normalizer"
)

// ErrUnsupportedLanguage is returned for any target other than Spanish.
var ErrUnsupportedLanguage = errors.New("unsupported target language")

// Spanish results table headers.
var resultsHeadersES = []string{"Ciudad", "Cargo", "Candidato", "Partido", "Votos", "Porcentaje"}

// Spanish turnout table headers.
var turnoutHeadersES = []string{"Ciudad", "Precintos reportados", "Habilitados", "Votantes", "% Participación"}

// partyES is the static party-name translation table. Names absent from it
// pass through unchanged.
var partyES = map[string]string{
	"Democratic Party":       "Partido Demócrata",
	"Republican Party":       "Partido Republicano",
	"Working Families Party": "Partido de Familias Trabajadoras",
	"Green Party":            "Partido Verde",
	"Independent Party":      "Partido Independiente",
	"Write In":               "Candidato por escrito",
	"Petitioning Candidate":  "Candidato por petición",
	"Conservative Party":     "Partido Conservador",
}

var matcher = language.NewMatcher([]language.Tag{
	language.Spanish,
	language.LatinAmericanSpanish,
})

// Localizer holds the party translation table for one target language.
type Localizer struct {
	tag     language.Tag
	parties map[string]string
}

// New creates a localizer for the given target language. Only Spanish (any
// regional variant) is supported. Overrides are merged over the built-in
// party table.
func New(tag language.Tag, overrides map[string]string) (*Localizer, error) {
	if _, _, confidence := matcher.Match(tag); confidence == language.No {
		return nil, ErrUnsupportedLanguage
	}

	parties := make(map[string]string, len(partyES)+len(overrides))
	for name, translated := range partyES {
		parties[name] = translated
	}

	for name, translated := range overrides {
		parties[name] = translated
	}

	return &Localizer{tag: tag, parties: parties}, nil
}

// Tag returns the target language tag.
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// TranslateParty translates a party display name, falling back to the input
// unchanged when the name is not in the table.
func (l *Localizer) TranslateParty(name string) string {
	if translated, ok := l.parties[name]; ok {
		return translated
	}

	return name
}

// Results relabels the results table with Spanish headers and translates the
// party column. An empty input yields an empty table that still carries the
// Spanish headers, so downstream publishing never sees a columnless table.
func (l *Localizer) Results(src *models.Table) *models.Table {
	out := models.NewTable(resultsHeadersES...)
	if src.Empty() {
		return out
	}

	townIdx := src.ColumnIndex(normalizer.ColTownName)
	officeIdx := src.ColumnIndex(normalizer.ColOfficeName)
	candidateIdx := src.ColumnIndex(normalizer.ColCandidateName)
	partyIdx := src.ColumnIndex(normalizer.ColParty)
	votesIdx := src.ColumnIndex(normalizer.ColVotes)
	percentIdx := src.ColumnIndex(normalizer.ColPercent)

	for _, row := range src.Rows {
		out.AppendRow(
			row[townIdx],
			row[officeIdx],
			row[candidateIdx],
			l.TranslateParty(asString(row[partyIdx])),
			row[votesIdx],
			row[percentIdx],
		)
	}

	return out
}

// Turnout relabels the turnout table with Spanish headers and replaces the
// English " of " separator in the precincts-reported field with " de ".
// Strings without the separator pass through unchanged.
func (l *Localizer) Turnout(src *models.Table) *models.Table {
	out := models.NewTable(turnoutHeadersES...)
	if src.Empty() {
		return out
	}

	townIdx := src.ColumnIndex(normalizer.ColTownName)
	precinctsIdx := src.ColumnIndex(normalizer.ColPrecinctsReported)
	electorsIdx := src.ColumnIndex(normalizer.ColElectors)
	votesCastIdx := src.ColumnIndex(normalizer.ColVotesCast)
	turnoutIdx := src.ColumnIndex(normalizer.ColTurnoutPercent)

	for _, row := range src.Rows {
		out.AppendRow(
			row[townIdx],
			LocalizePrecincts(asString(row[precinctsIdx])),
			row[electorsIdx],
			row[votesCastIdx],
			row[turnoutIdx],
		)
	}

	return out
}

// LocalizePrecincts rewrites "12 of 20" as "12 de 20".
func LocalizePrecincts(s string) string {
	return strings.ReplaceAll(s, " of ", " de ")
}

func asString(cell any) string {
	s, ok := cell.(string)
	if !ok {
		return ""
	}

	return s
}
