// Package runmeta stamps output tables with the identity of the run that
// produced them.
package runmeta

import (
	"time"

	"github.com/ang-eichhorst/2025municipalelections/internal/models"
)

// Metadata column names appended to every published table.
const (
	ColElectionID = "election_id"
	ColVersion    = "version"
	ColScrapedAt  = "scraped_at"
)

// Stamp identifies one scraper run.
type Stamp struct {
	ElectionID int
	Version    string
	ScrapedAt  time.Time
}

// New creates a stamp for the current run, timestamped in UTC at second
// precision.
func New(electionID int, version string) Stamp {
	return Stamp{
		ElectionID: electionID,
		Version:    version,
		ScrapedAt:  time.Now().UTC().Truncate(time.Second),
	}
}

// Metadata returns the stamp as a RunMetadata record.
func (s Stamp) Metadata() models.RunMetadata {
	return models.RunMetadata{
		ElectionID: s.ElectionID,
		Version:    s.Version,
		ScrapedAt:  s.ScrapedAt.Format(time.RFC3339),
	}
}

// Apply appends the metadata columns to the table, the same values in every
// row. Empty tables still gain the headers so a published empty tab carries
// the run identity.
func (s Stamp) Apply(t *models.Table) {
	t.AddColumn(ColElectionID, int64(s.ElectionID))
	t.AddColumn(ColVersion, s.Version)
	t.AddColumn(ColScrapedAt, s.ScrapedAt.Format(time.RFC3339))
}
