// Package publisher writes tables into named tabs of a destination
// spreadsheet. Every publish is a full overwrite; there are no merge or
// append semantics.
package publisher

import (
	"context"

	"github.com/ang-eichhorst/2025municipalelections/internal/models"
)

// Publisher replaces all content of the named tab with the given table,
// headers included, creating the tab if it does not exist.
type Publisher interface {
	Publish(ctx context.Context, tab string, table *models.Table) error
}

// Recorder is an in-memory Publisher for tests and dry runs. It keeps the
// last table published to each tab and the order of first publishes.
type Recorder struct {
	Published map[string]*models.Table
	Order     []string
	Err       error
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{Published: make(map[string]*models.Table)}
}

// Publish implements Publisher. A configured Err is returned without
// recording, so failure paths can be exercised.
func (r *Recorder) Publish(_ context.Context, tab string, table *models.Table) error {
	if r.Err != nil {
		return r.Err
	}

	if _, seen := r.Published[tab]; !seen {
		r.Order = append(r.Order, tab)
	}

	r.Published[tab] = table

	return nil
}

var _ Publisher = (*Recorder)(nil)
