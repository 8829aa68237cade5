// Package fetcher retrieves the published election JSON documents.
//
// The upstream publishing pipeline moves documents to a version-qualified
// path (with renamed files) once an election is finalized, so a fetch tries
// the unversioned path first and falls back on an HTTP-level failure. Only
// that failure class triggers the fallback; transport errors and malformed
// JSON are fatal immediately.
package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ang-eichhorst/2025municipalelections/internal/logger"
	"github.com/ang-eichhorst/2025municipalelections/internal/models"
)

// StatusError reports a non-2xx response. The fallback logic matches on this
// type to distinguish HTTP-level failures from everything else.
type StatusError struct {
	URL        string
	StatusCode int
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d for %s", e.StatusCode, e.URL)
}

// Fetcher retrieves lookup and election documents for one election.
type Fetcher struct {
	client  *resty.Client
	baseURL string
	logger  *logger.Logger
}

// New creates a fetcher against the given base URL. Every request is bounded
// by the timeout.
func New(baseURL string, timeout time.Duration, log *logger.Logger) *Fetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Fetcher{
		client:  client,
		baseURL: baseURL,
		logger:  log,
	}
}

// Fetch retrieves the lookup and election documents for electionID, trying
// the unversioned path first and the version-qualified path second. It
// returns the resolved version string alongside the documents. Any failure
// is wrapped with the election identifier and is fatal for the run.
func (f *Fetcher) Fetch(ctx context.Context, electionID int) (*models.LookupDocument, *models.ElectionDocument, string, error) {
	var marker models.VersionDocument
	if err := f.getJSON(ctx, f.url("%d/Version.json", electionID), &marker); err != nil {
		return nil, nil, "", fmt.Errorf("could not fetch election %d: %w", electionID, err)
	}

	version := marker.Version.String()
	f.logger.Debug("resolved version marker", "election", electionID, "version", version)

	lookup := &models.LookupDocument{}
	election := &models.ElectionDocument{}

	err := f.getPair(ctx,
		f.url("%d/Lookup.json", electionID),
		f.url("%d/Election.json", electionID),
		lookup, election)

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		// Finalized election: documents moved under the version path and
		// were renamed.
		f.logger.Info("unversioned path unavailable, retrying versioned path",
			"status", statusErr.StatusCode, "version", version)

		lookup = &models.LookupDocument{}
		election = &models.ElectionDocument{}

		err = f.getPair(ctx,
			f.url("%d/%s/Lookupdata.json", electionID, version),
			f.url("%d/%s/Electiondata.json", electionID, version),
			lookup, election)
	}

	if err != nil {
		return nil, nil, "", fmt.Errorf("could not fetch election %d: %w", electionID, err)
	}

	return lookup, election, version, nil
}

// getPair fetches the lookup and election documents from one path shape.
func (f *Fetcher) getPair(ctx context.Context, lookupURL, electionURL string, lookup *models.LookupDocument, election *models.ElectionDocument) error {
	if err := f.getJSON(ctx, lookupURL, lookup); err != nil {
		return err
	}

	return f.getJSON(ctx, electionURL, election)
}

// getJSON performs a single GET and decodes the body into target.
func (f *Fetcher) getJSON(ctx context.Context, url string, target any) error {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return fmt.Errorf("request %s failed: %w", url, err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return &StatusError{URL: url, StatusCode: resp.StatusCode()}
	}

	if err := json.Unmarshal(resp.Body(), target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", url, err)
	}

	return nil
}

func (f *Fetcher) url(format string, args ...any) string {
	return f.baseURL + "/" + fmt.Sprintf(format, args...)
}
