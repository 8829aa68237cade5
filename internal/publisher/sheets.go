package publisher

import (
	"context"
	"fmt"
	"os"

	"github.com/matryer/try"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/ang-eichhorst/2025municipalelections/internal/logger"
	"github.com/ang-eichhorst/2025municipalelections/internal/models"
)

// SheetsPublisher writes tables to a Google Sheets spreadsheet using a
// service account. Writes are retried up to maxAttempts because the Sheets
// API rate-limits bursts of requests.
type SheetsPublisher struct {
	service       *sheets.Service
	spreadsheetID string
	maxAttempts   int
	logger        *logger.Logger
}

// NewSheetsPublisher builds a Sheets client from a service-account JSON
// credentials file.
func NewSheetsPublisher(ctx context.Context, credentialsFile, spreadsheetID string, maxAttempts int, log *logger.Logger) (*SheetsPublisher, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file %s: %w", credentialsFile, err)
	}

	jwt, err := google.JWTConfigFromJSON(b, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}

	service, err := sheets.NewService(ctx, option.WithHTTPClient(jwt.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsPublisher{
		service:       service,
		spreadsheetID: spreadsheetID,
		maxAttempts:   maxAttempts,
		logger:        log,
	}, nil
}

// Publish implements Publisher: it ensures the tab exists, clears it, and
// writes the table starting at A1.
func (p *SheetsPublisher) Publish(ctx context.Context, tab string, table *models.Table) error {
	if err := p.ensureTab(ctx, tab); err != nil {
		return fmt.Errorf("failed to ensure tab %q: %w", tab, err)
	}

	err := p.withRetry(func() error {
		_, clearErr := p.service.Spreadsheets.Values.
			Clear(p.spreadsheetID, quoteRange(tab), &sheets.ClearValuesRequest{}).
			Context(ctx).Do()

		return clearErr
	})
	if err != nil {
		return fmt.Errorf("failed to clear tab %q: %w", tab, err)
	}

	valueRange := &sheets.ValueRange{Values: table.Values()}

	err = p.withRetry(func() error {
		_, updateErr := p.service.Spreadsheets.Values.
			Update(p.spreadsheetID, quoteRange(tab)+"!A1", valueRange).
			ValueInputOption("RAW").
			Context(ctx).Do()

		return updateErr
	})
	if err != nil {
		return fmt.Errorf("failed to write tab %q: %w", tab, err)
	}

	p.logger.Debug("published tab", "tab", tab, "rows", table.RowCount())

	return nil
}

// ensureTab creates the tab when the spreadsheet does not already have it.
func (p *SheetsPublisher) ensureTab(ctx context.Context, tab string) error {
	spreadsheet, err := p.service.Spreadsheets.Get(p.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to look up spreadsheet: %w", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == tab {
			return nil
		}
	}

	p.logger.Info("creating missing tab", "tab", tab)

	request := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: tab},
				},
			},
		},
	}

	return p.withRetry(func() error {
		_, batchErr := p.service.Spreadsheets.
			BatchUpdate(p.spreadsheetID, request).
			Context(ctx).Do()

		return batchErr
	})
}

func (p *SheetsPublisher) withRetry(op func() error) error {
	return try.Do(func(attempt int) (bool, error) {
		return attempt < p.maxAttempts, op()
	})
}

// quoteRange wraps a tab name in single quotes so names with spaces form a
// valid A1 range.
func quoteRange(tab string) string {
	return "'" + tab + "'"
}

var _ Publisher = (*SheetsPublisher)(nil)
