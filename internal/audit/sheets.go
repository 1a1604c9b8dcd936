package audit

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsExporter mirrors the audit trail into a Google Sheets spreadsheet
// so that bookings can be reviewed without touching the service host.
type SheetsExporter struct {
	service       *sheets.Service
	spreadsheetID string
	logger        zerolog.Logger
}

// NewSheetsExporter builds an exporter from a service-account credentials
// file.
func NewSheetsExporter(ctx context.Context, credentialsFile, spreadsheetID string, logger zerolog.Logger) (*SheetsExporter, error) {
	service, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &SheetsExporter{
		service:       service,
		spreadsheetID: spreadsheetID,
		logger:        logger.With().Str("component", "sheets_export").Logger(),
	}, nil
}

// Sync replaces the spreadsheet contents with the current trail.
func (s *SheetsExporter) Sync(ctx context.Context, entries []Entry) error {
	values := make([][]interface{}, 0, len(entries)+1)
	values = append(values, toCells(exportColumns))
	for _, e := range entries {
		values = append(values, entryRowValues(e))
	}

	if _, err := s.service.Spreadsheets.Values.Clear(s.spreadsheetID, "Bookings", &sheets.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear sheet: %w", err)
	}

	_, err := s.service.Spreadsheets.Values.Update(s.spreadsheetID, "Bookings!A1", &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update sheet: %w", err)
	}

	s.logger.Debug().Int("rows", len(values)).Msg("audit trail synced to sheets")
	return nil
}
