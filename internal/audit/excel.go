package audit

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

var exportColumns = []string{
	"ID", "Username", "Visitor", "E-mail", "Start (UTC)", "End (UTC)", "Meeting", "Outcome", "Created (UTC)",
}

// WriteExcel renders the entries as a single-sheet xlsx workbook.
func WriteExcel(entries []Entry, w io.Writer) error {
	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Bookings"
	file.SetSheetName("Sheet1", sheet)

	if err := writeRow(file, sheet, 1, toCells(exportColumns)); err != nil {
		return err
	}
	if style, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, 1)
		endCell, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
		_ = file.SetCellStyle(sheet, startCell, endCell, style)
	}

	for i, e := range entries {
		if err := writeRow(file, sheet, i+2, entryRowValues(e)); err != nil {
			return err
		}
	}

	return file.Write(w)
}

func entryRowValues(e Entry) []interface{} {
	return []interface{}{
		e.ID,
		e.Username,
		e.VisitorName,
		e.VisitorEmail,
		e.Start.UTC().Format(time.RFC3339),
		e.End.UTC().Format(time.RFC3339),
		e.MeetingID,
		e.Outcome,
		e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func writeRow(file *excelize.File, sheet string, row int, values []interface{}) error {
	for i, val := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, val); err != nil {
			return fmt.Errorf("write cell %s: %w", cell, err)
		}
	}
	return nil
}

func toCells(columns []string) []interface{} {
	cells := make([]interface{}, len(columns))
	for i, c := range columns {
		cells[i] = c
	}
	return cells
}
