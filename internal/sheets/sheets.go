// Package sheets wraps the two Google Sheets API writes jobtrack depends
// on: creating the destination spreadsheet and appending rows to it.
package sheets

import (
	"context"
	"fmt"

	sh "google.golang.org/api/sheets/v4"
)

// AppendRange anchors appends; the API extends the table below it.
const AppendRange = "Sheet1!A1"

// Create makes a new spreadsheet with a single Sheet1 and returns its ID.
func Create(ctx context.Context, svc *sh.Service, title string) (string, error) {
	spreadsheet := &sh.Spreadsheet{
		Properties: &sh.SpreadsheetProperties{Title: title},
		Sheets: []*sh.Sheet{
			{Properties: &sh.SheetProperties{Title: "Sheet1"}},
		},
	}

	resp, err := svc.Spreadsheets.Create(spreadsheet).Fields("spreadsheetId").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create spreadsheet: %w", err)
	}
	return resp.SpreadsheetId, nil
}

// Append adds rows below the existing table. Values go in as entered, so
// the API parses them the way a user typing them would.
func Append(ctx context.Context, svc *sh.Service, spreadsheetID string, rows [][]string) error {
	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		cells := make([]interface{}, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell)
		}
		values = append(values, cells)
	}

	_, err := svc.Spreadsheets.Values.
		Append(spreadsheetID, AppendRange, &sh.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append to spreadsheet %s: %w", spreadsheetID, err)
	}
	return nil
}
