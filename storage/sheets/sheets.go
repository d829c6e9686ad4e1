// Package sheets stores tables as worksheets of one Google spreadsheet: row 1 is the header, data starts on row 2.
package sheets

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/table"
)

const valueInput = "RAW"

var (
	_ table.Backend = (*DB)(nil) // interface compliance check

	ErrNoSpreadsheet = errors.New("no spreadsheet configured")
)

// DB is a Backend over one spreadsheet.
type DB struct {
	srv           *sheets.Service
	spreadsheetID string

	mu  sync.Mutex
	ids map[string]int64 // worksheet title -> sheet id
}

// Open authenticates with the service account credentials file and checks the spreadsheet is reachable.
func Open(ctx context.Context, conf core.SheetsConfig) (*DB, error) {
	if conf.SpreadsheetID == "" {
		return nil, ErrNoSpreadsheet
	}
	var opts []option.ClientOption
	if conf.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(conf.CredentialsFile))
	}
	opts = append(opts, option.WithScopes(sheets.SpreadsheetsScope))

	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "creating sheets client")
	}
	db := &DB{srv: srv, spreadsheetID: conf.SpreadsheetID}
	if _, err = db.refresh(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// Connector opens the spreadsheet on the store's first use.
func Connector(conf core.SheetsConfig) table.Connector {
	return func(ctx context.Context) (table.Backend, error) {
		return Open(ctx, conf)
	}
}

// refresh re-reads the worksheet titles and ids.
func (db *DB) refresh(ctx context.Context) (map[string]int64, error) {
	ss, err := db.srv.Spreadsheets.Get(db.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrap(err, "reading spreadsheet")
	}
	ids := make(map[string]int64, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			ids[sh.Properties.Title] = sh.Properties.SheetId
		}
	}
	db.mu.Lock()
	db.ids = ids
	db.mu.Unlock()
	return ids, nil
}

func (db *DB) sheetID(ctx context.Context, name string) (int64, error) {
	db.mu.Lock()
	id, ok := db.ids[name]
	db.mu.Unlock()
	if ok {
		return id, nil
	}
	ids, err := db.refresh(ctx)
	if err != nil {
		return 0, err
	}
	if id, ok = ids[name]; !ok {
		return 0, errors.Wrapf(table.ErrTableNotFound, "%q", name)
	}
	return id, nil
}

func (db *DB) FetchAllRows(ctx context.Context, name string) ([]table.Record, error) {
	if _, err := db.sheetID(ctx, name); err != nil {
		return nil, err
	}
	vr, err := db.srv.Spreadsheets.Values.Get(db.spreadsheetID, sheetRange(name)).Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrapf(err, "reading %q", name)
	}
	return toRecords(vr.Values), nil
}

func (db *DB) CreateTable(ctx context.Context, name string, header []string) error {
	_, err := db.sheetID(ctx, name)
	if err == nil {
		return nil
	}
	if errors.Cause(err) != table.ErrTableNotFound {
		return err
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{Properties: &sheets.SheetProperties{Title: name}},
		}},
	}
	resp, err := db.srv.Spreadsheets.BatchUpdate(db.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return errors.Wrapf(err, "adding worksheet %q", name)
	}
	if len(resp.Replies) > 0 && resp.Replies[0].AddSheet != nil && resp.Replies[0].AddSheet.Properties != nil {
		db.mu.Lock()
		db.ids[name] = resp.Replies[0].AddSheet.Properties.SheetId
		db.mu.Unlock()
	}
	return db.WriteRows(ctx, name, header, nil)
}

func (db *DB) ClearTable(ctx context.Context, name string) error {
	_, err := db.srv.Spreadsheets.Values.Clear(db.spreadsheetID, sheetRange(name), &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return errors.Wrapf(err, "clearing %q", name)
}

func (db *DB) WriteRows(ctx context.Context, name string, header []string, rows [][]string) error {
	vr := &sheets.ValueRange{Values: toValues(header, rows)}
	_, err := db.srv.Spreadsheets.Values.Update(db.spreadsheetID, sheetRange(name)+"!A1", vr).
		ValueInputOption(valueInput).Context(ctx).Do()
	return errors.Wrapf(err, "writing %q", name)
}

// ReplaceTable clears the worksheet and appends the new contents in a single batch update,
// which the Sheets API applies atomically.
func (db *DB) ReplaceTable(ctx context.Context, name string, header []string, rows [][]string) error {
	id, err := db.sheetID(ctx, name)
	if err != nil {
		return err
	}
	req := &sheets.BatchUpdateSpreadsheetRequest{Requests: replaceRequests(id, header, rows)}
	_, err = db.srv.Spreadsheets.BatchUpdate(db.spreadsheetID, req).Context(ctx).Do()
	return errors.Wrapf(err, "replacing %q", name)
}

// sheetRange addresses a whole worksheet in A1 notation.
func sheetRange(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// toRecords maps every data row onto the header row. Short rows (the API drops trailing blanks) are padded with "".
func toRecords(values [][]interface{}) []table.Record {
	if len(values) == 0 {
		return []table.Record{}
	}
	header := make([]string, len(values[0]))
	for i, v := range values[0] {
		header[i] = cellText(v)
	}
	records := make([]table.Record, 0, len(values)-1)
	for _, row := range values[1:] {
		rec := make(table.Record, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(row) {
				rec[col] = cellText(row[i])
			} else {
				rec[col] = ""
			}
		}
		records = append(records, rec)
	}
	return records
}

func cellText(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func toValues(header []string, rows [][]string) [][]interface{} {
	values := make([][]interface{}, 0, len(rows)+1)
	values = append(values, toRow(header))
	for _, r := range rows {
		values = append(values, toRow(r))
	}
	return values
}

func toRow(cells []string) []interface{} {
	row := make([]interface{}, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}

func replaceRequests(sheetID int64, header []string, rows [][]string) []*sheets.Request {
	data := make([]*sheets.RowData, 0, len(rows)+1)
	data = append(data, rowData(header))
	for _, r := range rows {
		data = append(data, rowData(r))
	}
	return []*sheets.Request{
		{
			// no rows: every cell of the worksheet is cleared
			UpdateCells: &sheets.UpdateCellsRequest{
				Range:  &sheets.GridRange{SheetId: sheetID, ForceSendFields: []string{"SheetId"}},
				Fields: "userEnteredValue",
			},
		},
		{
			AppendCells: &sheets.AppendCellsRequest{
				SheetId:         sheetID,
				Rows:            data,
				Fields:          "userEnteredValue",
				ForceSendFields: []string{"SheetId"},
			},
		},
	}
}

func rowData(cells []string) *sheets.RowData {
	values := make([]*sheets.CellData, len(cells))
	for i := range cells {
		s := cells[i]
		values[i] = &sheets.CellData{UserEnteredValue: &sheets.ExtendedValue{StringValue: &s}}
	}
	return &sheets.RowData{Values: values}
}
