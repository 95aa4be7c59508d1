package datarecording

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
)

// A Filter selects and orders the rows returned by a query.
type Filter struct {
	// Where is an SQL condition with ? placeholders, e.g. "Trace = ?".
	Where string
	Args  []any

	// OrderBy lists the sort columns, e.g. "Trace DESC".
	OrderBy string
}

// DataReader reads back the tables written by a DataRecorder.
type DataReader interface {
	// MapTable tells the reader which struct a table is stored from.
	MapTable(tableName string, sampleEntry any)

	// Query returns pointers to the mapped struct, one per selected row.
	Query(ctx context.Context, tableName string, filter Filter) ([]any, error)

	Close() error
}

type sqliteReader struct {
	db     *sql.DB
	tables map[string]reflect.Type
}

// NewReader opens a database file created by a DataRecorder.
func NewReader(dbFilename string) DataReader {
	db, err := sql.Open("sqlite3", dbFilename)
	if err != nil {
		panic(err)
	}

	return &sqliteReader{
		db:     db,
		tables: make(map[string]reflect.Type),
	}
}

func (r *sqliteReader) MapTable(tableName string, sampleEntry any) {
	r.tables[tableName] = reflect.TypeOf(sampleEntry)
}

func (r *sqliteReader) Query(
	ctx context.Context,
	tableName string,
	filter Filter,
) ([]any, error) {
	entryType, ok := r.tables[tableName]
	if !ok {
		return nil, fmt.Errorf("table %s is not mapped", tableName)
	}

	query := "SELECT * FROM " + tableName
	if filter.Where != "" {
		query += " WHERE " + filter.Where
	}

	if filter.OrderBy != "" {
		query += " ORDER BY " + filter.OrderBy
	}

	rows, err := r.db.QueryContext(ctx, query, filter.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows, entryType)
}

// scanEntries matches columns to struct fields by name. Columns without a
// field are skipped.
func scanEntries(rows *sql.Rows, entryType reflect.Type) ([]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	entries := []any{}
	for rows.Next() {
		entry := reflect.New(entryType)
		targets := make([]any, len(columns))

		for i, column := range columns {
			field := entry.Elem().FieldByName(column)
			if !field.IsValid() {
				targets[i] = new(any)
				continue
			}

			targets[i] = field.Addr().Interface()
		}

		err := rows.Scan(targets...)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry.Interface())
	}

	return entries, rows.Err()
}

func (r *sqliteReader) Close() error {
	return r.db.Close()
}
