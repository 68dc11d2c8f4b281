// Package datarecording stores a manifest of configuration runs in SQLite:
// which parameters were resolved and which files were written.
package datarecording

import (
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/fatih/structs"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/tebeka/atexit"
	"golang.org/x/exp/slices"
)

// DataRecorder is a backend that can record and store data
type DataRecorder interface {
	// CreateTable creates a table shaped after sampleEntry if it does not
	// exist yet.
	CreateTable(tableName string, sampleEntry any) error

	// InsertData buffers an entry for a table that already exists.
	InsertData(tableName string, entry any) error

	// ListTables returns the names of all tables, sorted.
	ListTables() []string

	// Flush writes all buffered entries in one transaction.
	Flush() error

	// Close flushes and closes the database.
	Close() error
}

// New opens, or creates, the database at path. Buffered entries are flushed
// when the process exits through atexit.
func New(path string) (DataRecorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	return NewWithDB(db), nil
}

// NewWithDB creates a new DataRecorder with a given database.
func NewWithDB(db *sql.DB) DataRecorder {
	w := &sqliteWriter{
		DB:        db,
		batchSize: 100000,
		tables:    make(map[string]*table),
	}

	atexit.Register(func() { _ = w.Flush() })

	return w
}

type table struct {
	structType reflect.Type
	entries    []any
}

// sqliteWriter is the writer that writes data into SQLite database
type sqliteWriter struct {
	*sql.DB

	tables     map[string]*table
	batchSize  int
	entryCount int
	closed     bool
}

func isAllowedType(kind reflect.Kind) bool {
	switch kind {
	case
		reflect.Bool,
		reflect.Int,
		reflect.Int8,
		reflect.Int16,
		reflect.Int32,
		reflect.Int64,
		reflect.Uint,
		reflect.Uint8,
		reflect.Uint16,
		reflect.Uint32,
		reflect.Uint64,
		reflect.Float32,
		reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}

func checkStructFields(entry any) error {
	t := reflect.TypeOf(entry)
	if t == nil || t.Kind() != reflect.Struct {
		return errors.New("entry must be a struct")
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || !isAllowedType(field.Type.Kind()) {
			return fmt.Errorf("field %s cannot be recorded", field.Name)
		}
	}

	return nil
}

func (w *sqliteWriter) CreateTable(tableName string, sampleEntry any) error {
	if err := checkStructFields(sampleEntry); err != nil {
		return fmt.Errorf("table %s: %w", tableName, err)
	}

	fields := strings.Join(structs.Names(sampleEntry), ", \n\t")
	createTableSQL := `CREATE TABLE IF NOT EXISTS ` + tableName +
		` (` + "\n\t" + fields + "\n" + `);`
	if _, err := w.Exec(createTableSQL); err != nil {
		return fmt.Errorf("creating table %s: %w", tableName, err)
	}

	w.tables[tableName] = &table{structType: reflect.TypeOf(sampleEntry)}

	return nil
}

func (w *sqliteWriter) InsertData(tableName string, entry any) error {
	t, exists := w.tables[tableName]
	if !exists {
		return fmt.Errorf("table %s does not exist", tableName)
	}
	if reflect.TypeOf(entry) != t.structType {
		return fmt.Errorf("table %s holds %s, not %T", tableName, t.structType, entry)
	}

	t.entries = append(t.entries, entry)

	w.entryCount++
	if w.entryCount >= w.batchSize {
		return w.Flush()
	}

	return nil
}

func (w *sqliteWriter) ListTables() []string {
	names := make([]string, 0, len(w.tables))
	for name := range w.tables {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

func (w *sqliteWriter) Flush() (err error) {
	if w.closed || w.entryCount == 0 {
		return nil
	}

	tx, err := w.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	for _, name := range w.ListTables() {
		t := w.tables[name]
		if len(t.entries) == 0 {
			continue
		}

		if err := insertAll(tx, name, t.entries); err != nil {
			return err
		}

		t.entries = nil
	}

	w.entryCount = 0

	return nil
}

func insertAll(tx *sql.Tx, tableName string, entries []any) error {
	placeholders := structs.Names(entries[0])
	for i := range placeholders {
		placeholders[i] = "?"
	}

	stmt, err := tx.Prepare("INSERT INTO " + tableName +
		" VALUES (" + strings.Join(placeholders, ", ") + ")")
	if err != nil {
		return fmt.Errorf("preparing insert into %s: %w", tableName, err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		v := reflect.ValueOf(entry)
		values := make([]any, v.NumField())
		for i := range values {
			values[i] = v.Field(i).Interface()
		}

		if _, err := stmt.Exec(values...); err != nil {
			return fmt.Errorf("inserting into %s: %w", tableName, err)
		}
	}

	return nil
}

func (w *sqliteWriter) Close() error {
	if w.closed {
		return nil
	}

	err := w.Flush()
	w.closed = true

	if cerr := w.DB.Close(); err == nil {
		err = cerr
	}

	return err
}
