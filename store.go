// store.go
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
)

// ErrCorrupt marks a table file that exists but cannot be read back as
// delimited rows under its declared header.
var ErrCorrupt = errors.New("table file corrupt")

// Table is one flat-file table: a file under the data directory whose
// first line is the column header and whose remaining lines are rows.
// The file is the sole source of truth; every mutation is a full
// read-modify-write. Concurrent writers race and the last Save wins.
type Table struct {
	File    string
	Columns []string
}

var (
	employeesTable  = Table{File: "employeedetails.csv", Columns: []string{"emp_code", "name", "doj"}}
	usersTable      = Table{File: "users.csv", Columns: []string{"username", "password"}}
	salesTable      = Table{File: "sales.csv", Columns: []string{"date", "emp_code", "bill_no", "total_cost"}}
	attendanceTable = Table{File: "attendance.csv", Columns: []string{"emp_code", "date"}}
	productsTable   = Table{File: "products.csv", Columns: []string{"product_name", "image_address", "product_category", "product_price", "product_quantity"}}
)

var allTables = []Table{employeesTable, usersTable, salesTable, attendanceTable, productsTable}

func (t Table) path() string {
	return filepath.Join(dataDir, t.File)
}

// Load reads the whole table into memory. A missing file is not an
// error: it yields an empty row set, same as a freshly created table.
func (t Table) Load() ([][]string, error) {
	f, err := os.Open(t.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return [][]string{}, nil
		}
		return nil, fmt.Errorf("open table %s: %w", t.File, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, t.File, err)
	}
	if len(records) == 0 {
		return [][]string{}, nil
	}
	if !slices.Equal(records[0], t.Columns) {
		return nil, fmt.Errorf("%w: %s: header %v, want %v", ErrCorrupt, t.File, records[0], t.Columns)
	}
	return records[1:], nil
}

// Save rewrites the table file in full: header first, then every row in
// order. The write goes through a temp file in the same directory and a
// rename, so a concurrent reader never sees a half-written table.
func (t Table) Save(rows [][]string) error {
	tmp, err := os.CreateTemp(dataDir, t.File+".*")
	if err != nil {
		return fmt.Errorf("create temp file for table %s: %w", t.File, err)
	}
	w := csv.NewWriter(tmp)
	err = w.Write(t.Columns)
	if err == nil {
		err = w.WriteAll(rows) // WriteAll flushes
	}
	if err == nil {
		err = tmp.Close()
	} else {
		tmp.Close()
	}
	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write table %s: %w", t.File, err)
	}
	if err := os.Rename(tmp.Name(), t.path()); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace table %s: %w", t.File, err)
	}
	return nil
}

// Append loads the table, adds one row at the end and saves it back.
func (t Table) Append(row []string) error {
	rows, err := t.Load()
	if err != nil {
		return err
	}
	return t.Save(append(rows, row))
}

// Filter returns the rows for which keep reports true, in file order.
func (t Table) Filter(keep func(row []string) bool) ([][]string, error) {
	rows, err := t.Load()
	if err != nil {
		return nil, err
	}
	matched := [][]string{}
	for _, row := range rows {
		if keep(row) {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

// DeleteWhere removes every row matching the predicate and persists the
// remainder, reporting how many rows were removed. The file is
// rewritten even when nothing matched, mirroring the read-modify-write
// cycle every mutation runs.
func (t Table) DeleteWhere(match func(row []string) bool) (int, error) {
	rows, err := t.Load()
	if err != nil {
		return 0, err
	}
	kept := make([][]string, 0, len(rows))
	removed := 0
	for _, row := range rows {
		if match(row) {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	if err := t.Save(kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// ensureTables creates the data directory and a header-only file for
// every table that does not exist yet.
func ensureTables() error {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return fmt.Errorf("create data directory '%s': %w", dataDir, err)
	}
	for _, t := range allTables {
		if _, err := os.Stat(t.path()); err == nil {
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat table %s: %w", t.File, err)
		}
		if err := t.Save(nil); err != nil {
			return err
		}
		log.Printf("INFO: Created table file %s", t.path())
	}
	return nil
}
