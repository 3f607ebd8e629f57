// Package export writes query results to CSV, JSON, or SQLite files.
package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/papapumpkin/neo/internal/model"
)

// ErrUnsupportedFormat is returned by Write for an unknown file extension.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// csvHeader is the column order of CSV output.
var csvHeader = []string{
	"datetime_utc", "distance_au", "velocity_km_s",
	"designation", "name", "diameter_km", "potentially_hazardous",
}

// Record is the serialized form of one approach with its (possibly absent)
// body.
type Record struct {
	model.ApproachView
	NEO *model.BodyView `json:"neo"`
}

// NewRecord builds the serialized form of a.
func NewRecord(a *model.Approach) Record {
	r := Record{ApproachView: a.View()}
	if b := a.Body(); b != nil {
		v := b.View()
		r.NEO = &v
	}
	return r
}

// Write writes results to path in the format chosen by its extension: .csv,
// .json, .db or .sqlite. It returns the number of approaches written.
func Write(ctx context.Context, path string, results iter.Seq[*model.Approach]) (int, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return writeFile(path, results, WriteCSV)
	case ".json":
		return writeFile(path, results, WriteJSON)
	case ".db", ".sqlite", ".sqlite3":
		return WriteSQLite(ctx, path, results)
	default:
		return 0, fmt.Errorf("export: %s: %w", path, ErrUnsupportedFormat)
	}
}

func writeFile(path string, results iter.Seq[*model.Approach], write func(io.Writer, iter.Seq[*model.Approach]) (int, error)) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("export: create %s: %w", path, err)
	}
	n, err := write(f, results)
	if err != nil {
		f.Close()
		return n, err
	}
	if err := f.Close(); err != nil {
		return n, fmt.Errorf("export: close %s: %w", path, err)
	}
	return n, nil
}

// WriteCSV writes a header row and one row per approach. An unlinked approach
// has empty designation and name, a "NaN" diameter and a "false" hazard flag.
func WriteCSV(w io.Writer, results iter.Seq[*model.Approach]) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return 0, fmt.Errorf("export: write csv header: %w", err)
	}

	n := 0
	for a := range results {
		r := NewRecord(a)
		body := model.BodyView{Diameter: model.Size(math.NaN()), Hazardous: "false"}
		if r.NEO != nil {
			body = *r.NEO
		}
		row := []string{
			r.DateTime,
			strconv.FormatFloat(r.Distance, 'f', -1, 64),
			strconv.FormatFloat(r.Velocity, 'f', -1, 64),
			body.Designation,
			body.Name,
			body.Diameter.String(),
			body.Hazardous,
		}
		if err := cw.Write(row); err != nil {
			return n, fmt.Errorf("export: write csv row: %w", err)
		}
		n++
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return n, fmt.Errorf("export: flush csv: %w", err)
	}
	return n, nil
}

// WriteJSON writes a JSON array with one object per approach, each carrying
// its body under "neo" (null for an unlinked approach).
func WriteJSON(w io.Writer, results iter.Seq[*model.Approach]) (int, error) {
	records := []Record{}
	for a := range results {
		records = append(records, NewRecord(a))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return 0, fmt.Errorf("export: encode json: %w", err)
	}
	return len(records), nil
}
