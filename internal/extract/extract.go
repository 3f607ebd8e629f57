// Package extract reads near-Earth objects from the JPL small-body CSV export
// and close approaches from the JPL close-approach JSON API format.
package extract

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/papapumpkin/neo/internal/model"
)

// ErrMissingColumn is returned when a required column is absent from the
// source header.
var ErrMissingColumn = errors.New("missing column")

// Column names in the source files.
const (
	colDesignation = "pdes"
	colName        = "name"
	colDiameter    = "diameter"
	colHazard      = "pha"

	fieldDesignation = "des"
	fieldTime        = "cd"
	fieldDistance    = "dist"
	fieldVelocity    = "v_rel"
)

// LoadBodies reads near-Earth objects from the CSV file at path.
func LoadBodies(path string) ([]*model.Body, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("extract: open %s: %w", path, err)
	}
	defer f.Close()

	bodies, err := ReadBodies(f)
	if err != nil {
		return nil, fmt.Errorf("extract: %s: %w", path, err)
	}
	return bodies, nil
}

// ReadBodies reads near-Earth objects from CSV with a header row. Columns are
// located by name, so extra columns and any column order are accepted.
func ReadBodies(r io.Reader) ([]*model.Body, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := columnIndex(header, colDesignation, colName, colDiameter, colHazard)
	if err != nil {
		return nil, err
	}

	var bodies []*model.Body
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		b, err := model.NewBody(model.BodyFields{
			Designation: record[idx[colDesignation]],
			Name:        record[idx[colName]],
			Diameter:    record[idx[colDiameter]],
			Hazard:      record[idx[colHazard]],
		})
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

// approachDocument is the top-level shape of the close-approach JSON: a list
// of field names and rows of values in that order.
type approachDocument struct {
	Fields []string            `json:"fields"`
	Data   [][]json.RawMessage `json:"data"`
}

// LoadApproaches reads close approaches from the JSON file at path.
func LoadApproaches(path string) ([]*model.Approach, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("extract: open %s: %w", path, err)
	}
	defer f.Close()

	approaches, err := ReadApproaches(f)
	if err != nil {
		return nil, fmt.Errorf("extract: %s: %w", path, err)
	}
	return approaches, nil
}

// ReadApproaches decodes a close-approach document. Values may be strings or
// bare numbers; JSON null is treated as an empty string before coercion.
func ReadApproaches(r io.Reader) ([]*model.Approach, error) {
	var doc approachDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	idx, err := columnIndex(doc.Fields, fieldDesignation, fieldTime, fieldDistance, fieldVelocity)
	if err != nil {
		return nil, err
	}

	approaches := make([]*model.Approach, 0, len(doc.Data))
	for i, row := range doc.Data {
		if len(row) != len(doc.Fields) {
			return nil, fmt.Errorf("row %d: %d values for %d fields", i, len(row), len(doc.Fields))
		}
		var fields model.ApproachFields
		for _, dst := range []struct {
			col string
			val *string
		}{
			{fieldDesignation, &fields.Designation},
			{fieldTime, &fields.Time},
			{fieldDistance, &fields.Distance},
			{fieldVelocity, &fields.Velocity},
		} {
			v, err := value(row[idx[dst.col]])
			if err != nil {
				return nil, fmt.Errorf("row %d field %s: %w", i, dst.col, err)
			}
			*dst.val = v
		}

		a, err := model.NewApproach(fields)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		approaches = append(approaches, a)
	}
	return approaches, nil
}

// value returns the text of a JSON scalar: strings are unquoted, null becomes
// the empty string, and numbers are kept verbatim.
func value(raw json.RawMessage) (string, error) {
	text := string(bytes.TrimSpace(raw))
	switch {
	case text == "" || text == "null":
		return "", nil
	case strings.HasPrefix(text, `"`):
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	default:
		return text, nil
	}
}

// columnIndex maps each required column name to its position in header.
func columnIndex(header []string, required ...string) (map[string]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[h] = i
	}
	idx := make(map[string]int, len(required))
	for _, name := range required {
		i, ok := pos[name]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
		idx[name] = i
	}
	return idx, nil
}
