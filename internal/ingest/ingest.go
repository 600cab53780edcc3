// Package ingest parses tabular byte streams into time series. The
// analysis core is format-agnostic; this package is the capability the
// surrounding application supplies per format, dispatched by file
// extension.
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-tfa/tfa/core"
)

// Parser converts raw tabular bytes into a validated TimeSeries.
type Parser interface {
	Parse(data []byte) (core.TimeSeries, error)
}

// Options configures tabular parsing.
type Options struct {
	// Dt is the sampling interval to stamp onto the series.
	Dt float64
	// Unit is the time-unit label, e.g. "min".
	Unit string
	// Column selects the value column, zero-based.
	Column int
	// SkipHeader drops the first row.
	SkipHeader bool
}

// ForPath returns the parser registered for the path's extension.
// Supported: .csv (comma-separated), .tsv and .txt (tab-separated).
func ForPath(path string, opts Options) (Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return &delimited{comma: ',', opts: opts}, nil
	case ".tsv", ".txt":
		return &delimited{comma: '\t', opts: opts}, nil
	default:
		return nil, fmt.Errorf("ingest: no parser for extension %q", ext)
	}
}

// delimited parses character-separated tabular data.
type delimited struct {
	comma rune
	opts  Options
}

func (p *delimited) Parse(data []byte) (core.TimeSeries, error) {
	if p.opts.Dt <= 0 {
		return core.TimeSeries{}, fmt.Errorf("ingest: sampling interval must be > 0: %g: %w",
			p.opts.Dt, core.ErrInvalidParameter)
	}
	if p.opts.Column < 0 {
		return core.TimeSeries{}, fmt.Errorf("ingest: column must be >= 0: %d: %w",
			p.opts.Column, core.ErrInvalidParameter)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = p.comma
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return core.TimeSeries{}, fmt.Errorf("ingest: malformed table: %w", err)
	}
	if p.opts.SkipHeader && len(records) > 0 {
		records = records[1:]
	}

	samples := make([]float64, 0, len(records))
	for i, rec := range records {
		if len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "") {
			continue
		}
		if p.opts.Column >= len(rec) {
			return core.TimeSeries{}, fmt.Errorf("ingest: row %d has %d columns, need column %d",
				i+1, len(rec), p.opts.Column)
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(rec[p.opts.Column]), 64)
		if err != nil {
			return core.TimeSeries{}, fmt.Errorf("ingest: row %d: %w", i+1, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return core.TimeSeries{}, fmt.Errorf("ingest: row %d: non-finite sample %v", i+1, v)
		}
		samples = append(samples, v)
	}

	return core.NewTimeSeries(samples, p.opts.Dt, p.opts.Unit)
}
