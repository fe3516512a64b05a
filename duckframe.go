// Package duckframe provides an in-memory typed columnar frame library.
// This package is the sole public API for the library.
package duckframe

import (
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/rudolfterhaar/duckframe/internal/config"
	"github.com/rudolfterhaar/duckframe/internal/frame"
	frameio "github.com/rudolfterhaar/duckframe/internal/io"
	"github.com/rudolfterhaar/duckframe/internal/stats"
	"github.com/rudolfterhaar/duckframe/internal/value"
)

// Frame is a mutable, in-memory table of typed columns.
type Frame = frame.Frame

// Column is a single named, typed column of a Frame.
type Column = frame.Column

// Value is a single typed cell.
type Value = value.Value

// Kind identifies the logical type of a Value or Column.
type Kind = value.Kind

// Value kinds.
const (
	KindNull      = value.KindNull
	KindBool      = value.KindBool
	KindInt8      = value.KindInt8
	KindInt16     = value.KindInt16
	KindInt32     = value.KindInt32
	KindInt64     = value.KindInt64
	KindFloat32   = value.KindFloat32
	KindFloat64   = value.KindFloat64
	KindDate      = value.KindDate
	KindTime      = value.KindTime
	KindTimestamp = value.KindTimestamp
	KindInterval  = value.KindInterval
	KindString    = value.KindString
	KindBlob      = value.KindBlob
	KindDecimal   = value.KindDecimal
	KindUUID      = value.KindUUID
	KindJSON      = value.KindJSON
)

// UnionMode selects how Union and UnionAll reconcile two schemas.
type UnionMode = frame.UnionMode

// Union modes.
const (
	ModeStrict = frame.ModeStrict
	ModeCommon = frame.ModeCommon
	ModeAll    = frame.ModeAll
)

// Value constructors.
var (
	Null         = value.Null
	NewBool      = value.NewBool
	NewInt8      = value.NewInt8
	NewInt16     = value.NewInt16
	NewInt32     = value.NewInt32
	NewInt64     = value.NewInt64
	NewFloat32   = value.NewFloat32
	NewFloat64   = value.NewFloat64
	NewDate      = value.NewDate
	NewTime      = value.NewTime
	NewTimestamp = value.NewTimestamp
	NewInterval  = value.NewInterval
	NewString    = value.NewString
	NewBlob      = value.NewBlob
	NewDecimal   = value.NewDecimal
	NewUUID      = value.NewUUID
	NewJSON      = value.NewJSON
)

// New creates an empty Frame with no columns.
func New() *Frame {
	return frame.New()
}

// CreateBlank creates a Frame with the given column names and kinds and
// zero rows.
func CreateBlank(names []string, kinds []Kind) (*Frame, error) {
	return frame.CreateBlank(names, kinds)
}

// FromRecord builds a Frame from an Arrow record batch.
func FromRecord(rec arrow.Record) (*Frame, error) {
	return frame.FromRecord(rec)
}

// ToRecord converts a Frame into an Arrow record batch. The caller owns
// the returned record and must Release it.
func ToRecord(f *Frame, mem memory.Allocator) (arrow.Record, error) {
	return f.ToRecord(mem)
}

// CSVOptions control CSV reading and writing.
type CSVOptions = frameio.CSVOptions

// DefaultCSVOptions returns CSV options seeded from the active configuration.
func DefaultCSVOptions() CSVOptions {
	return frameio.DefaultCSVOptions()
}

// ReadCSV parses CSV data from r into a new Frame, inferring a kind for
// each column.
func ReadCSV(r io.Reader, opts CSVOptions) (*Frame, error) {
	return frameio.NewCSVReader(r, opts).Read()
}

// WriteCSV renders f as CSV to w.
func WriteCSV(w io.Writer, f *Frame, opts CSVOptions) error {
	return frameio.NewCSVWriter(w, opts).Write(f)
}

// ReadCSVFile reads a CSV file from disk into a new Frame.
func ReadCSVFile(path string, opts CSVOptions) (*Frame, error) {
	return frameio.ReadFile(path, opts)
}

// WriteCSVFile writes f as CSV to the given path.
func WriteCSVFile(path string, f *Frame, opts CSVOptions) error {
	return frameio.WriteFile(path, f, opts)
}

// Describe computes per-column summary statistics for f.
func Describe(f *Frame) *stats.Report {
	return stats.Describe(f)
}

// CorrPearson computes the Pearson correlation matrix over the numeric
// columns of f.
func CorrPearson(f *Frame) (*Frame, error) {
	return stats.CorrPearson(f)
}

// CorrSpearman computes the Spearman rank correlation matrix over the
// numeric columns of f.
func CorrSpearman(f *Frame) (*Frame, error) {
	return stats.CorrSpearman(f)
}

// PlotHistogram bins the named numeric column of f into equal-width
// buckets.
func PlotHistogram(f *Frame, column string, bins int) (*stats.Histogram, error) {
	return stats.PlotHistogram(f, column, bins)
}

// Histogram holds equal-width bin edges and counts for a numeric column.
type Histogram = stats.Histogram

// Report holds the per-column summaries produced by Describe.
type Report = stats.Report

// Config holds library-wide settings.
type Config = config.Config

// SetConfig replaces the active configuration.
func SetConfig(cfg Config) {
	config.Set(cfg)
}

// GetConfig returns a copy of the active configuration.
func GetConfig() Config {
	return config.Get()
}

// LoadConfigFromFile loads configuration from a JSON or YAML file and
// makes it active.
func LoadConfigFromFile(path string) error {
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return err
	}
	config.Set(cfg)
	return nil
}
