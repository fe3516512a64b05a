// Package io provides the CSV codec for frames.
//
// The format is RFC 4180 with two documented extensions on write: a
// null cell becomes an empty unquoted field, while an empty string
// becomes an empty quoted field (""), so the two survive a round trip.
// The reader keeps per-field quoting information for the same reason,
// supports quoted fields spanning physical lines, and infers a column
// kind from the narrowest type that parses every non-empty value.
package io

import (
	"io"

	"github.com/rudolfterhaar/duckframe/internal/config"
)

// CSVOptions contains configuration options for CSV operations
type CSVOptions struct {
	// Delimiter is the field delimiter (default: comma)
	Delimiter rune
	// Header indicates whether the first row contains column names
	Header bool
	// SampleRows bounds how many rows type inference examines
	// (0 = all rows)
	SampleRows int
}

// DefaultCSVOptions returns CSV options seeded from the active
// configuration.
func DefaultCSVOptions() CSVOptions {
	cfg := config.Get()
	return CSVOptions{
		Delimiter:  cfg.CSVDelimiter,
		Header:     cfg.CSVHeader,
		SampleRows: cfg.InferenceSampleRows,
	}
}

// CSVReader reads CSV data and converts it to a Frame
type CSVReader struct {
	reader  io.Reader
	options CSVOptions
}

// NewCSVReader creates a new CSV reader with the specified options
func NewCSVReader(reader io.Reader, options CSVOptions) *CSVReader {
	if options.Delimiter == 0 {
		options.Delimiter = ','
	}
	return &CSVReader{reader: reader, options: options}
}

// CSVWriter writes Frames to CSV format
type CSVWriter struct {
	writer  io.Writer
	options CSVOptions
}

// NewCSVWriter creates a new CSV writer with the specified options
func NewCSVWriter(writer io.Writer, options CSVOptions) *CSVWriter {
	if options.Delimiter == 0 {
		options.Delimiter = ','
	}
	return &CSVWriter{writer: writer, options: options}
}
