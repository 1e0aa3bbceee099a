package network

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"reflect"
	"strings"
)

const (
	stationsFile = "stations.csv"
	segmentsFile = "segments.csv"
	linesFile    = "lines.csv"
)

// OpenArchive opens a network archive: a .zip file or a directory holding
// the CSV files. The returned closer must be closed when done.
func OpenArchive(path string) (fs.FS, io.Closer, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("stat archive: %w", err)
	}
	if info.IsDir() {
		return os.DirFS(path), dirCloser{}, nil
	}
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open zip: %w", err)
	}
	return r, r, nil
}

type dirCloser struct{}

func (dirCloser) Close() error { return nil }

// ParseFS reads stations.csv, segments.csv and lines.csv from fsys.
func ParseFS(fsys fs.FS, logger *slog.Logger) (*Network, error) {
	net := &Network{}
	var err error

	if net.Stations, err = parseCSVFile[StationRecord](fsys, stationsFile); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", stationsFile, err)
	}
	if net.Segments, err = parseCSVFile[SegmentRecord](fsys, segmentsFile); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", segmentsFile, err)
	}
	if net.Lines, err = parseCSVFile[LineRecord](fsys, linesFile); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", linesFile, err)
	}

	logger.Info("network archive parsed",
		"stations", len(net.Stations),
		"segments", len(net.Segments),
		"lines", len(net.Lines),
	)
	return net, nil
}

// parseCSVFile reads a single CSV file from fsys and decodes it into a slice of T.
func parseCSVFile[T any](fsys fs.FS, name string) ([]T, error) {
	rc, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer rc.Close()

	reader := csv.NewReader(rc)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	// Strip BOM from first field if present
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\xef\xbb\xbf")
	}

	fieldMap, err := buildFieldMap[T](header)
	if err != nil {
		return nil, err
	}

	var results []T
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		results = append(results, decodeRecord[T](record, fieldMap))
	}
	return results, nil
}

type fieldMapping struct {
	csvIndex   int
	fieldIndex int
}

// buildFieldMap maps CSV column positions to struct field positions.
// Every tagged field must have a column.
func buildFieldMap[T any](header []string) ([]fieldMapping, error) {
	var t T
	typ := reflect.TypeOf(t)

	tagToField := make(map[string]int)
	for i := 0; i < typ.NumField(); i++ {
		if tag := typ.Field(i).Tag.Get("csv"); tag != "" {
			tagToField[tag] = i
		}
	}

	var mappings []fieldMapping
	seen := make(map[string]bool)
	for csvIdx, colName := range header {
		colName = strings.TrimSpace(colName)
		if fieldIdx, ok := tagToField[colName]; ok {
			mappings = append(mappings, fieldMapping{csvIndex: csvIdx, fieldIndex: fieldIdx})
			seen[colName] = true
		}
	}
	for tag := range tagToField {
		if !seen[tag] {
			return nil, fmt.Errorf("missing column %q", tag)
		}
	}
	return mappings, nil
}

// decodeRecord fills a struct T from a CSV record using the field mapping.
func decodeRecord[T any](record []string, fieldMap []fieldMapping) T {
	var t T
	v := reflect.ValueOf(&t).Elem()
	for _, fm := range fieldMap {
		if fm.csvIndex < len(record) {
			v.Field(fm.fieldIndex).SetString(strings.TrimSpace(record[fm.csvIndex]))
		}
	}
	return t
}
