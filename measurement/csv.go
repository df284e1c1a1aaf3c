package measurement

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	XColumn    string // Column name for x values (default: "x")
	YColumn    string // Column name for y values (default: "y")
	XErrColumn string // Column name for x uncertainties (default: "xerr", optional)
	YErrColumn string // Column name for y uncertainties (default: "yerr", optional)
	HasHeader  bool   // Whether CSV has header row (default: true)
	Delimiter  rune   // Field delimiter (default: ',')
	SkipRows   int    // Number of rows to skip at start
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		XColumn:    "x",
		YColumn:    "y",
		XErrColumn: "xerr",
		YErrColumn: "yerr",
		HasHeader:  true,
		Delimiter:  ',',
	}
}

// LoadCSV loads a sample from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Sample, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	s, err := LoadCSVFromReader(file, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// LoadCSVFromReader loads a sample from an io.Reader.
// Rows with a missing x or y value are skipped. Uncertainty columns are
// optional; an empty or NA uncertainty is treated as zero uncertainty and a
// malformed one is an error.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Sample, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	xIdx, yIdx, xErrIdx, yErrIdx := 0, 1, -1, -1
	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, err
		}
		xIdx, yIdx = -1, -1
		for i, h := range header {
			h = unquote(h)
			switch {
			case h == opts.XColumn:
				xIdx = i
			case h == opts.YColumn:
				yIdx = i
			case opts.XErrColumn != "" && h == opts.XErrColumn:
				xErrIdx = i
			case opts.YErrColumn != "" && h == opts.YErrColumn:
				yErrIdx = i
			}
		}
		if xIdx == -1 || yIdx == -1 {
			return nil, fmt.Errorf("columns %q and %q are required", opts.XColumn, opts.YColumn)
		}
	}

	var x, y, xErr, yErr []float64
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		xv, ok := parseField(record, xIdx)
		if !ok {
			continue
		}
		yv, ok := parseField(record, yIdx)
		if !ok {
			continue
		}
		x = append(x, xv)
		y = append(y, yv)

		if xErrIdx >= 0 {
			v, err := parseUncertainty(record, xErrIdx)
			if err != nil {
				return nil, fmt.Errorf("row %d: %s: %w", len(x), opts.XErrColumn, err)
			}
			xErr = append(xErr, v)
		}
		if yErrIdx >= 0 {
			v, err := parseUncertainty(record, yErrIdx)
			if err != nil {
				return nil, fmt.Errorf("row %d: %s: %w", len(x), opts.YErrColumn, err)
			}
			yErr = append(yErr, v)
		}
	}

	if len(x) == 0 {
		return nil, errors.New("no valid data found in CSV")
	}

	s := &Sample{X: x, Y: y}
	if xErrIdx >= 0 {
		s.XErr = PerPoint(xErr)
	}
	if yErrIdx >= 0 {
		s.YErr = PerPoint(yErr)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// SaveCSV saves a sample to a CSV file. Uncertainty columns are written only
// when the uncertainty is set.
func SaveCSV(s *Sample, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if err := WriteCSV(writer, s); err != nil {
		return err
	}
	return writer.Flush()
}

// WriteCSV writes a sample as CSV with a header row.
func WriteCSV(w io.Writer, s *Sample) error {
	n := s.Len()
	xErr := s.XErr.Values(n)
	yErr := s.YErr.Values(n)

	cw := csv.NewWriter(w)
	header := []string{"x", "y"}
	if xErr != nil {
		header = append(header, "xerr")
	}
	if yErr != nil {
		header = append(header, "yerr")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		row := []string{formatFloat(s.X[i]), formatFloat(s.Y[i])}
		if xErr != nil {
			row = append(row, formatFloat(xErr[i]))
		}
		if yErr != nil {
			row = append(row, formatFloat(yErr[i]))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func parseField(record []string, idx int) (float64, bool) {
	if idx < 0 || idx >= len(record) {
		return 0, false
	}
	s := unquote(record[idx])
	if missing(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseUncertainty returns 0 for a missing cell and an error for a cell that
// is not a number.
func parseUncertainty(record []string, idx int) (float64, error) {
	if idx >= len(record) {
		return 0, nil
	}
	s := unquote(record[idx])
	if missing(s) {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidUncertainty, s)
	}
	return v, nil
}

func missing(s string) bool {
	return s == "" || s == "NA" || s == "NaN" || s == "null"
}

func unquote(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\""))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
