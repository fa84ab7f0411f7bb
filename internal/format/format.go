// Package format renders query results as delimited text or JSON and manages
// the output sink. The sink is opened late, after the result is known to carry
// rows, so a failed or empty query never leaves a file behind.
package format

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gabi/cli/internal/errors"
	"gabi/cli/internal/gabi"
)

// Write renders result to path (empty means stdout), separating fields with
// sep. When asCSV is false the raw result JSON is written verbatim instead.
// A response without rows produces no output and no file.
func Write(path string, result *gabi.QueryResponse, sep string, asCSV bool) (err error) {
	if !result.HasRows() {
		return nil
	}

	sink, err := openSink(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = errors.Wrap(errors.IOFailed, "close output", cerr)
		}
	}()

	if !asCSV {
		if _, werr := sink.Write(result.Result); werr != nil {
			return errors.Wrap(errors.IOFailed, "write result", werr)
		}
		return nil
	}

	rows, err := result.Rows()
	if err != nil {
		return errors.Wrap(errors.ServiceFailed, "malformed result payload", err)
	}
	return writeDelimited(sink, rows, sep)
}

// openSink opens the output destination. An empty path means stdout; a named
// file is created fresh, truncating any previous contents.
func openSink(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(errors.IOFailed, "create output file", err)
	}
	return f, nil
}

// nopCloser keeps the process's stdout open across the formatter's
// close-on-every-path discipline.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// writeDelimited writes rows as separator-joined lines with every cell quoted,
// so the output stays parseable even when cells contain the separator or
// newlines.
func writeDelimited(w io.Writer, rows [][]any, sep string) error {
	for _, row := range rows {
		fields := make([]string, len(row))
		for i, cell := range row {
			fields[i] = quote(cell)
		}
		if _, err := fmt.Fprintf(w, "%s\r\n", strings.Join(fields, sep)); err != nil {
			return errors.Wrap(errors.IOFailed, "write row", err)
		}
	}
	return nil
}

// quote renders one cell as a quoted field, doubling embedded quote
// characters per RFC 4180 so a standard CSV reader round-trips the value.
func quote(cell any) string {
	return `"` + strings.ReplaceAll(cellString(cell), `"`, `""`) + `"`
}

func cellString(cell any) string {
	if cell == nil {
		return ""
	}
	if s, ok := cell.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", cell)
}
