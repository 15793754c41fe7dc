// Package summary owns the cumulative CSV that benchmark and power rows are
// appended to.
package summary

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ALEYI17/InfraSight_freqbench/pkg/logutil"
	"github.com/ALEYI17/InfraSight_freqbench/pkg/types"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const separator = ","

type options struct {
	lock bool
}

type Option func(*options)

// WithLock takes an exclusive advisory lock on the summary for the lifetime
// of the File.
func WithLock(enabled bool) Option {
	return func(o *options) {
		o.lock = enabled
	}
}

// File is an append-only summary CSV. Whether a header is required is
// decided once, when the file is opened.
type File struct {
	path   string
	f      *os.File
	locked bool

	needsHeader bool

	// columns is the established header, frequency first. Nil when the file
	// holds rows without a recognised header.
	columns []string
}

func Open(path string, opts ...Option) (*File, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "open summary")
	}

	sf := &File{path: path, f: f}

	if o.lock {
		if err := lockFile(f); err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "lock summary %s", path)
		}
		sf.locked = true
	}

	if err := sf.inspect(); err != nil {
		return nil, multierr.Append(err, sf.Close())
	}

	return sf, nil
}

// WithFile opens the summary, runs fn and always closes the file afterwards.
func WithFile(path string, fn func(*File) error, opts ...Option) (err error) {
	sf, err := Open(path, opts...)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, sf.Close())
	}()
	return fn(sf)
}

func (sf *File) inspect() error {
	info, err := sf.f.Stat()
	if err != nil {
		return errors.Wrap(err, "stat summary")
	}
	if info.Size() == 0 {
		sf.needsHeader = true
		return nil
	}

	r, err := os.Open(sf.path)
	if err != nil {
		return errors.Wrap(err, "read summary header")
	}
	defer r.Close()

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return errors.Wrap(err, "read summary header")
	}

	cells := strings.Split(strings.TrimRight(line, "\r\n"), separator)
	if len(cells) > 0 && strings.TrimSpace(cells[0]) == types.FrequencyColumn {
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		sf.columns = cells
	}
	return nil
}

func (sf *File) Path() string {
	return sf.path
}

// NeedsHeader reports whether the file was new or empty and nothing has been
// written to it yet.
func (sf *File) NeedsHeader() bool {
	return sf.needsHeader
}

func (sf *File) Columns() []string {
	return sf.columns
}

// AppendFields appends one benchmark row. The header frequency,<names...> is
// written first when the file was empty. Once a header is established the
// row follows its column order.
func (sf *File) AppendFields(freq int, fields []types.Field) error {
	if sf.needsHeader {
		columns := append([]string{types.FrequencyColumn}, types.FieldNames(fields)...)
		if err := sf.writeLine(strings.Join(columns, separator)); err != nil {
			return err
		}
		sf.columns = columns
		sf.needsHeader = false
	}

	values, err := sf.align(fields)
	if err != nil {
		return err
	}
	return sf.writeLine(FormatRow(freq, values))
}

// AppendValues appends a positional row and never writes a header.
func (sf *File) AppendValues(freq int, values []float64) error {
	if err := sf.writeLine(FormatRow(freq, values)); err != nil {
		return err
	}
	sf.needsHeader = false
	return nil
}

func (sf *File) align(fields []types.Field) ([]float64, error) {
	if sf.columns == nil {
		values := make([]float64, 0, len(fields))
		for _, f := range fields {
			values = append(values, f.Value)
		}
		return values, nil
	}

	byName := make(map[string]float64, len(fields))
	for _, f := range fields {
		byName[f.Name] = f.Value
	}

	values := make([]float64, 0, len(sf.columns)-1)
	for _, col := range sf.columns[1:] {
		v, ok := byName[col]
		if !ok {
			return nil, errors.Wrapf(types.ErrMalformedInput, "column %q of %s missing from row", col, sf.path)
		}
		values = append(values, v)
		delete(byName, col)
	}

	if len(byName) > 0 {
		extra := make([]string, 0, len(byName))
		for name := range byName {
			extra = append(extra, name)
		}
		logutil.GetLogger().Warn("dropping fields not present in summary header",
			zap.String("summary", sf.path),
			zap.Strings("fields", extra))
	}
	return values, nil
}

func (sf *File) writeLine(line string) error {
	if _, err := io.WriteString(sf.f, line+"\n"); err != nil {
		return errors.Wrapf(err, "append to %s", sf.path)
	}
	return nil
}

func (sf *File) Close() error {
	if sf.f == nil {
		return nil
	}
	var err error
	if sf.locked {
		err = unlockFile(sf.f)
		sf.locked = false
	}
	err = multierr.Append(err, sf.f.Close())
	sf.f = nil
	return err
}

// FormatRow renders freq followed by values with two decimals.
func FormatRow(freq int, values []float64) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(freq))
	for _, v := range values {
		sb.WriteString(separator)
		sb.WriteString(FormatValue(v))
	}
	return sb.String()
}

func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
