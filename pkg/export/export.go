package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"
)

// Table is a header plus string rows, ready for CSV output.
type Table interface {
	Header() []string
	Rows() [][]string
}

// WriteJSON writes v to w as a single JSON document.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	return enc.Encode(v)
}

// WriteCSV writes t to w with its header line first.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header()); err != nil {
		return err
	}
	for _, rec := range t.Rows() {
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Float formats f with the shortest exact representation.
func Float(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// OptFloat formats f, or the empty string when f is nil.
func OptFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return Float(*f)
}

// Int formats i in base 10.
func Int(i int) string {
	return strconv.Itoa(i)
}

// Bool formats b as true or false.
func Bool(b bool) string {
	return strconv.FormatBool(b)
}

// Date formats t as YYYY-MM-DD.
func Date(t time.Time) string {
	return t.Format(time.DateOnly)
}
