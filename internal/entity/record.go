package entity

import (
	"fmt"
	"strings"
	"time"
)

// Record is one onboarding row as returned by the data source. Columns keeps
// the order the source projected them in.
type Record struct {
	ID      int64
	Columns []string
	Values  map[string]any
}

// Get returns the raw value for column, or nil when absent.
func (r *Record) Get(column string) any {
	if r == nil || r.Values == nil {
		return nil
	}
	return r.Values[column]
}

// Text renders the column as a single-line cell value: nil becomes "", and
// commas and line breaks are dropped rather than escaped.
func (r *Record) Text(column string) string {
	return Flatten(r.Get(column))
}

// Flatten converts a scanned SQL value to its report text.
func Flatten(v any) string {
	var s string
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		s = x
	case []byte:
		s = string(x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			s = x.Format("2006-01-02")
		} else {
			s = x.Format("2006-01-02 15:04:05")
		}
	default:
		s = fmt.Sprintf("%v", x)
	}
	return flattener.Replace(s)
}

var flattener = strings.NewReplacer(",", "", "\r", "", "\n", "")
