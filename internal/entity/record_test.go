package entity

import (
	"testing"
	"time"
)

func TestFlatten(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"plain", "Acme Stores", "Acme Stores"},
		{"commas", "12, MG Road, Pune", "12 MG Road Pune"},
		{"newlines", "line one\nline two\r\n", "line oneline two"},
		{"bytes", []byte("a,b"), "ab"},
		{"int", int64(42), "42"},
		{"float", 87.5, "87.5"},
		{"date", time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), "2024-03-09"},
		{"timestamp", time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC), "2024-03-09 14:05:06"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Flatten(tc.in); got != tc.want {
				t.Fatalf("Flatten(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestRecordTextMissingColumn(t *testing.T) {
	r := &Record{ID: 1, Values: map[string]any{"city": "Pune"}}
	if got := r.Text("state"); got != "" {
		t.Fatalf("missing column rendered %q", got)
	}
	var nilRec *Record
	if got := nilRec.Text("city"); got != "" {
		t.Fatalf("nil record rendered %q", got)
	}
}
