package constants

import "testing"

func TestReportColumnsAligned(t *testing.T) {
	if len(ReportHeaders) != len(RecordColumns) {
		t.Fatalf("headers=%d columns=%d", len(ReportHeaders), len(RecordColumns))
	}
	if got := ReportHeaders[IdentifierColumn]; got != "Registered Phone Number" {
		t.Fatalf("identifier column points at %q", got)
	}
	if got := RecordColumns[IdentifierColumn]; got != "reg_mobile_number" {
		t.Fatalf("identifier column source is %q", got)
	}
}

func TestAssetFieldsResolveToHeaders(t *testing.T) {
	index := make(map[string]int, len(ReportHeaders))
	for i, h := range ReportHeaders {
		index[h] = i
	}
	for _, spec := range AssetFields {
		i, ok := index[spec.Header]
		if !ok {
			t.Fatalf("asset header %q missing from report headers", spec.Header)
		}
		if RecordColumns[i] != string(spec.Field) {
			t.Fatalf("header %q fed by %q, want %q", spec.Header, RecordColumns[i], spec.Field)
		}
	}
}

func TestClassificationDir(t *testing.T) {
	if ClassDocument.Dir() != "documents" || ClassImage.Dir() != "images" {
		t.Fatalf("unexpected dirs: %s %s", ClassDocument.Dir(), ClassImage.Dir())
	}
}
