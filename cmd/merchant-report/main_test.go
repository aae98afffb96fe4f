package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"github.com/joseph-ayodele/merchant-report/constants"
	"github.com/joseph-ayodele/merchant-report/internal/pipeline"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunInMemoryPrintsJSONSummary(t *testing.T) {
	base := t.TempDir()
	t.Setenv("REPORT_BASE_DIR", base)
	t.Setenv("REPORT_TIMEZONE", "UTC")
	t.Setenv("SFTP_ENABLED", "false")

	out, err := execute(t, "run", "--inmem", "--json", "--date", "2024-03-10", "--log-level", "error")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}

	var got pipeline.Summary
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode summary %q: %v", out, err)
	}
	if !got.ExcelGenerated || got.DocumentsDownloaded || got.ImagesDownloaded {
		t.Fatalf("unexpected summary %+v", got)
	}
	if _, err := os.Stat(filepath.Join(base, "2024-03-09", constants.ReportFileName)); err != nil {
		t.Fatalf("report not staged: %v", err)
	}
}

func TestRunRefusesWhileLockHeld(t *testing.T) {
	base := t.TempDir()
	t.Setenv("REPORT_BASE_DIR", base)

	holder := flock.New(filepath.Join(base, ".merchant-report.lock"))
	if ok, err := holder.TryLock(); err != nil || !ok {
		t.Fatalf("hold lock: ok=%v err=%v", ok, err)
	}
	defer func() { _ = holder.Unlock() }()

	_, err := execute(t, "run", "--inmem", "--json", "--log-level", "error")
	if !errors.Is(err, errAlreadyRunning) {
		t.Fatalf("expected lock refusal, got %v", err)
	}
}

func TestSFTPHealthRequiresHost(t *testing.T) {
	t.Setenv("SFTP_HOST", "")
	t.Setenv("SFTP_USER", "ops")
	if _, err := execute(t, "sftphealth", "--log-level", "error"); err == nil {
		t.Fatal("expected error without SFTP_HOST")
	}
}

func TestRunRejectsBadDate(t *testing.T) {
	t.Setenv("REPORT_BASE_DIR", t.TempDir())
	if _, err := execute(t, "run", "--inmem", "--date", "10/03/2024", "--log-level", "error"); err == nil {
		t.Fatal("expected error for malformed --date")
	}
}

func TestSweepRemovesCycle(t *testing.T) {
	base := t.TempDir()
	t.Setenv("REPORT_BASE_DIR", base)
	t.Setenv("REPORT_TIMEZONE", "UTC")
	dir := filepath.Join(base, "2024-03-08", "images")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "sweep", "--date", "2024-03-08", "--log-level", "error")
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if !strings.Contains(out, "removed 2024-03-08") {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := os.Stat(filepath.Join(base, "2024-03-08")); !os.IsNotExist(err) {
		t.Fatalf("cycle still present: %v", err)
	}

	out, err = execute(t, "sweep", "--date", "2024-03-08", "--log-level", "error")
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if !strings.Contains(out, "nothing removed") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	if _, err := execute(t, "sweep", "--log-level", "loud"); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestWriteSummaryFallsBackToJSONWhenNotATerminal(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)

	s := &pipeline.Summary{ExcelGenerated: true, ImagesDownloaded: true, DownloadCounts: map[string]int{"pan_image": 2}}
	if err := writeSummary(cmd, s, false); err != nil {
		t.Fatalf("writeSummary: %v", err)
	}
	if !strings.Contains(out.String(), `"pan_image": 2`) {
		t.Fatalf("expected JSON output, got %q", out.String())
	}
}

func TestSummaryTableListsEveryField(t *testing.T) {
	s := &pipeline.Summary{
		ExcelGenerated:      true,
		DocumentsDownloaded: true,
		DownloadCounts:      map[string]int{"api_pdf_url": 3},
	}
	rendered := summaryTable(s)
	for _, spec := range constants.AssetFields {
		if !strings.Contains(rendered, spec.Header) {
			t.Errorf("table missing %q", spec.Header)
		}
	}
	if strings.Index(rendered, "API PDF URL") > strings.Index(rendered, "PAN Image") {
		t.Error("documents should be listed before images")
	}
}

func TestErrorSummaryRendersMessage(t *testing.T) {
	var out bytes.Buffer
	renderSummary(&out, &pipeline.Summary{Error: "Failed to generate report: boom"})
	if strings.TrimSpace(out.String()) != "Failed to generate report: boom" {
		t.Fatalf("got %q", out.String())
	}
}
