package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/sunset/pkg/errors"
	"github.com/matzehuels/sunset/pkg/report"
)

func TestRunShowJSON(t *testing.T) {
	c := newTestCLI(t, writeManifest(t, projectManifest))
	out := filepath.Join(t.TempDir(), "reports.json")

	err := c.runShow(context.Background(), "", showOpts{asJSON: true, output: out})
	if err != nil {
		t.Fatalf("runShow() error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}

	var reports []report.Report
	if err := json.Unmarshal(data, &reports); err != nil {
		t.Fatalf("output is not a report list: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
	if reports[0].Package != "billing" || len(reports[0].Rows) != 1 {
		t.Errorf("billing report = %+v, want one active row", reports[0])
	}
	if reports[0].Rows[0].State != "active" {
		t.Errorf("billing row state = %q, want active", reports[0].Rows[0].State)
	}
	if reports[1].Package != ":reports" || reports[1].Rows[0].State != "expired" {
		t.Errorf(":reports report = %+v, want one expired row", reports[1])
	}
}

func TestRunShowJSONSinglePackage(t *testing.T) {
	c := newTestCLI(t, writeManifest(t, projectManifest))
	out := filepath.Join(t.TempDir(), "billing.json")

	err := c.runShow(context.Background(), "billing", showOpts{asJSON: true, all: true, output: out})
	if err != nil {
		t.Fatalf("runShow() error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}

	var r report.Report
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatalf("output is not a single report: %v", err)
	}
	if r.Package != "billing" {
		t.Errorf("Package = %q, want billing", r.Package)
	}
	if len(r.Rows) != 1 {
		t.Errorf("got %d rows, want 1", len(r.Rows))
	}
}

func TestRunShowTableToFile(t *testing.T) {
	c := newTestCLI(t, writeManifest(t, projectManifest))
	out := filepath.Join(t.TempDir(), "report.txt")

	err := c.runShow(context.Background(), "", showOpts{output: out})
	if err != nil {
		t.Fatalf("runShow() error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.Contains(text, "billing") {
		t.Errorf("table output missing package name:\n%s", text)
	}
	if !strings.Contains(text, "legacy invoice export") {
		t.Errorf("table output missing record message:\n%s", text)
	}
}

func TestRunShowInvalidStates(t *testing.T) {
	c := newTestCLI(t, writeManifest(t, projectManifest))

	err := c.runShow(context.Background(), "", showOpts{states: "bogus"})
	if !errors.Is(err, errors.ErrCodeInvalidState) {
		t.Errorf("runShow() error = %v, want INVALID_STATE", err)
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name   string
		all    bool
		states string
		want   report.Filter
	}{
		{"default", false, "", report.DefaultFilter()},
		{"all wins", true, "expired", report.All()},
		{"explicit states", false, "pending,expired", report.Filter{Pending: true, Expired: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFilter(tt.all, tt.states)
			if err != nil {
				t.Fatalf("parseFilter() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseFilter() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
