package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zapponejosh/panchang-api/internal/panchang"
)

// runCLI executes the root command against a fresh database in a temp dir.
func runCLI(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()

	t.Setenv("EPHEMERIS_URL", "")
	t.Setenv("DEFAULT_LOCATION", "")
	t.Setenv("LOG_LEVEL", "error")

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--db", dbPath))

	err := root.Execute()
	return out.String(), err
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "panchang.db")
}

func TestCalc_SavedLocationJSON(t *testing.T) {
	out, err := runCLI(t, tempDB(t), "calc", "--date", "2024-01-07", "--location", "new-delhi", "--json")
	if err != nil {
		t.Fatalf("calc: %v", err)
	}

	var result panchang.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if result.Location != "New Delhi" {
		t.Errorf("Location = %q, want New Delhi", result.Location)
	}
	if result.Vara.Name != "Ravivar" {
		t.Errorf("Vara = %q, want Ravivar", result.Vara.Name)
	}
	if result.VikramSamvat != 2080 {
		t.Errorf("VikramSamvat = %d, want 2080", result.VikramSamvat)
	}
}

func TestCalc_DefaultLocationText(t *testing.T) {
	out, err := runCLI(t, tempDB(t), "calc", "-d", "2024-01-07")
	if err != nil {
		t.Fatalf("calc: %v", err)
	}

	for _, want := range []string{"New Delhi", "2024-01-07", "Ravivar", "Vikram 2080, Shaka 1945", "Rahu Kaal", "Day choghadiya", "method mean-elements"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCalc_Coordinates(t *testing.T) {
	out, err := runCLI(t, tempDB(t), "calc", "--date", "2024-01-07",
		"--lat", "40.7128", "--lon", "-74.006", "--tz", "America/New_York", "--name", "New York", "--json")
	if err != nil {
		t.Fatalf("calc: %v", err)
	}

	var result panchang.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if result.Location != "New York" || result.Timezone != "America/New_York" {
		t.Errorf("location = %q (%s), want New York (America/New_York)", result.Location, result.Timezone)
	}
}

func TestCalc_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown location", []string{"calc", "--location", "atlantis"}, "not found"},
		{"lat without lon", []string{"calc", "--lat", "10", "--tz", "UTC"}, "together"},
		{"coordinates without zone", []string{"calc", "--lat", "10", "--lon", "10"}, "--tz"},
		{"slug and coordinates", []string{"calc", "--location", "ujjain", "--lat", "10", "--lon", "10", "--tz", "UTC"}, "cannot be combined"},
		{"bad date", []string{"calc", "--location", "ujjain", "--date", "yesterday"}, "invalid date"},
		{"polar", []string{"calc", "--date", "2024-06-21", "--lat", "89", "--lon", "0", "--tz", "UTC"}, "does not rise"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tempDB(t), tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestRange(t *testing.T) {
	out, err := runCLI(t, tempDB(t), "range", "--start", "2024-01-07", "--end", "2024-01-09", "-l", "ujjain")
	if err != nil {
		t.Fatalf("range: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header plus 3:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "2024-01-07") || !strings.HasPrefix(lines[3], "2024-01-09") {
		t.Errorf("unexpected rows:\n%s", out)
	}
}

func TestRange_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing end", []string{"range", "--start", "2024-01-01"}},
		{"reversed", []string{"range", "--start", "2024-01-05", "--end", "2024-01-01"}},
		{"bad format", []string{"range", "--start", "2024/01/01", "--end", "2024-01-02"}},
		{"too long", []string{"range", "--start", "2024-01-01", "--end", "2024-12-31"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCLI(t, tempDB(t), tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLocationsImportAndList(t *testing.T) {
	dbPath := tempDB(t)
	file := filepath.Join(t.TempDir(), "locations.yaml")
	content := `locations:
  - name: Chennai
    latitude: 13.0827
    longitude: 80.2707
    timezone: Asia/Kolkata
  - slug: ujjain
    name: Ujjain (Mahakal)
    latitude: 23.1828
    longitude: 75.7681
    timezone: Asia/Kolkata
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, dbPath, "locations", "import", file)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "imported 2 locations") {
		t.Errorf("import output = %q", out)
	}

	out, err = runCLI(t, dbPath, "locations", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"chennai", "Ujjain (Mahakal)", "kathmandu"} {
		if !strings.Contains(out, want) {
			t.Errorf("list missing %q:\n%s", want, out)
		}
	}

	// The imported slug is usable straight away.
	if _, err := runCLI(t, dbPath, "calc", "--date", "2024-01-07", "-l", "chennai", "--json"); err != nil {
		t.Errorf("calc with imported location: %v", err)
	}
}

func TestLocationsImport_RollsBackOnInvalidEntry(t *testing.T) {
	dbPath := tempDB(t)
	file := filepath.Join(t.TempDir(), "bad.yaml")
	content := `locations:
  - name: Pune
    latitude: 18.52
    longitude: 73.85
    timezone: Asia/Kolkata
  - name: Nowhere
    latitude: 123
    longitude: 0
    timezone: UTC
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCLI(t, dbPath, "locations", "import", file); err == nil {
		t.Fatal("import succeeded, want error")
	}

	out, err := runCLI(t, dbPath, "locations", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.Contains(out, "pune") {
		t.Errorf("partial import persisted:\n%s", out)
	}
}

func TestReadLocationsFile_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := readLocationsFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file: expected error")
	}

	empty := filepath.Join(dir, "empty.yaml")
	os.WriteFile(empty, []byte("locations: []\n"), 0o644)
	if _, err := readLocationsFile(empty); err == nil {
		t.Error("empty file: expected error")
	}

	broken := filepath.Join(dir, "broken.yaml")
	os.WriteFile(broken, []byte("locations: [\n"), 0o644)
	if _, err := readLocationsFile(broken); err == nil {
		t.Error("broken yaml: expected error")
	}
}
