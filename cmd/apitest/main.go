// Command apitest runs a smoke test suite against a running Panchang API.
//
// Usage:
//
//	go run ./cmd/apitest -url http://localhost:8080 -v
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/zapponejosh/panchang-api/internal/api"
	"github.com/zapponejosh/panchang-api/internal/database"
	"github.com/zapponejosh/panchang-api/internal/panchang"
)

// =============================================================================
// Response Types
// =============================================================================

// APIResponse keeps Data raw so each test decodes its own payload.
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *api.ErrorInfo  `json:"error,omitempty"`
	status  int
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	client       *http.Client
	out          io.Writer
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL string, out io.Writer, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		out:     out,
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintln(tr.out, "Panchang API Test Suite")
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintf(tr.out, "Base URL: %s\n", tr.baseURL)

	tr.testHealth()
	tr.testToday()
	tr.testWeekdays()
	tr.testDateRange()
	tr.testLocations()
	tr.testEdgeCases()

	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	var health map[string]string
	if err := tr.getData("/health", &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health["status"] == "healthy" {
		tr.recordSuccess("Health check passed")
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health["status"]))
	}
}

func (tr *TestRunner) testToday() {
	tr.printSection("Today")

	var result panchang.Result
	if err := tr.getData("/api/v1/panchang/today", &result); err != nil {
		tr.recordError("Today (default location)", err.Error())
		return
	}
	tr.recordSuccess(fmt.Sprintf("Today at %s (%s): %s, %s %s",
		result.Location, result.Date, result.Vara.Name, result.Tithi.Paksha, result.Tithi.Name))
	tr.printResultDetail(&result)

	path := "/api/v1/panchang/today?lat=40.7128&lon=-74.0060&tz=America/New_York&name=New+York"
	if err := tr.getData(path, &result); err != nil {
		tr.recordError("Today (coordinates)", err.Error())
		return
	}
	tr.recordSuccess(fmt.Sprintf("Today at %s (%s) by coordinates", result.Location, result.Date))
}

func (tr *TestRunner) testWeekdays() {
	tr.printSection("Weekdays and Choghadiya")

	testCases := []struct {
		date string
		vara string
	}{
		{"2024-01-07", "Ravivar"},
		{"2024-01-08", "Somvar"},
		{"2024-01-09", "Mangalvar"},
		{"2024-01-10", "Budhvar"},
		{"2024-01-11", "Guruvar"},
		{"2024-01-12", "Shukravar"},
		{"2024-01-13", "Shanivar"},
	}

	for _, tc := range testCases {
		var result panchang.Result
		if err := tr.getData("/api/v1/panchang/date/"+tc.date+"?location=ujjain", &result); err != nil {
			tr.recordError(tc.date, err.Error())
			continue
		}

		if result.Vara.Name != tc.vara {
			tr.recordError(tc.date, fmt.Sprintf("vara = %s, want %s", result.Vara.Name, tc.vara))
			continue
		}
		if len(result.DayChoghadiya) != 8 || len(result.NightChoghadiya) != 8 {
			tr.recordError(tc.date, fmt.Sprintf("choghadiya = %d/%d, want 8/8",
				len(result.DayChoghadiya), len(result.NightChoghadiya)))
			continue
		}
		tr.recordSuccess(fmt.Sprintf("%s: %s, sunrise %s, %s", tc.date, result.Vara.Name, result.Sunrise, result.Nakshatra.Name))
	}
}

func (tr *TestRunner) testDateRange() {
	tr.printSection("Date Range")

	var data api.RangeResponse
	if err := tr.getData("/api/v1/panchang/range?start=2024-04-01&end=2024-04-30&location=varanasi", &data); err != nil {
		tr.recordError("Range (April 2024)", err.Error())
		return
	}

	if len(data.Days)+len(data.Skipped) != 30 {
		tr.recordError("Range (April 2024)", fmt.Sprintf("got %d days and %d skipped, want 30", len(data.Days), len(data.Skipped)))
		return
	}
	tr.recordSuccess(fmt.Sprintf("Range (April 2024): %d days, %d skipped", len(data.Days), len(data.Skipped)))

	for _, day := range data.Days {
		if len(day.Festivals) > 0 {
			tr.recordSuccess(fmt.Sprintf("%s: %s", day.Date, strings.Join(day.Festivals, ", ")))
		}
	}
}

func (tr *TestRunner) testLocations() {
	tr.printSection("Locations")

	var locations []database.Location
	if err := tr.getData("/api/v1/locations", &locations); err != nil {
		tr.recordError("List locations", err.Error())
		return
	}
	tr.recordSuccess(fmt.Sprintf("List locations: %d saved", len(locations)))

	for _, loc := range locations {
		var result panchang.Result
		path := "/api/v1/panchang/date/2024-01-07?location=" + url.QueryEscape(loc.Slug)
		if err := tr.getData(path, &result); err != nil {
			tr.recordError(loc.Slug, err.Error())
			continue
		}
		if tr.verbose {
			tr.recordSuccess(fmt.Sprintf("%s: sunrise %s, sunset %s", loc.Name, result.Sunrise, result.Sunset))
		}
	}
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	testCases := []struct {
		path   string
		status int
		code   string
		desc   string
	}{
		{"/api/v1/panchang/date/2024-02-30", http.StatusBadRequest, api.CodeInvalidDate, "Impossible date"},
		{"/api/v1/panchang/date/not-a-date", http.StatusBadRequest, api.CodeInvalidDate, "Malformed date"},
		{"/api/v1/panchang/date/2024-01-07?location=atlantis", http.StatusNotFound, api.CodeNotFound, "Unknown location"},
		{"/api/v1/panchang/date/2024-01-07?lat=100&lon=0&tz=UTC", http.StatusBadRequest, api.CodeInvalidLocation, "Latitude out of range"},
		{"/api/v1/panchang/date/2024-06-21?lat=89&lon=0&tz=UTC", http.StatusBadRequest, api.CodeNoSunrise, "Polar day"},
		{"/api/v1/panchang/range?start=2024-01-10&end=2024-01-01", http.StatusBadRequest, api.CodeBadRequest, "Reversed range"},
		{"/api/v1/panchang/date/2024-03-10T06:00:00Z?location=mumbai", http.StatusOK, "", "RFC 3339 timestamp"},
		{"/api/v1/panchang/date/2024-02-29", http.StatusOK, "", "Leap day"},
	}

	for _, tc := range testCases {
		resp, err := tr.get(tc.path)
		if err != nil {
			tr.recordError(tc.desc, err.Error())
			continue
		}
		if resp.status != tc.status {
			tr.recordError(tc.desc, fmt.Sprintf("HTTP %d, want %d", resp.status, tc.status))
			continue
		}
		if tc.code != "" && (resp.Error == nil || resp.Error.Code != tc.code) {
			tr.recordError(tc.desc, fmt.Sprintf("error code %v, want %s", resp.Error, tc.code))
			continue
		}
		tr.recordSuccess(fmt.Sprintf("%s: HTTP %d", tc.desc, resp.status))
	}
}

// =============================================================================
// Helper Methods
// =============================================================================

// get fetches path and decodes the envelope whatever the status.
func (tr *TestRunner) get(path string) (*APIResponse, error) {
	resp, err := tr.client.Get(tr.baseURL + path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	apiResp.status = resp.StatusCode

	return &apiResp, nil
}

// getData fetches path and decodes the data of a successful response into target.
func (tr *TestRunner) getData(path string, target any) error {
	resp, err := tr.get(path)
	if err != nil {
		return err
	}

	if !resp.Success {
		errMsg := "unknown error"
		if resp.Error != nil {
			errMsg = resp.Error.Message
		}
		return fmt.Errorf("API error (HTTP %d): %s", resp.status, errMsg)
	}

	return json.Unmarshal(resp.Data, target)
}

func (tr *TestRunner) printSection(name string) {
	fmt.Fprintln(tr.out)
	fmt.Fprintf(tr.out, "--- %s ---\n", name)
	fmt.Fprintln(tr.out)
}

func (tr *TestRunner) printResultDetail(r *panchang.Result) {
	if !tr.verbose || r == nil {
		return
	}
	fmt.Fprintf(tr.out, "    Sun: %s - %s, Moon: %s - %s\n", r.Sunrise, r.Sunset, r.Moonrise, r.Moonset)
	fmt.Fprintf(tr.out, "    Nakshatra: %s, Yoga: %s, Karana: %s\n", r.Nakshatra.Name, r.Yoga.Name, r.Karana.Name)
	fmt.Fprintf(tr.out, "    Month: %s, Samvat %d\n", r.LunarMonth, r.VikramSamvat)
	for _, m := range r.Inauspicious {
		fmt.Fprintf(tr.out, "    %s: %s - %s\n", m.Name, m.Start, m.End)
	}
	fmt.Fprintln(tr.out)
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Fprintf(tr.out, "  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Fprintf(tr.out, "  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Fprintln(tr.out)
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintln(tr.out, "Summary")
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintf(tr.out, "  Passed: %d\n", tr.successCount)
	fmt.Fprintf(tr.out, "  Failed: %d\n", tr.errorCount)
	fmt.Fprintln(tr.out)

	if tr.errorCount > 0 {
		fmt.Fprintln(tr.out, "Failures:")
		for _, err := range tr.errors {
			fmt.Fprintf(tr.out, "  • %s\n", err)
		}
		fmt.Fprintln(tr.out)
		fmt.Fprintf(tr.out, "Tests completed with %d failure(s)\n", tr.errorCount)
		return
	}

	fmt.Fprintln(tr.out, "All tests passed! ✓")
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	verbose := flag.Bool("v", false, "Verbose output (show almanac details)")
	flag.Parse()

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, os.Stdout, *verbose)
	runner.Run()

	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
