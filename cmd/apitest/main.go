// Command apitest runs a smoke test against a running Zmanim API server.
//
// Usage:
//
//	go run ./cmd/apitest -url http://localhost:8080 -key $API_KEY
//
// Without -key the location write tests are skipped.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/zapponejosh/zmanim-api/internal/zmanim"
)

// =============================================================================
// Response Types - Match the actual API response structure
// =============================================================================

type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// HealthResponse is the response for /health
type HealthResponse struct {
	Status string `json:"status"`
}

// RangeResponse is the response for /zmanim/range
type RangeResponse struct {
	Start string       `json:"start"`
	End   string       `json:"end"`
	Days  []zmanim.Day `json:"days"`
}

// HebrewDateResponse is the response for /hebrew-date
type HebrewDateResponse struct {
	Gregorian string `json:"gregorian"`
	Text      string `json:"text"`
}

// YearResponse is the response for /years/{year}
type YearResponse struct {
	RoshHashana string `json:"rosh_hashana"`
	Days        int    `json:"days"`
	Kviah       string `json:"kviah"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	apiKey       string
	client       *http.Client
	out          io.Writer
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL, apiKey string, out io.Writer, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		out:     out,
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintln(tr.out, "Zmanim API Test Suite")
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintf(tr.out, "Base URL: %s\n", tr.baseURL)

	tr.testHealth()
	tr.testCoordinates()
	tr.testPolar()
	tr.testRange()
	tr.testSavedLocations()
	tr.testLocationWrites()
	tr.testJewishCalendar()
	tr.testEdgeCases()

	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	var health HealthResponse
	if err := tr.getData("/health", &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}
	if health.Status == "healthy" {
		tr.recordSuccess("Health check passed")
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testCoordinates() {
	tr.printSection("Coordinates")

	for _, calc := range []string{"noaa", "usno"} {
		var day zmanim.Day
		path := "/api/v1/zmanim?lat=40.0828&lon=-74.2094&tz=America/New_York&date=2007-02-08&calculator=" + calc
		if err := tr.getData(path, &day); err != nil {
			tr.recordError("Lakewood "+calc, err.Error())
			continue
		}
		if day.Sunrise == nil || day.Sunset == nil || !day.Sunrise.Before(*day.Sunset) {
			tr.recordError("Lakewood "+calc, "sunrise should precede sunset")
			continue
		}
		tr.recordSuccess(fmt.Sprintf("Lakewood (%s): sunrise %s, sunset %s",
			day.Calculator, clock(day.Sunrise, day.TimeZone), clock(day.Sunset, day.TimeZone)))
		tr.printDayDetail(&day)
	}
}

func (tr *TestRunner) testPolar() {
	tr.printSection("Polar Night")

	var day zmanim.Day
	if err := tr.getData("/api/v1/zmanim?lat=80&lon=15&tz=Arctic/Longyearbyen&date=2023-12-21", &day); err != nil {
		tr.recordError("Polar", err.Error())
		return
	}
	if day.Sunrise == nil && day.TemporalHour == nil {
		tr.recordSuccess(fmt.Sprintf("No sunrise at 80N in December (%d events missing)", len(day.Missing())))
	} else {
		tr.recordError("Polar", "expected no sunrise and no temporal hour")
	}
}

func (tr *TestRunner) testRange() {
	tr.printSection("Date Range")

	var data RangeResponse
	if err := tr.getData("/api/v1/zmanim/range?lat=31.778&lon=35.2354&tz=Asia/Jerusalem&start=2024-03-24&end=2024-03-30", &data); err != nil {
		tr.recordError("Range (week)", err.Error())
		return
	}
	if len(data.Days) == 7 {
		tr.recordSuccess(fmt.Sprintf("Week range returned %d days", len(data.Days)))
	} else {
		tr.recordError("Range (week)", fmt.Sprintf("Expected 7 days, got %d", len(data.Days)))
	}

	tr.expectStatus("Range limit", "/api/v1/zmanim/range?lat=0&lon=0&start=2024-01-01&end=2024-12-31", http.StatusBadRequest)
	tr.expectStatus("Inverted range", "/api/v1/zmanim/range?lat=0&lon=0&start=2024-12-31&end=2024-01-01", http.StatusBadRequest)
}

func (tr *TestRunner) testSavedLocations() {
	tr.printSection("Saved Locations")

	for _, name := range []string{"lakewood", "jerusalem", "apia"} {
		var day zmanim.Day
		if err := tr.getData("/api/v1/locations/"+name+"/zmanim?date=2024-06-21", &day); err != nil {
			tr.recordError(name, err.Error())
			continue
		}
		tr.recordSuccess(fmt.Sprintf("%s: sunrise %s, transit %s",
			name, clock(day.Sunrise, day.TimeZone), clock(day.SunTransit, day.TimeZone)))
	}

	var d struct {
		GeodesicDistance *float64 `json:"geodesic_distance_m"`
	}
	if err := tr.getData("/api/v1/distance?from=lakewood&to=jerusalem", &d); err != nil || d.GeodesicDistance == nil {
		tr.recordError("Distance", fmt.Sprintf("no geodesic distance (%v)", err))
	} else {
		tr.recordSuccess(fmt.Sprintf("Lakewood to Jerusalem: %.0f km", *d.GeodesicDistance/1000))
	}
}

func (tr *TestRunner) testLocationWrites() {
	tr.printSection("Location Writes")

	if tr.apiKey == "" {
		fmt.Fprintln(tr.out, "  - skipped (no -key)")
		return
	}

	name := fmt.Sprintf("apitest-%d", time.Now().UnixNano())
	body := map[string]any{"name": name, "latitude": 32.9646, "longitude": 35.496, "elevation": 900, "timezone": "Asia/Jerusalem"}

	status, err := tr.send(http.MethodPost, "/api/v1/locations", body)
	if err != nil || status != http.StatusCreated {
		tr.recordError("Create", fmt.Sprintf("HTTP %d (%v)", status, err))
		return
	}
	tr.recordSuccess("Created " + name)

	if status, _ := tr.send(http.MethodPost, "/api/v1/locations", body); status == http.StatusConflict {
		tr.recordSuccess("Duplicate name rejected")
	} else {
		tr.recordError("Duplicate", fmt.Sprintf("expected 409, got %d", status))
	}

	if status, _ := tr.send(http.MethodDelete, "/api/v1/locations/"+name, nil); status == http.StatusOK {
		tr.recordSuccess("Deleted " + name)
	} else {
		tr.recordError("Delete", fmt.Sprintf("HTTP %d", status))
	}
}

func (tr *TestRunner) testJewishCalendar() {
	tr.printSection("Jewish Calendar")

	var hd HebrewDateResponse
	if err := tr.getData("/api/v1/hebrew-date?date=2010-09-09", &hd); err != nil {
		tr.recordError("Hebrew date", err.Error())
	} else if hd.Text == "1 Tishrei 5771" {
		tr.recordSuccess("2010-09-09 is " + hd.Text)
	} else {
		tr.recordError("Hebrew date", fmt.Sprintf("Expected 1 Tishrei 5771, got %s", hd.Text))
	}

	tests := []struct {
		year        int
		roshHashana string
		days        int
	}{
		{5771, "2010-09-09", 385},
		{5784, "2023-09-16", 383},
		{5785, "2024-10-03", 355},
	}
	for _, tc := range tests {
		var y YearResponse
		if err := tr.getData(fmt.Sprintf("/api/v1/years/%d", tc.year), &y); err != nil {
			tr.recordError(fmt.Sprint(tc.year), err.Error())
			continue
		}
		if y.RoshHashana == tc.roshHashana && y.Days == tc.days {
			tr.recordSuccess(fmt.Sprintf("%d: Rosh Hashana %s, %d days, %s", tc.year, y.RoshHashana, y.Days, y.Kviah))
		} else {
			tr.recordError(fmt.Sprint(tc.year), fmt.Sprintf("got %s and %d days", y.RoshHashana, y.Days))
		}
	}

	var molad struct {
		Hours   int `json:"hours"`
		Minutes int `json:"minutes"`
	}
	if err := tr.getData("/api/v1/molad/5784/tishrei", &molad); err != nil {
		tr.recordError("Molad", err.Error())
	} else if molad.Hours == 5 && molad.Minutes == 49 {
		tr.recordSuccess("Molad Tishrei 5784 at 05:49")
	} else {
		tr.recordError("Molad", fmt.Sprintf("got %02d:%02d", molad.Hours, molad.Minutes))
	}
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	tr.expectStatus("Missing coordinates", "/api/v1/zmanim", http.StatusBadRequest)
	tr.expectStatus("Latitude out of range", "/api/v1/zmanim?lat=91&lon=0", http.StatusBadRequest)
	tr.expectStatus("Unknown calculator", "/api/v1/zmanim?lat=0&lon=0&calculator=sundial", http.StatusBadRequest)
	tr.expectStatus("Unknown location", "/api/v1/locations/atlantis/zmanim", http.StatusNotFound)
	tr.expectStatus("Invalid month", "/api/v1/molad/5784/14", http.StatusBadRequest)
}

// =============================================================================
// Helpers
// =============================================================================

func (tr *TestRunner) getData(path string, target any) error {
	resp, err := tr.client.Get(tr.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return fmt.Errorf("parse error: %w (body: %s)", err, string(body))
	}

	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return fmt.Errorf("API error: %s", errMsg)
	}

	return json.Unmarshal(apiResp.Data, target)
}

func (tr *TestRunner) send(method, path string, body any) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, tr.baseURL+path, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", tr.apiKey)

	resp, err := tr.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

func (tr *TestRunner) expectStatus(name, path string, want int) {
	resp, err := tr.client.Get(tr.baseURL + path)
	if err != nil {
		tr.recordError(name, err.Error())
		return
	}
	resp.Body.Close()

	if resp.StatusCode == want {
		tr.recordSuccess(fmt.Sprintf("%s rejected (%d)", name, want))
	} else {
		tr.recordError(name, fmt.Sprintf("Expected %d, got %d", want, resp.StatusCode))
	}
}

// clock formats t as a local wall-clock time in zone, or "none".
func clock(t *time.Time, zone string) string {
	if t == nil {
		return "none"
	}
	if loc, err := time.LoadLocation(zone); err == nil {
		return t.In(loc).Format("15:04:05")
	}
	return t.Format("15:04:05Z07:00")
}

func (tr *TestRunner) printSection(name string) {
	fmt.Fprintln(tr.out)
	fmt.Fprintf(tr.out, "--- %s ---\n", name)
	fmt.Fprintln(tr.out)
}

func (tr *TestRunner) printDayDetail(d *zmanim.Day) {
	if !tr.verbose {
		return
	}
	fmt.Fprintf(tr.out, "    Dawn (astronomical): %s\n", clock(d.BeginAstronomicalTwilight, d.TimeZone))
	fmt.Fprintf(tr.out, "    Transit:             %s\n", clock(d.SunTransit, d.TimeZone))
	fmt.Fprintf(tr.out, "    Dusk (astronomical): %s\n", clock(d.EndAstronomicalTwilight, d.TimeZone))
	if d.TemporalHour != nil {
		fmt.Fprintf(tr.out, "    Temporal hour:       %s\n", d.TemporalHour)
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
	}

	if tr.errorCount == 0 {
		fmt.Fprintln(tr.out, "All tests passed! ✓")
	} else {
		fmt.Fprintf(tr.out, "Tests completed with %d failure(s)\n", tr.errorCount)
	}
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	apiKey := flag.String("key", "", "API key for location write tests")
	verbose := flag.Bool("v", false, "Verbose output (show event details)")
	flag.Parse()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *apiKey, os.Stdout, *verbose)
	runner.Run()

	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
