package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/paulmach/orb/geojson"

	"github.com/nikpau/sr-gen/pkg/pipeline"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewServer(pipeline.NewRunner(nil, nil), nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

const smallRequest = `{
	"params": {
		"seed": 42,
		"nsegments": 3,
		"gp": 5,
		"lengths": {"low": 400, "high": 600},
		"radii": {"low": 800, "high": 1200},
		"angles": {"low": 20, "high": 40}
	}
}`

func TestHealthz(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q", body["status"])
	}
}

func TestGenerateSummary(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Post(srv.URL+"/api/generate", "application/json", strings.NewReader(smallRequest))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body %s", resp.StatusCode, data)
	}

	var body summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Seed != 42 {
		t.Errorf("seed = %d, want 42", body.Seed)
	}
	if body.Cols != 5 || body.Rows < 3 {
		t.Errorf("dimensions = %dx%d", body.Rows, body.Cols)
	}
	if body.Points != body.Rows*body.Cols {
		t.Errorf("points = %d", body.Points)
	}
	if body.Length <= 0 {
		t.Errorf("length = %v", body.Length)
	}
}

func TestGenerateGeoJSON(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Post(srv.URL+"/api/generate?format=geojson", "application/json", strings.NewReader(smallRequest))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/geo+json" {
		t.Errorf("content type = %q", ct)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// Outline plus one feature per mesh point.
	if len(fc.Features) < 2 {
		t.Errorf("feature count = %d", len(fc.Features))
	}
	if kind := fc.Features[0].Properties["kind"]; kind != "boundary" {
		t.Errorf("first feature kind = %v", kind)
	}
}

func TestGenerateInvalidParams(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Post(srv.URL+"/api/generate", "application/json",
		strings.NewReader(`{"params": {"gp": 1}}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != "INVALID_PARAMETER" {
		t.Errorf("error code = %q", body.Code)
	}
}

func TestGenerateMalformedBody(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Post(srv.URL+"/api/generate", "application/json", strings.NewReader("{"))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
