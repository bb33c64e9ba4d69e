package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"airfoil-lab-service/internal/api/dto"
)

func TestGenerateAirfoil(t *testing.T) {
	h := &AirfoilHandler{}

	body := `{"airfoil_type": "naca", "naca_designation": "4412"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/airfoils/generate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res dto.GenerateAirfoilResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Designation != "NACA 4412" {
		t.Fatalf("expected NACA 4412, got %q", res.Designation)
	}
	if len(res.Coordinates) == 0 {
		t.Fatal("expected coordinates")
	}
	if res.Properties == nil {
		t.Fatal("expected properties")
	}
	if res.Properties.Chord != 1 {
		t.Fatalf("expected unit chord, got %v", res.Properties.Chord)
	}
}

func TestGenerateAirfoilPresetLabel(t *testing.T) {
	h := &AirfoilHandler{}

	body := `{"airfoil_type": "preset", "preset_name": "high_lift"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/airfoils/generate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res dto.GenerateAirfoilResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Designation != "high_lift" {
		t.Fatalf("expected the preset name, got %q", res.Designation)
	}
}

func multipartDat(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestUploadAirfoil(t *testing.T) {
	h := &AirfoilHandler{}

	dat := "Test Foil\n" +
		"1.00000  0.00100\n" +
		"0.50000  0.06000\n" +
		"0.00000  0.00000\n" +
		"0.50000 -0.06000\n" +
		"1.00000 -0.00100\n"
	buf, contentType := multipartDat(t, "testfoil.dat", dat)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/airfoils/upload", buf)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res dto.UploadAirfoilResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Name != "Test Foil" {
		t.Fatalf("expected the header name, got %q", res.Name)
	}
	if len(res.Coordinates) != 5 {
		t.Fatalf("expected 5 points, got %d", len(res.Coordinates))
	}
}

func TestUploadAirfoilNameFallsBackToFilename(t *testing.T) {
	h := &AirfoilHandler{}

	dat := "1.0 0.001\n0.5 0.06\n0.0 0.0\n0.5 -0.06\n1.0 -0.001\n"
	buf, contentType := multipartDat(t, "ag25.dat", dat)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/airfoils/upload", buf)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res dto.UploadAirfoilResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Name != "ag25" {
		t.Fatalf("expected the filename without extension, got %q", res.Name)
	}
}

func TestUploadAirfoilRequiresFile(t *testing.T) {
	h := &AirfoilHandler{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/airfoils/upload", strings.NewReader("not a form"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := errorMessage(t, rec); got != "multipart form with a 'file' field is required" {
		t.Fatalf("unexpected error message: %q", got)
	}
}

func TestPlotAirfoilPNG(t *testing.T) {
	h := &AirfoilHandler{}

	body := `{"airfoil_type": "naca", "naca_designation": "0012"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/airfoils/plot", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Plot(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected image/png, got %q", ct)
	}
	sig := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	if !bytes.HasPrefix(rec.Body.Bytes(), sig) {
		t.Fatal("body does not start with the PNG signature")
	}
}
