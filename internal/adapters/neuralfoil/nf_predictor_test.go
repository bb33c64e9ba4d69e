package neuralfoil

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"airfoil-lab-service/internal/airfoil"
	"airfoil-lab-service/internal/domain"
)

func testCoords(t *testing.T, code string) airfoil.Coordinates {
	t.Helper()
	spec, err := airfoil.ParseDesignation(code)
	if err != nil {
		t.Fatalf("parse %q: %v", code, err)
	}
	coords, err := spec.Generate(40, true)
	if err != nil {
		t.Fatalf("generate %q: %v", code, err)
	}
	return coords
}

type memCache struct {
	m map[string]domain.AeroResult
}

func newMemCache() *memCache {
	return &memCache{m: map[string]domain.AeroResult{}}
}

func (c *memCache) Get(ctx context.Context, key string) (domain.AeroResult, bool, error) {
	r, ok := c.m[key]
	return r, ok, nil
}

func (c *memCache) Put(ctx context.Context, key string, res domain.AeroResult) error {
	c.m[key] = res
	return nil
}

func TestPredict(t *testing.T) {
	var gotReq predictRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/predict" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(predictResponse{CL: 0.85, CD: 0.012, CM: -0.05, Confidence: 0.97})
	}))
	defer srv.Close()

	p, err := NewHTTPPredictor(srv.URL, "large", nil)
	if err != nil {
		t.Fatalf("new predictor: %v", err)
	}

	coords := testCoords(t, "2412")
	res, err := p.Predict(context.Background(), coords, domain.FlightCondition{Alpha: 5, Reynolds: 1e6})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}

	if res.CL != 0.85 || res.CD != 0.012 || res.CM != -0.05 {
		t.Errorf("got coefficients %v/%v/%v, want 0.85/0.012/-0.05", res.CL, res.CD, res.CM)
	}
	if !res.Converged {
		t.Error("expected converged result")
	}
	if res.Solver != "neuralfoil" {
		t.Errorf("got solver %q, want neuralfoil", res.Solver)
	}
	if math.Abs(res.LD-0.85/0.012) > 1e-9 {
		t.Errorf("got L/D %v, want %v", res.LD, 0.85/0.012)
	}

	if gotReq.Alpha != 5 || gotReq.Reynolds != 1e6 {
		t.Errorf("got condition %v/%v, want 5/1e6", gotReq.Alpha, gotReq.Reynolds)
	}
	if gotReq.ModelSize != "large" {
		t.Errorf("got model size %q, want large", gotReq.ModelSize)
	}
	if len(gotReq.Coordinates) != len(coords) {
		t.Errorf("got %d coordinate pairs, want %d", len(gotReq.Coordinates), len(coords))
	}
}

func TestPredictLowConfidence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(predictResponse{CL: 1.9, CD: 0.08, Confidence: 0.2})
	}))
	defer srv.Close()

	p, _ := NewHTTPPredictor(srv.URL, "", nil)
	res, err := p.Predict(context.Background(), testCoords(t, "0012"), domain.FlightCondition{Alpha: 25})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if res.Converged {
		t.Error("expected unconverged result for low confidence")
	}
}

func TestPredictZeroDrag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(predictResponse{CL: 0.5, CD: 0, Confidence: 1})
	}))
	defer srv.Close()

	p, _ := NewHTTPPredictor(srv.URL, "", nil)
	res, err := p.Predict(context.Background(), testCoords(t, "0012"), domain.FlightCondition{Alpha: 2})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if res.LD != 0 {
		t.Errorf("got L/D %v for zero drag, want 0", res.LD)
	}
}

func TestPredictRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(predictResponse{CL: 0.4, CD: 0.01, Confidence: 1})
	}))
	defer srv.Close()

	p, _ := NewHTTPPredictor(srv.URL, "", nil)
	res, err := p.Predict(context.Background(), testCoords(t, "0012"), domain.FlightCondition{Alpha: 3})
	if err != nil {
		t.Fatalf("predict after retries: %v", err)
	}
	if res.CL != 0.4 {
		t.Errorf("got CL %v, want 0.4", res.CL)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("got %d calls, want 3", got)
	}
}

func TestPredictClientErrorDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad geometry", http.StatusBadRequest)
	}))
	defer srv.Close()

	p, _ := NewHTTPPredictor(srv.URL, "", nil)
	_, err := p.Predict(context.Background(), testCoords(t, "0012"), domain.FlightCondition{Alpha: 3})
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("got %d calls, want 1", got)
	}
}

func TestPredictCacheSkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(predictResponse{CL: 0.6, CD: 0.015, Confidence: 1})
	}))
	defer srv.Close()

	p, _ := NewHTTPPredictor(srv.URL, "", newMemCache())
	coords := testCoords(t, "2412")
	cond := domain.FlightCondition{Alpha: 5, Reynolds: 1e6}

	first, err := p.Predict(context.Background(), coords, cond)
	if err != nil {
		t.Fatalf("first predict: %v", err)
	}
	second, err := p.Predict(context.Background(), coords, cond)
	if err != nil {
		t.Fatalf("second predict: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Errorf("got %d network calls, want 1", got)
	}
	if second.CL != first.CL || second.CD != first.CD {
		t.Errorf("cached result differs: %+v vs %+v", second, first)
	}
	if second.TimeMS != 0 {
		t.Errorf("got cached TimeMS %v, want 0", second.TimeMS)
	}

	// A different condition is a different key.
	if _, err := p.Predict(context.Background(), coords, domain.FlightCondition{Alpha: 6, Reynolds: 1e6}); err != nil {
		t.Fatalf("third predict: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("got %d network calls after new condition, want 2", got)
	}
}

func TestPredictBatchOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/predict_batch" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req batchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		out := batchResponse{}
		for _, c := range req.Conditions {
			out.Results = append(out.Results, predictResponse{CL: c.Alpha * 0.1, CD: 0.01, Confidence: 1})
		}
		json.NewEncoder(w).Encode(out)
	}))
	defer srv.Close()

	p, _ := NewHTTPPredictor(srv.URL, "", nil)
	conds := []domain.FlightCondition{
		{Alpha: 0, Reynolds: 1e6},
		{Alpha: 5, Reynolds: 1e6},
		{Alpha: 10, Reynolds: 1e6},
	}

	results, err := p.PredictBatch(context.Background(), testCoords(t, "0012"), conds)
	if err != nil {
		t.Fatalf("predict batch: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, want := range []float64{0, 0.5, 1.0} {
		if math.Abs(results[i].CL-want) > 1e-9 {
			t.Errorf("result %d: got CL %v, want %v", i, results[i].CL, want)
		}
	}
}

func TestPredictBatchCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(batchResponse{Results: []predictResponse{{CL: 0.1, CD: 0.01}}})
	}))
	defer srv.Close()

	p, _ := NewHTTPPredictor(srv.URL, "", nil)
	conds := []domain.FlightCondition{{Alpha: 0}, {Alpha: 5}}

	if _, err := p.PredictBatch(context.Background(), testCoords(t, "0012"), conds); err == nil {
		t.Fatal("expected error for mismatched result count")
	}
}

func TestPredictBatchUsesCachedConditions(t *testing.T) {
	var lastCount atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req batchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		lastCount.Store(int32(len(req.Conditions)))
		out := batchResponse{}
		for _, c := range req.Conditions {
			out.Results = append(out.Results, predictResponse{CL: c.Alpha * 0.1, CD: 0.01, Confidence: 1})
		}
		json.NewEncoder(w).Encode(out)
	}))
	defer srv.Close()

	p, _ := NewHTTPPredictor(srv.URL, "", newMemCache())
	coords := testCoords(t, "2412")
	a := domain.FlightCondition{Alpha: 2, Reynolds: 1e6}
	b := domain.FlightCondition{Alpha: 4, Reynolds: 1e6}
	c := domain.FlightCondition{Alpha: 6, Reynolds: 1e6}

	if _, err := p.PredictBatch(context.Background(), coords, []domain.FlightCondition{a, b}); err != nil {
		t.Fatalf("first batch: %v", err)
	}
	if got := lastCount.Load(); got != 2 {
		t.Errorf("first batch sent %d conditions, want 2", got)
	}

	results, err := p.PredictBatch(context.Background(), coords, []domain.FlightCondition{a, c})
	if err != nil {
		t.Fatalf("second batch: %v", err)
	}
	if got := lastCount.Load(); got != 1 {
		t.Errorf("second batch sent %d conditions, want 1", got)
	}
	if math.Abs(results[0].CL-0.2) > 1e-9 || math.Abs(results[1].CL-0.6) > 1e-9 {
		t.Errorf("got CLs %v/%v, want 0.2/0.6", results[0].CL, results[1].CL)
	}
}

func TestMockPredictor(t *testing.T) {
	m := NewMockPredictor()
	ctx := context.Background()

	symmetric := testCoords(t, "0012")
	atZero, err := m.Predict(ctx, symmetric, domain.FlightCondition{Alpha: 0, Reynolds: 1e6})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if math.Abs(atZero.CL) > 0.05 {
		t.Errorf("symmetric section at zero alpha: got CL %v, want ~0", atZero.CL)
	}
	if atZero.CD <= 0 {
		t.Errorf("got CD %v, want positive", atZero.CD)
	}
	if atZero.Solver != "mock" {
		t.Errorf("got solver %q, want mock", atZero.Solver)
	}

	low, _ := m.Predict(ctx, symmetric, domain.FlightCondition{Alpha: 2, Reynolds: 1e6})
	high, _ := m.Predict(ctx, symmetric, domain.FlightCondition{Alpha: 8, Reynolds: 1e6})
	if high.CL <= low.CL {
		t.Errorf("lift did not grow with alpha: %v at 8 vs %v at 2", high.CL, low.CL)
	}

	cambered, _ := m.Predict(ctx, testCoords(t, "4412"), domain.FlightCondition{Alpha: 0, Reynolds: 1e6})
	if cambered.CL < 0.1 {
		t.Errorf("cambered section at zero alpha: got CL %v, want positive", cambered.CL)
	}
}
