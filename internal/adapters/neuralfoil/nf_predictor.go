package neuralfoil

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"io"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"airfoil-lab-service/internal/airfoil"
	"airfoil-lab-service/internal/domain"
	"airfoil-lab-service/internal/platform/obs"
	"airfoil-lab-service/internal/ports"
)

// Predictions with analysis confidence below this are reported as
// unconverged.
const convergenceThreshold = 0.5

// HTTPPredictor implements AeroPredictor against a NeuralFoil inference
// service.
//
// It coordinates:
//   - Geometry-keyed result caching
//   - External API calls with retry/backoff
//
// The predictor is safe for concurrent use.
type HTTPPredictor struct {
	session   *http.Client
	baseURL   string
	modelSize string
	cache     ports.PredictionCache
}

func NewHTTPPredictor(baseURL, modelSize string, predCache ports.PredictionCache) (*HTTPPredictor, error) {
	if baseURL == "" {
		return nil, errors.New("neuralfoil base URL is empty")
	}
	if modelSize == "" {
		modelSize = "xlarge"
	}

	return &HTTPPredictor{
		session:   &http.Client{Timeout: 30 * time.Second},
		baseURL:   strings.TrimRight(baseURL, "/"),
		modelSize: modelSize,
		cache:     predCache,
	}, nil
}

// Return predicted coefficients for one airfoil at one flight condition.
func (p *HTTPPredictor) Predict(
	ctx context.Context,
	coords airfoil.Coordinates,
	cond domain.FlightCondition,
) (_ domain.AeroResult, err error) {
	defer obs.Time(ctx, "neuralfoil.Predict")(&err)

	key := p.cacheKey(coords, cond)

	// Check the prediction cache before issuing external API calls.
	if p.cache != nil {
		res, ok, cerr := p.cache.Get(ctx, key)
		if cerr != nil {
			log.Printf("prediction cache read failed: %v", cerr)
		} else if ok {
			res.TimeMS = 0
			return res, nil
		}
	}

	start := time.Now()
	res, err := p.fetchPrediction(ctx, coords, cond)
	if err != nil {
		return domain.AeroResult{}, err
	}
	res.TimeMS = float64(time.Since(start).Microseconds()) / 1000.0

	if p.cache != nil {
		if cerr := p.cache.Put(ctx, key, res); cerr != nil {
			log.Printf("prediction cache write failed: %v", cerr)
		}
	}

	return res, nil
}

// cacheKey builds a stable digest of the geometry, the condition and the
// model size. Coordinates are quantized to 1e-6 so float noise from
// equivalent generations maps to the same key.
func (p *HTTPPredictor) cacheKey(coords airfoil.Coordinates, cond domain.FlightCondition) string {
	h := sha256.New()
	buf := make([]byte, 8)
	put := func(v float64) {
		binary.LittleEndian.PutUint64(buf, uint64(int64(math.Round(v*1e6))))
		h.Write(buf)
	}

	for _, pt := range coords {
		put(pt.X)
		put(pt.Y)
	}
	put(cond.Alpha)
	put(cond.Reynolds)
	put(cond.Mach)
	io.WriteString(h, p.modelSize)

	return hex.EncodeToString(h.Sum(nil))
}

func resultFromWire(pr predictResponse) domain.AeroResult {
	res := domain.AeroResult{
		CL:        pr.CL,
		CD:        pr.CD,
		CM:        pr.CM,
		Converged: pr.Confidence >= convergenceThreshold,
		Solver:    "neuralfoil",
	}
	// Zero drag would make the ratio meaningless; report 0 instead.
	if pr.CD != 0 {
		res.LD = pr.CL / pr.CD
	}
	return res
}
