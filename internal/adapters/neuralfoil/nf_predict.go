package neuralfoil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"airfoil-lab-service/internal/airfoil"
	"airfoil-lab-service/internal/domain"
	"airfoil-lab-service/internal/platform/obs"
)

type predictRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
	Alpha       float64     `json:"alpha"`
	Reynolds    float64     `json:"reynolds"`
	Mach        float64     `json:"mach"`
	ModelSize   string      `json:"model_size"`
}

type predictResponse struct {
	CL         float64 `json:"cl"`
	CD         float64 `json:"cd"`
	CM         float64 `json:"cm"`
	Confidence float64 `json:"analysis_confidence"`
}

type batchCondition struct {
	Alpha    float64 `json:"alpha"`
	Reynolds float64 `json:"reynolds"`
	Mach     float64 `json:"mach"`
}

type batchRequest struct {
	Coordinates [][]float64      `json:"coordinates"`
	Conditions  []batchCondition `json:"conditions"`
	ModelSize   string           `json:"model_size"`
}

type batchResponse struct {
	Results []predictResponse `json:"results"`
}

// fetchPrediction runs one inference call against the predict endpoint.
func (p *HTTPPredictor) fetchPrediction(
	ctx context.Context,
	coords airfoil.Coordinates,
	cond domain.FlightCondition,
) (domain.AeroResult, error) {
	endpoint := p.baseURL + "/v1/predict"

	payload, err := json.Marshal(predictRequest{
		Coordinates: coords.Pairs(),
		Alpha:       cond.Alpha,
		Reynolds:    cond.Reynolds,
		Mach:        cond.Mach,
		ModelSize:   p.modelSize,
	})
	if err != nil {
		return domain.AeroResult{}, fmt.Errorf("marshal predict request: %w", err)
	}

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		return p.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return domain.AeroResult{}, fmt.Errorf("predict request failed: %w", err)
	}
	defer resp.Body.Close()

	var pr predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return domain.AeroResult{}, fmt.Errorf("decode predict response: %w", err)
	}

	return resultFromWire(pr), nil
}

// Return predictions for one airfoil across many flight conditions using
// the batch endpoint. Cached conditions are served locally; the rest go
// out in a single call. Results are ordered the same as conds.
func (p *HTTPPredictor) PredictBatch(
	ctx context.Context,
	coords airfoil.Coordinates,
	conds []domain.FlightCondition,
) (_ []domain.AeroResult, err error) {
	defer obs.Time(ctx, "neuralfoil.PredictBatch")(&err)

	if len(conds) == 0 {
		return []domain.AeroResult{}, nil
	}

	results := make([]domain.AeroResult, len(conds))
	missing := make([]int, 0, len(conds))

	if p.cache != nil {
		for i, cond := range conds {
			res, ok, cerr := p.cache.Get(ctx, p.cacheKey(coords, cond))
			if cerr != nil {
				log.Printf("prediction cache read failed: %v", cerr)
			} else if ok {
				res.TimeMS = 0
				results[i] = res
				continue
			}
			missing = append(missing, i)
		}
	} else {
		for i := range conds {
			missing = append(missing, i)
		}
	}

	if len(missing) == 0 {
		return results, nil
	}

	fetch := make([]batchCondition, 0, len(missing))
	for _, i := range missing {
		fetch = append(fetch, batchCondition{
			Alpha:    conds[i].Alpha,
			Reynolds: conds[i].Reynolds,
			Mach:     conds[i].Mach,
		})
	}

	endpoint := p.baseURL + "/v1/predict_batch"

	payload, err := json.Marshal(batchRequest{
		Coordinates: coords.Pairs(),
		Conditions:  fetch,
		ModelSize:   p.modelSize,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal batch request: %w", err)
	}

	start := time.Now()

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		return p.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("batch request failed: %w", err)
	}
	defer resp.Body.Close()

	var br batchResponse
	if err := json.NewDecoder(resp.Body).Decode(&br); err != nil {
		return nil, fmt.Errorf("decode batch response: %w", err)
	}

	if len(br.Results) != len(missing) {
		return nil, fmt.Errorf(
			"result count does not match conditions: results=%d conditions=%d",
			len(br.Results), len(missing),
		)
	}

	perCall := float64(time.Since(start).Microseconds()) / 1000.0 / float64(len(missing))

	for j, i := range missing {
		res := resultFromWire(br.Results[j])
		res.TimeMS = perCall
		results[i] = res

		if p.cache != nil {
			if cerr := p.cache.Put(ctx, p.cacheKey(coords, conds[i]), res); cerr != nil {
				log.Printf("prediction cache write failed: %v", cerr)
			}
		}
	}

	return results, nil
}
