// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/aqio/aqdash/internal/domain/types"
)

// PredictDependencies defines the interface for prediction requests.
type PredictDependencies interface {
	Predict(ctx context.Context, v types.FeatureVector) (Prediction, error)
}

// PredictHandler handles prediction-form submissions.
type PredictHandler struct {
	deps     PredictDependencies
	validate *validator.Validate
}

// NewPredictHandler creates a new predict handler.
func NewPredictHandler(deps PredictDependencies) *PredictHandler {
	return &PredictHandler{
		deps:     deps,
		validate: validator.New(),
	}
}

// predictRequest mirrors the prediction form. Validation bounds equal the
// slider ranges, so a well-formed request always yields a well-formed
// feature vector.
type predictRequest struct {
	PM10  float64 `json:"pm10" validate:"gte=0,lte=1000"`
	SO2   float64 `json:"so2" validate:"gte=0,lte=500"`
	NO2   float64 `json:"no2" validate:"gte=0,lte=500"`
	CO    float64 `json:"co" validate:"gte=0,lte=5"`
	O3    float64 `json:"o3" validate:"gte=0,lte=500"`
	WSPM  float64 `json:"wspm" validate:"gte=0,lte=20"`
	RAIN  float64 `json:"rain" validate:"gte=0,lte=10"`
	TEMP  float64 `json:"temp" validate:"gte=-20,lte=40"`
	DEWP  float64 `json:"dewp" validate:"gte=-20,lte=40"`
	PRES  float64 `json:"pres" validate:"gte=900,lte=1100"`
	Month float64 `json:"month" validate:"gte=1,lte=12"`
	Hour  float64 `json:"hour" validate:"gte=0,lte=23"`
}

// vector builds the model input in the fixed feature order.
func (p predictRequest) vector() types.FeatureVector {
	return types.FeatureVector{
		p.PM10, p.SO2, p.NO2, p.CO, p.O3, p.WSPM,
		p.RAIN, p.TEMP, p.DEWP, p.PRES, p.Month, p.Hour,
	}
}

// inputEcho is one row of the input summary table returned with the result.
type inputEcho struct {
	Feature string  `json:"feature"`
	Value   float64 `json:"value"`
}

type predictResponse struct {
	Prediction
	Unit   string      `json:"unit"`
	Inputs []inputEcho `json:"inputs"`
}

// HandlePostPredict handles POST /api/predict requests.
func (h *PredictHandler) HandlePostPredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request",
			fmt.Errorf("%w: invalid JSON body", ErrBadRequest))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "out_of_range", err)
		return
	}

	vector := req.vector()
	result, err := h.deps.Predict(r.Context(), vector)
	if err != nil {
		// Inline failure; the form stays usable for retry.
		writeError(w, http.StatusInternalServerError, "prediction_failed", err)
		return
	}

	names := types.FeatureNames()
	inputs := make([]inputEcho, len(names))
	for i, name := range names {
		inputs[i] = inputEcho{Feature: name, Value: vector[i]}
	}
	writeJSON(w, http.StatusOK, predictResponse{
		Prediction: result,
		Unit:       "µg/m³",
		Inputs:     inputs,
	})
}
