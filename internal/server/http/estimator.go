package http

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ekisa-team/homeprice/internal/estimator"
	"github.com/ekisa-team/homeprice/internal/regression"
)

type (
	LocationsResponseDTO struct {
		Locations []string `json:"locations"`
	}

	PredictResponseDTO struct {
		EstimatedPrice float64 `json:"estimated_price"`
	}

	HealthResponseDTO struct {
		Status string `json:"status" enum:"ok"`
	}
)

type (
	LocationsOutput struct {
		Body LocationsResponseDTO
	}

	PredictInput struct {
		RawBody multipart.Form
	}

	PredictOutput struct {
		Body PredictResponseDTO
	}

	HealthOutput struct {
		Body HealthResponseDTO
	}
)

// Estimator is the part of estimator.Estimator the handlers use.
type Estimator interface {
	Loaded() bool
	LocationNames() ([]string, error)
	EstimatedPrice(ctx context.Context, location string, sqft, bhk, bath float64) (float64, error)
}

// EstimatorHandler handles HTTP requests for price estimates.
type EstimatorHandler struct {
	estimator Estimator
}

// NewEstimatorHandler creates a new EstimatorHandler and registers its
// operations on api.
func NewEstimatorHandler(api huma.API, est Estimator) *EstimatorHandler {
	h := &EstimatorHandler{estimator: est}

	huma.Register(api, huma.Operation{
		OperationID:   "get-location-names",
		Method:        http.MethodGet,
		Path:          "/get_location_names",
		Summary:       "List known locations",
		Tags:          []string{"estimator"},
		DefaultStatus: http.StatusOK,
	}, h.handleLocationNames)

	huma.Register(api, huma.Operation{
		OperationID:   "predict-home-price",
		Method:        http.MethodPost,
		Path:          "/predict_home_price",
		Summary:       "Estimate a home price from form fields",
		Tags:          []string{"estimator"},
		DefaultStatus: http.StatusOK,
	}, h.handlePredict)

	huma.Register(api, huma.Operation{
		OperationID:   "health",
		Method:        http.MethodGet,
		Path:          "/health",
		Summary:       "Report whether artifacts are loaded",
		Tags:          []string{"health"},
		DefaultStatus: http.StatusOK,
	}, h.handleHealth)

	return h
}

// handleLocationNames handles the get-location-names operation.
func (h *EstimatorHandler) handleLocationNames(_ context.Context, _ *struct{}) (*LocationsOutput, error) {
	names, err := h.estimator.LocationNames()
	if err != nil {
		return nil, toHTTPError(err)
	}

	return &LocationsOutput{Body: LocationsResponseDTO{Locations: names}}, nil
}

// handlePredict handles the predict-home-price operation. The form carries
// total_sqft, location, bhk and bath.
func (h *EstimatorHandler) handlePredict(ctx context.Context, input *PredictInput) (*PredictOutput, error) {
	req, errs := parsePredictForm(&input.RawBody)
	if len(errs) > 0 {
		return nil, huma.Error422UnprocessableEntity("invalid form", errs...)
	}

	price, err := h.estimator.EstimatedPrice(ctx, req.location, req.sqft, req.bhk, req.bath)
	if err != nil {
		return nil, toHTTPError(err)
	}

	return &PredictOutput{Body: PredictResponseDTO{EstimatedPrice: price}}, nil
}

// handleHealth handles the health operation.
func (h *EstimatorHandler) handleHealth(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	if !h.estimator.Loaded() {
		return nil, huma.Error503ServiceUnavailable("artifacts not loaded")
	}

	return &HealthOutput{Body: HealthResponseDTO{Status: "ok"}}, nil
}

type predictRequest struct {
	location        string
	sqft, bhk, bath float64
}

// parsePredictForm reads the predict fields, collecting one detail per bad
// field. The location is passed through as sent.
func parsePredictForm(form *multipart.Form) (predictRequest, []error) {
	var (
		req  predictRequest
		errs []error
	)

	location, err := formValue(form, "location")
	if err != nil {
		errs = append(errs, err)
	}
	req.location = location

	if raw, err := formValue(form, "total_sqft"); err != nil {
		errs = append(errs, err)
	} else if v, err := strconv.ParseFloat(raw, 64); err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		errs = append(errs, invalidField("total_sqft", "expected a finite number", raw))
	} else {
		req.sqft = v
	}

	for _, f := range []struct {
		name string
		dst  *float64
	}{{"bhk", &req.bhk}, {"bath", &req.bath}} {
		raw, err := formValue(form, f.name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, invalidField(f.name, "expected an integer", raw))
			continue
		}
		*f.dst = float64(v)
	}

	return req, errs
}

func formValue(form *multipart.Form, name string) (string, error) {
	v, ok := form.Value[name]
	if !ok || len(v) == 0 {
		return "", invalidField(name, "required field is missing", nil)
	}
	return v[0], nil
}

func invalidField(name, msg string, value any) error {
	return &huma.ErrorDetail{Location: "body." + name, Message: msg, Value: value}
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, estimator.ErrNotInitialized):
		return huma.Error503ServiceUnavailable("artifacts not loaded", err)
	case errors.Is(err, regression.ErrNonFinite):
		return huma.Error400BadRequest("features are not finite", err)
	default:
		slog.Error("Failed to estimate price", "error", err)
		return huma.Error500InternalServerError("failed to estimate price", err)
	}
}
