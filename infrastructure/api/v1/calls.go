// Package v1 implements the version 1 HTTP API routes.
package v1

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dialcoach/dialcoach"
	"github.com/dialcoach/dialcoach/application/service"
	"github.com/dialcoach/dialcoach/domain/call"
	"github.com/dialcoach/dialcoach/infrastructure/api/jsonapi"
	"github.com/dialcoach/dialcoach/infrastructure/api/middleware"
	"github.com/dialcoach/dialcoach/infrastructure/api/v1/dto"
)

// CallsRouter handles the sales call CRUD endpoints.
type CallsRouter struct {
	client *dialcoach.Client
	logger *slog.Logger
}

// NewCallsRouter creates a new CallsRouter.
func NewCallsRouter(client *dialcoach.Client) *CallsRouter {
	return &CallsRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for sales call endpoints.
func (r *CallsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Post("/", r.Create)
	router.Get("/{id}", r.Get)
	router.Patch("/{id}", r.Update)
	router.Delete("/{id}", r.Delete)
	router.Post("/{id}/reanalyze", r.Reanalyze)

	return router
}

// List handles GET /api/v1/calls.
// Supports query parameters: page, page_size. Results are newest first.
func (r *CallsRouter) List(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	pagination := ParsePagination(req)
	params := &service.CallListParams{
		Limit:  pagination.Limit(),
		Offset: pagination.Offset(),
	}

	calls, err := r.client.Calls.List(ctx, params)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	total, err := r.client.Calls.Count(ctx)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	response := dto.CallListResponse{
		Data:  callsToDTO(calls),
		Meta:  PaginationMeta(pagination, total),
		Links: PaginationLinks(req, pagination, total),
	}

	middleware.WriteJSON(w, http.StatusOK, response)
}

// Create handles POST /api/v1/calls.
func (r *CallsRouter) Create(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body dto.CallCreateRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	if err := body.Validate(); err != nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: %v", call.ErrValidation, err), r.logger)
		return
	}

	c, err := r.client.Calls.Create(ctx, body.Data.Attributes.Transcription, body.Data.Attributes.Analysis)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, dto.CallResponse{Data: callToDTO(c)})
}

// Get handles GET /api/v1/calls/{id}.
func (r *CallsRouter) Get(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	id, err := parseID(req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	c, err := r.client.Calls.Get(ctx, id)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.CallResponse{Data: callToDTO(c)})
}

// Update handles PATCH /api/v1/calls/{id}.
func (r *CallsRouter) Update(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	id, err := parseID(req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	var body dto.CallUpdateRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	c, err := r.client.Calls.Update(ctx, id, service.CallUpdateParams{
		Transcription: body.Data.Attributes.Transcription,
		Analysis:      body.Data.Attributes.Analysis,
	})
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.CallResponse{Data: callToDTO(c)})
}

// Delete handles DELETE /api/v1/calls/{id}.
func (r *CallsRouter) Delete(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	id, err := parseID(req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	if err := r.client.Calls.Delete(ctx, id); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reanalyze handles POST /api/v1/calls/{id}/reanalyze. It reruns the coaching
// analysis over the stored transcript and saves the new analysis.
func (r *CallsRouter) Reanalyze(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	id, err := parseID(req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	c, err := r.client.Analyzer.Reanalyze(ctx, id)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.CallResponse{Data: callToDTO(c)})
}

func parseID(req *http.Request) (int64, error) {
	raw := chi.URLParam(req, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id must be an integer, got %q", call.ErrValidation, raw)
	}
	return id, nil
}

func callsToDTO(calls []call.SalesCall) []dto.CallData {
	result := make([]dto.CallData, len(calls))
	for i, c := range calls {
		result[i] = callToDTO(c)
	}
	return result
}

func callToDTO(c call.SalesCall) dto.CallData {
	return dto.CallData{
		Type: "sales_call",
		ID:   strconv.FormatInt(c.ID(), 10),
		Attributes: dto.CallAttributes{
			Transcription: c.Transcription(),
			Analysis:      c.Analysis(),
			CreatedAt:     jsonapi.NewDateTime(c.CreatedAt()),
			UpdatedAt:     jsonapi.NewDateTime(c.UpdatedAt()),
		},
	}
}
