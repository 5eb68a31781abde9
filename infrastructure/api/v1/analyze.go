package v1

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dialcoach/dialcoach"
	"github.com/dialcoach/dialcoach/infrastructure/api/jsonapi"
	"github.com/dialcoach/dialcoach/infrastructure/api/middleware"
	"github.com/dialcoach/dialcoach/infrastructure/api/v1/dto"
)

// maxUploadBytes caps audio uploads at 100 MiB.
const maxUploadBytes = 100 << 20

// AnalyzeRouter handles audio upload and analysis endpoints.
type AnalyzeRouter struct {
	client *dialcoach.Client
	logger *slog.Logger
}

// NewAnalyzeRouter creates a new AnalyzeRouter.
func NewAnalyzeRouter(client *dialcoach.Client) *AnalyzeRouter {
	return &AnalyzeRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for the analyze endpoint.
func (r *AnalyzeRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", r.Analyze)
	return router
}

// Analyze handles POST /api/v1/analyze (and the legacy /analyze_sales_call
// alias). It accepts a multipart "file" field containing the recording,
// transcribes and analyzes it, stores the result, and returns the flat
// {id, transcription, analysis} payload.
func (r *AnalyzeRouter) Analyze(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	req.Body = http.MaxBytesReader(w, req.Body, maxUploadBytes)

	file, header, err := req.FormFile("file")
	if err != nil {
		middleware.WriteJSON(w, http.StatusBadRequest, jsonapi.NewErrorResponse(jsonapi.NewError(
			strconv.Itoa(http.StatusBadRequest),
			"Bad Request",
			"multipart field \"file\" is required",
		)))
		return
	}
	defer func() { _ = file.Close() }()

	c, err := r.client.Analyzer.AnalyzeAudio(ctx, file, header.Filename)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.AnalyzeResponse{
		ID:            c.ID(),
		Transcription: c.Transcription(),
		Analysis:      c.Analysis(),
	})
}
