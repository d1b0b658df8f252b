package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	appanalysis "github.com/coralpitch/pitchdeck/internal/application/analysis"
	domai "github.com/coralpitch/pitchdeck/internal/domain/ai"
	dommedia "github.com/coralpitch/pitchdeck/internal/domain/media"
	"github.com/coralpitch/pitchdeck/internal/domain/pitch"
	"github.com/coralpitch/pitchdeck/internal/logger"
	"github.com/coralpitch/pitchdeck/internal/middleware"
)

const maxUploadBytes = 32 << 20

var errBadRequest = errors.New("bad request")

type Router struct {
	svc      *appanalysis.Service
	validate *validator.Validate
	log      *logger.Logger
	version  string
}

func NewRouter(svc *appanalysis.Service, log *logger.Logger, version string, checkers map[string]middleware.HealthChecker) http.Handler {
	rt := &Router{
		svc:      svc,
		validate: validator.New(),
		log:      log,
		version:  version,
	}
	mux := chi.NewRouter()

	mux.Get("/health", middleware.HealthHandler(version, checkers))
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1", func(r chi.Router) {
		r.Post("/analyze/text", rt.wrap(rt.handleAnalyzeText))
		r.Post("/analyze/file", rt.wrap(rt.handleAnalyzeFile))
		r.Get("/analyze/transcribe", rt.wrap(rt.handleTranscribe))
		r.Get("/analyses", rt.wrap(rt.handleHistory))
		r.Get("/analyses/{id}", rt.wrap(rt.handleGetAnalysis))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap adapts error-returning handlers. Every failure leaves the server as a
// JSON {"success":false,"error":...} body, never a bare panic or plain-text 500.
func (rt *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		status := http.StatusInternalServerError
		var verr validator.ValidationErrors
		switch {
		case errors.Is(err, errBadRequest),
			errors.Is(err, dommedia.ErrUnsupportedFormat),
			errors.Is(err, dommedia.ErrFetch),
			errors.As(err, &verr):
			status = http.StatusBadRequest
		case errors.Is(err, sql.ErrNoRows):
			status = http.StatusNotFound
		case errors.Is(err, domai.ErrAnalysisParse):
			status = http.StatusBadGateway
		case errors.Is(err, domai.ErrServiceUnavailable):
			status = http.StatusServiceUnavailable
		}

		rt.log.WithRequest(req).WithError(err).Error("request failed")
		writeJSON(w, status, map[string]any{"success": false, "error": err.Error()})
	}
}

type analyzeRequest struct {
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description" validate:"required"`
	Industry      string `json:"industry"`
	TargetMarket  string `json:"targetMarket"`
	BusinessModel string `json:"businessModel"`
	FundingAmount string `json:"fundingAmount"`
	PitchType     string `json:"pitchType" validate:"omitempty,oneof=text audio video"`
	Pitch         string `json:"pitch" validate:"required"`
	LanguageCode  string `json:"languageCode"`
}

type analyzeResponse struct {
	Success       bool                  `json:"success"`
	Analysis      *pitch.AnalysisResult `json:"analysis"`
	Transcription string                `json:"transcription,omitempty"`
}

// POST /v1/analyze/text
func (rt *Router) handleAnalyzeText(w http.ResponseWriter, req *http.Request) error {
	var body analyzeRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if err := rt.validate.Struct(body); err != nil {
		return err
	}

	// Clients may declare audio/video for a pitch transcribed elsewhere; the
	// declared type drives the prompt schema, with no media attached here.
	pitchType := pitch.TypeText
	if body.PitchType != "" {
		pitchType = pitch.PitchType(body.PitchType)
	}

	in := pitch.PitchInput{
		Title:         body.Title,
		Description:   body.Description,
		Industry:      body.Industry,
		TargetMarket:  body.TargetMarket,
		BusinessModel: body.BusinessModel,
		FundingAmount: body.FundingAmount,
		PitchType:     pitchType,
		Content:       body.Pitch,
		LanguageCode:  languageOrDefault(body.LanguageCode),
	}

	middleware.IncrementAnalyses()
	res, err := rt.svc.Analyze(req.Context(), in)
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}

	return writeJSON(w, http.StatusOK, analyzeResponse{Success: true, Analysis: res.Analysis})
}

// POST /v1/analyze/file handles a multipart upload of an audio or video pitch
func (rt *Router) handleAnalyzeFile(w http.ResponseWriter, req *http.Request) error {
	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}

	file, header, err := req.FormFile("file")
	if err != nil {
		return fmt.Errorf("%w: file field is required", errBadRequest)
	}
	defer file.Close()

	// Reject unsupported formats before writing anything to disk
	kind, err := dommedia.Classify(header.Filename)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp("", "pitch-upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	pitchType := pitch.TypeAudio
	if kind == dommedia.KindVideo {
		pitchType = pitch.TypeVideo
	}

	in := pitch.PitchInput{
		Title:         req.FormValue("title"),
		Description:   req.FormValue("description"),
		Industry:      req.FormValue("industry"),
		TargetMarket:  req.FormValue("targetMarket"),
		BusinessModel: req.FormValue("businessModel"),
		FundingAmount: req.FormValue("fundingAmount"),
		PitchType:     pitchType,
		MediaRef:      tmp.Name(),
		LanguageCode:  languageOrDefault(req.FormValue("languageCode")),
	}
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", errBadRequest)
	}

	middleware.IncrementAnalyses()
	res, err := rt.svc.Analyze(req.Context(), in)
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}

	resp := analyzeResponse{Success: true, Analysis: res.Analysis}
	if res.Transcription != nil {
		resp.Transcription = res.Transcription.Transcription
		if !res.Transcription.Success {
			middleware.IncrementTranscriptionsDegraded()
		}
	}
	return writeJSON(w, http.StatusOK, resp)
}

// GET /v1/analyze/transcribe?url=&language_code=
func (rt *Router) handleTranscribe(w http.ResponseWriter, req *http.Request) error {
	url := req.URL.Query().Get("url")
	if url == "" {
		return fmt.Errorf("%w: url parameter is required", errBadRequest)
	}

	tr, err := rt.svc.TranscribeOnly(req.Context(), url, languageOrDefault(req.URL.Query().Get("language_code")))
	if err != nil {
		return err
	}

	out := map[string]any{
		"success":       tr.Success,
		"transcription": tr.Transcription,
		"file_path":     tr.FilePath,
		"is_video":      tr.IsVideo,
	}
	if tr.Err != nil {
		out["error"] = tr.Err.Error()
	}
	return writeJSON(w, http.StatusOK, out)
}

// GET /v1/analyses?page=&page_size=
func (rt *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))

	list, err := rt.svc.History(req.Context(), page, size)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// GET /v1/analyses/{id}
func (rt *Router) handleGetAnalysis(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")

	rec, err := rt.svc.Get(req.Context(), id)
	if err != nil {
		return err
	}
	if rec == nil {
		return sql.ErrNoRows
	}
	return writeJSON(w, http.StatusOK, rec)
}

func languageOrDefault(code string) string {
	if code == "" {
		return "eng"
	}
	return code
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
