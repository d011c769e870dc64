package server

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/AnyUserName/swatchcard/internal/apperr"
	"github.com/AnyUserName/swatchcard/internal/swatch"
)

// maxRenderReserve bounds the share of the write timeout kept back for
// assembling and sending the workbook.
const maxRenderReserve = 10 * time.Second

// exportBudget is how long image fetching may run for one export. Fetches
// still pending when it elapses become placeholder rows, so the document is
// written before the server's write deadline closes the connection. Zero
// means no limit.
func exportBudget(writeTimeout time.Duration) time.Duration {
	if writeTimeout <= 0 {
		return 0
	}
	reserve := writeTimeout / 2
	if reserve > maxRenderReserve {
		reserve = maxRenderReserve
	}
	return writeTimeout - reserve
}

// handleExport handles POST /api/export-excel.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(zap.String("request_id", RequestID(r.Context())))

	ctx := r.Context()
	if budget := exportBudget(s.cfg.WriteTimeout); budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}

	body := r.Body
	if s.cfg.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}

	req, err := swatch.Decode(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, apperr.InvalidInput("request body too large"))
			return
		}
		log.Warn("rejected export request", zap.Error(err))
		writeError(w, statusFor(err), err)
		return
	}
	log.Debug("export request", zap.Int("swatches", len(req.Swatches)), zap.String("reference", req.Reference()))

	res, err := s.gen.Generate(ctx, req)
	if err != nil {
		log.Error("export failed", zap.Error(err))
		writeError(w, statusFor(err), err)
		return
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		log.Warn("export budget exhausted, pending images written as placeholders",
			zap.Int("placed", res.Stats.Placed),
			zap.Int("total", res.Stats.Total),
		)
	}

	h := w.Header()
	h.Set("Content-Type", res.ContentType)
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.Filename}))
	h.Set("Content-Length", strconv.Itoa(len(res.Data)))
	h.Set(HeaderImagesPlaced, strconv.Itoa(res.Stats.Placed))
	h.Set(HeaderImagesTotal, strconv.Itoa(res.Stats.Total))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Data); err != nil {
		log.Warn("write response", zap.Error(err))
	}
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": ServiceName,
		"version": Version,
	})
}

type endpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// handleHome handles GET / with a descriptor of the service.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	prof := s.gen.Profile()
	writeJSON(w, http.StatusOK, map[string]any{
		"service": ServiceName,
		"version": Version,
		"profile": prof.Name,
		"workers": s.gen.Pipeline().Workers(),
		"endpoints": []endpoint{
			{http.MethodPost, "/api/export-excel", "Build a swatch card workbook from {swatches, cardInfo}"},
			{http.MethodGet, "/api/health", "Liveness check"},
			{http.MethodGet, "/metrics", "Prometheus metrics"},
		},
	})
}

func statusFor(err error) int {
	switch apperr.CodeOf(err) {
	case apperr.CodeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{
		"error": apperr.Message(err),
		"code":  string(apperr.CodeOf(err)),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
