package server

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inferloop/tabclean/pkg/constants"
	"github.com/inferloop/tabclean/pkg/errors"
	"github.com/inferloop/tabclean/pkg/models"
)

// CleanRequest is the payload for POST /api/v1/clean.
type CleanRequest struct {
	Rows    []models.Row          `json:"rows"`
	Profile models.DatasetProfile `json:"profile"`
}

// handleClean runs the cleaning engine over the posted dataset. When a
// result cache is configured, identical requests are served from it.
func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, r, errors.NewValidationError(errors.CodeInvalidInput, "Failed to read request body"))
		return
	}

	var req CleanRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, r, errors.NewValidationError(errors.CodeInvalidFormat, "Request body must be JSON with rows and profile"))
		return
	}

	digest := requestDigest(body)
	if s.cache != nil {
		if cached, err := s.cache.Get(r.Context(), digest); err != nil {
			s.logger.WithError(err).Warn("Result cache read failed, cleaning from scratch")
		} else if cached != nil {
			cleanCacheHits.Inc()
			s.logger.WithFields(logrus.Fields{
				"request_id": getRequestID(r),
				"digest":     digest,
			}).Debug("Serving cached cleaning result")
			s.writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	result, err := s.engine.Clean(r.Context(), req.Rows, &req.Profile)
	if err != nil {
		s.writeError(w, r, errors.WrapError(err, errors.ErrorTypeInternal, errors.CodeInternalError, "Cleaning failed"))
		return
	}

	if s.cache != nil {
		if err := s.cache.Put(r.Context(), digest, result); err != nil {
			s.logger.WithError(err).Warn("Result cache write failed")
		}
	}

	cleaningsTotal.Inc()
	rowsCleanedTotal.Add(float64(len(result.Rows)))
	cleanDuration.Observe(time.Since(start).Seconds())

	s.logger.WithFields(logrus.Fields{
		"request_id": getRequestID(r),
		"rows":       len(result.Rows),
		"columns":    len(req.Profile.Columns),
		"duration":   time.Since(start).String(),
	}).Info("Dataset cleaned")

	s.writeJSON(w, http.StatusOK, result)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   constants.AppVersion,
	})
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"name":    constants.AppName,
		"version": constants.AppVersion,
	})
}

// handleNotFound handles unknown routes
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, errors.NewAppError(errors.ErrorTypeValidation, "NOT_FOUND", "Unknown endpoint").WithDetails(r.URL.Path))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, appErr *errors.AppError) {
	status := appErr.HTTPStatus
	if appErr.Code == "NOT_FOUND" {
		status = http.StatusNotFound
	}

	s.logger.WithFields(logrus.Fields{
		"request_id": getRequestID(r),
		"code":       appErr.Code,
		"path":       r.URL.Path,
	}).Warn(appErr.Message)

	s.writeJSON(w, status, &errors.ErrorResponse{
		Error:     appErr,
		RequestID: getRequestID(r),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      r.URL.Path,
	})
}

// requestDigest keys the result cache on the exact request payload.
func requestDigest(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
