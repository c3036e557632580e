package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/ukaji3/sovstruct/pkg/sovstruct"
	"github.com/ukaji3/sovstruct/pkg/sovstruct/export"
	"github.com/ukaji3/sovstruct/pkg/sovstruct/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type schemaField struct {
	Key      models.SchemaKey `json:"key"`
	Label    string           `json:"label"`
	Critical bool             `json:"critical"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request) {
	fields := make([]schemaField, len(models.SchemaFields))
	for i, f := range models.SchemaFields {
		fields[i] = schemaField{Key: f.Key, Label: f.Label, Critical: models.IsCritical(f.Key)}
	}
	writeJSON(w, http.StatusOK, fields)
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	result, ok := s.processUpload(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleExport returns the standardized table as xlsx, or as CSV when
// ?format=csv is given.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	result, ok := s.processUpload(w, r)
	if !ok {
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", attachment(export.FileName(s.now(), "csv")))
		if err := export.WriteCSV(w, result.Records); err != nil {
			s.logger.Error("csv export failed", "error", err, "run_id", result.RunID)
		}
		return
	}

	f, err := export.NewWorkbook(result.Records)
	if err != nil {
		s.logger.Error("xlsx export failed", "error", err, "run_id", result.RunID)
		writeError(w, http.StatusInternalServerError, "failed to build workbook")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", attachment(export.FileName(s.now(), "xlsx")))
	if _, err := f.WriteTo(w); err != nil {
		s.logger.Error("xlsx export failed", "error", err, "run_id", result.RunID)
	}
}

// processUpload runs the pipeline over the multipart "file" field. On
// failure it writes the error response and returns false.
func (s *Server) processUpload(w http.ResponseWriter, r *http.Request) (*models.Result, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("missing upload field %q: %v", "file", err))
		return nil, false
	}
	defer file.Close()

	logger := s.logger.With("request_id", middleware.GetReqID(r.Context()), "file", header.Filename)
	result, err := sovstruct.ProcessReader(r.Context(), file, header.Filename, sovstruct.Options{
		Completer: s.completer,
		Logger:    logger,
		Now:       s.now,
	})
	if err != nil {
		status := statusFor(err)
		logger.Warn("processing failed", "error", err, "status", status)
		writeError(w, status, err.Error())
		return nil, false
	}
	return result, true
}

func statusFor(err error) int {
	var perr *sovstruct.ProcessingError
	switch {
	case errors.Is(err, sovstruct.ErrEmptyWorkbook), errors.Is(err, sovstruct.ErrNoDataRows):
		return http.StatusUnprocessableEntity
	case errors.Is(err, sovstruct.ErrUnsupportedFormat), errors.As(err, &perr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func attachment(name string) string {
	return fmt.Sprintf("attachment; filename=%q", name)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
