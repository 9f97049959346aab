package server

import (
	"call-analysis/analyzer"
	customerrors "call-analysis/errors"
	"call-analysis/metrics"
	"call-analysis/models"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// UploadField is the multipart form field carrying the CSV file.
const UploadField = "file"

// errNoFile is returned when the multipart body has no file part.
var errNoFile = errors.New("no file part in upload")

// UploadResponse is returned by a successful upload-and-analyze.
type UploadResponse struct {
	FileID  string           `json:"file_id"`
	Message string           `json:"message"`
	Result  *models.Analysis `json:"result"`
}

// ResultResponse is returned by the results lookup.
type ResultResponse struct {
	FileID string           `json:"file_id"`
	Result *models.Analysis `json:"result"`
}

// DetailResponse carries an error or informational message.
type DetailResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the Call Analysis API"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "healthy",
		"version":        s.cfg.App.Version,
		"uptime":         time.Since(s.started).Round(time.Second).String(),
		"stored_results": s.results.Len(),
	})
}

// handleUploadAndAnalyze streams the uploaded CSV straight into the analyzer
// and caches the result under the file name without its extension.
func (s *Server) handleUploadAndAnalyze(w http.ResponseWriter, r *http.Request) {
	log := s.logger.WithField("request_id", GetRequestID(r.Context()))
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)

	mr, err := r.MultipartReader()
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("bad_request").Inc()
		writeDetail(w, http.StatusBadRequest, "Expected a multipart/form-data upload")
		return
	}

	part, err := nextFilePart(mr)
	if err != nil {
		s.uploadFailed(w, log, "", err)
		return
	}
	defer part.Close()

	filename := path.Base(part.FileName())
	if !strings.HasSuffix(filename, ".csv") {
		metrics.UploadsTotal.WithLabelValues("bad_request").Inc()
		writeDetail(w, http.StatusBadRequest, "Only CSV files are supported")
		return
	}
	fileID := strings.TrimSuffix(filename, path.Ext(filename))

	result, err := analyzer.AnalyzeReader(part)
	if err != nil {
		s.uploadFailed(w, log, fileID, err)
		return
	}

	s.results.Put(fileID, result)
	metrics.UploadsTotal.WithLabelValues("ok").Inc()
	log.WithField("file_id", fileID).Info("analysis completed")

	writeJSON(w, http.StatusOK, UploadResponse{
		FileID:  fileID,
		Message: "Analysis completed successfully",
		Result:  result,
	})
}

func (s *Server) uploadFailed(w http.ResponseWriter, log *logrus.Entry, fileID string, err error) {
	fields := logrus.Fields{"file_id": fileID}
	var parseErr *customerrors.ParseError
	if errors.As(err, &parseErr) {
		fields["line"] = parseErr.Line
	}
	log.WithFields(fields).WithError(err).Warn("analysis failed")

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		metrics.UploadsTotal.WithLabelValues("too_large").Inc()
		writeDetail(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Upload exceeds %d bytes", tooLarge.Limit))
	case errors.Is(err, errNoFile):
		metrics.UploadsTotal.WithLabelValues("bad_request").Inc()
		writeDetail(w, http.StatusBadRequest, "Missing file field")
	case errors.Is(err, customerrors.ErrDataFormat):
		metrics.UploadsTotal.WithLabelValues("invalid_data").Inc()
		writeDetail(w, http.StatusBadRequest, "Analysis failed: "+err.Error())
	default:
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		writeDetail(w, http.StatusInternalServerError, "Analysis failed: "+err.Error())
	}
}

// nextFilePart skips ordinary form fields until the upload field is found.
func nextFilePart(mr *multipart.Reader) (*multipart.Part, error) {
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return nil, errNoFile
		}
		if err != nil {
			return nil, err
		}
		if part.FormName() == UploadField && part.FileName() != "" {
			return part, nil
		}
		part.Close()
	}
}

func (s *Server) handleGetResults(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")
	result, ok := s.results.Get(fileID)
	if !ok {
		writeDetail(w, http.StatusNotFound, "Results not found")
		return
	}
	writeJSON(w, http.StatusOK, ResultResponse{FileID: fileID, Result: result})
}

func (s *Server) handleSampleData(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SampleAnalysis())
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, DetailResponse{Detail: detail})
}
