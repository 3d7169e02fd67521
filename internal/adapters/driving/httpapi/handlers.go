package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/plainbrief/plainbrief/internal/core/domain"
	"github.com/plainbrief/plainbrief/internal/core/ports/driving"
	"github.com/plainbrief/plainbrief/internal/logger"
)

// maxUploadBytes caps upload size at 20 MiB.
const maxUploadBytes = 20 << 20

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpload handles POST /api/documents. Accepts either a JSON body
// with title and text, or a multipart form with a "file" field.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	req, err := s.readUpload(r)
	if err != nil {
		sendError(w, err)
		return
	}

	result, err := s.ingest.Ingest(r.Context(), driving.IngestRequest{
		Title: req.Title,
		Text:  req.Text,
	})
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, toUploadResponse(result))
}

// readUpload parses either upload form.
func (s *Server) readUpload(r *http.Request) (*uploadRequest, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if s.extractor == nil {
			return nil, errors.New("file uploads are not enabled")
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}

		result, err := s.extractor.ExtractFile(header.Filename, data)
		if err != nil {
			return nil, err
		}

		// An explicit title form value beats the extracted one.
		title := r.FormValue("title")
		if title == "" {
			title = result.Title
		}

		return &uploadRequest{Title: title, Text: result.Text}, nil
	}

	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &req, nil
}

// handleListDocuments handles GET /api/documents.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.documents.List(r.Context())
	if err != nil {
		sendError(w, err)
		return
	}

	out := make([]documentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toDocumentResponse(doc))
	}
	sendJSON(w, http.StatusOK, out)
}

// handleGetDocument handles GET /api/documents/{id}.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.documents.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, toDocumentResponse(*doc))
}

// handleGetContent handles GET /api/documents/{id}/content.
func (s *Server) handleGetContent(w http.ResponseWriter, r *http.Request) {
	content, err := s.documents.GetContent(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		sendError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, content); err != nil {
		logger.Warn("Write content response: %v", err)
	}
}

// handleDeleteDocument handles DELETE /api/documents/{id}.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.documents.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		sendError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAnalysis handles GET /api/documents/{id}/analysis.
func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.analysis == nil {
		sendError(w, domain.ErrLLMUnavailable)
		return
	}

	report, err := s.analysis.Analyse(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, toAnalysisResponse(report))
}

// handleChat handles POST /api/documents/{id}/chat.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, domain.ErrInvalidInput)
		return
	}

	answer, err := s.answer.Ask(r.Context(), mux.Vars(r)["id"], req.Question)
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, toChatResponse(answer))
}

// sendJSON writes a JSON response with the given status code.
func sendJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("Encode response: %v", err)
	}
}

// sendError maps domain errors to HTTP status codes.
func sendError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrEmbeddingUnavailable),
		errors.Is(err, domain.ErrLLMUnavailable):
		status = http.StatusServiceUnavailable
	}

	sendJSON(w, status, errorResponse{Error: err.Error()})
}
