package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "company-search/internal/common/errors"
	"company-search/internal/regions"
	"company-search/internal/search"
)

const (
	defaultPage = 1
	defaultSize = 20
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"regions": regions.Supported(),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req search.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.NewInvalidSearchRequestError("malformed JSON body"))
		return
	}

	if req.Page == 0 {
		req.Page = defaultPage
	}
	if req.Size == 0 {
		req.Size = defaultSize
	}

	// Page/size bounds are enforced here; the pipeline assumes them valid.
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.NewInvalidSearchRequestError(err.Error()))
		return
	}

	resp, err := s.searcher.Search(r.Context(), req)
	if err != nil {
		s.logger.WithError(err).Error("search failed", map[string]interface{}{
			"countryScope": req.CountryScope,
		})
		switch {
		case errors.Is(err, search.ErrBackendUnavailable), errors.Is(err, search.ErrSearchTimeout):
			writeError(w, http.StatusServiceUnavailable, apperrors.NewBackendUnavailableError(err.Error()))
		case errors.Is(err, search.ErrIndexNotFound):
			writeError(w, http.StatusNotFound, apperrors.NewSearchQueryFailedError(err.Error()))
		default:
			writeError(w, http.StatusInternalServerError, apperrors.NewSearchQueryFailedError(err.Error()))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

type createTagRequest struct {
	Name           string                 `json:"name"`
	FilterSnapshot map[string]interface{} `json:"filter_snapshot"`
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	list, err := s.tagStore.List(r.Context(), userID)
	if err != nil {
		s.logger.WithError(err).Error("list tags failed", map[string]interface{}{"userId": userID})
		writeError(w, http.StatusInternalServerError, &apperrors.StandardError{
			Code: apperrors.ErrCodeTagStoreFailed, Message: "Tag store unavailable", Retryable: true,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tags": list})
}

func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var body createTagRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		writeError(w, http.StatusBadRequest, apperrors.NewInvalidSearchRequestError("tag name is required"))
		return
	}

	tag, err := s.tagStore.Create(r.Context(), userID, body.Name, body.FilterSnapshot)
	if err != nil {
		s.logger.WithError(err).Error("create tag failed", map[string]interface{}{"userId": userID})
		writeError(w, http.StatusInternalServerError, &apperrors.StandardError{
			Code: apperrors.ErrCodeTagStoreFailed, Message: "Tag store unavailable", Retryable: true,
		})
		return
	}
	writeJSON(w, http.StatusCreated, tag)
}

func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	tagID := chi.URLParam(r, "tagID")

	deleted, err := s.tagStore.Delete(r.Context(), userID, tagID)
	if err != nil {
		s.logger.WithError(err).Error("delete tag failed", map[string]interface{}{"userId": userID})
		writeError(w, http.StatusInternalServerError, &apperrors.StandardError{
			Code: apperrors.ErrCodeTagStoreFailed, Message: "Tag store unavailable", Retryable: true,
		})
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, apperrors.NewTagNotFoundError(tagID))
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err *apperrors.StandardError) {
	writeJSON(w, status, map[string]interface{}{"error": err})
}
