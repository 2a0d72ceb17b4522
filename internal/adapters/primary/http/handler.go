package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/sioXD/GitLab-TimeTool/internal/core/domain"
)

const dateOnlyFormat = "2006-01-02"

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)

		return
	}

	data := struct {
		RepositoryName string
	}{
		RepositoryName: s.repositoryName,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, data); err != nil {
		log.Printf("Failed to render index: %v", err)
	}
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	window, err := parseWindow(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})

		return
	}

	dashboard, err := s.app.Dashboard(r.Context(), window)
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		*domain.Dashboard
	}{Success: true, Dashboard: dashboard})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	window, err := parseWindow(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})

		return
	}

	result, err := s.app.Categories(r.Context(), window)
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		domain.AggregationResult
	}{Success: true, AggregationResult: result})
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	tree, err := s.app.BuildTree(r.Context())
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool             `json:"success"`
		Tree    *domain.WorkItem `json:"tree"`
	}{Success: true, Tree: tree})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// parseWindow builds the date window from query parameters. `days=N` keeps
// the original dashboard behavior (everything since now minus N days);
// `from`/`to` give an inclusive date range. No parameters means all-time.
func parseWindow(r *http.Request) (*domain.DateWindow, error) {
	query := r.URL.Query()

	if daysStr := query.Get("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil || days <= 0 {
			return nil, fmt.Errorf("invalid days parameter %q", daysStr)
		}

		return &domain.DateWindow{
			Start: time.Now().UTC().AddDate(0, 0, -days),
		}, nil
	}

	fromStr, toStr := query.Get("from"), query.Get("to")
	if fromStr == "" && toStr == "" {
		return nil, nil
	}

	var window domain.DateWindow
	if fromStr != "" {
		from, err := time.ParseInLocation(dateOnlyFormat, fromStr, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid from parameter %q", fromStr)
		}
		window.Start = from
	}
	if toStr != "" {
		to, err := time.ParseInLocation(dateOnlyFormat, toStr, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid to parameter %q", toStr)
		}
		// End is inclusive for the whole day.
		window.End = to.AddDate(0, 0, 1).Add(-time.Second)
	}
	if !window.Start.IsZero() && !window.End.IsZero() && window.Start.After(window.End) {
		return nil, errors.New("from must not be after to")
	}

	return &window, nil
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	log.Printf("Request failed: %v", err)
	writeJSON(w, statusFromError(err), errorResponse{Error: err.Error()})
}

// statusFromError maps the domain error taxonomy onto HTTP statuses. Auth
// and network failures are upstream problems, not client errors.
func statusFromError(err error) int {
	var notFoundErr *domain.NotFoundError
	if errors.As(err, &notFoundErr) {
		return http.StatusNotFound
	}

	var rateErr *domain.RateLimitError
	if errors.As(err, &rateErr) {
		return http.StatusServiceUnavailable
	}

	var authErr *domain.AuthError
	if errors.As(err, &authErr) {
		return http.StatusBadGateway
	}

	var netErr *domain.NetworkError
	if errors.As(err, &netErr) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
