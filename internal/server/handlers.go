package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/MeKo-Tech/langtab/internal/detect"
	"github.com/MeKo-Tech/langtab/internal/version"
)

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status:  "healthy",
		Version: version.Version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding health response: %v\n", err)
	}
}

// languagesHandler returns the languages of the loaded dataset.
func (s *Server) languagesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	entries, err := s.store.Index()
	if err != nil {
		s.writeErrorResponse(w, fmt.Sprintf("Failed to load language index: %v", err), http.StatusInternalServerError)
		return
	}

	languages := make([]LanguageInfo, len(entries))
	for i, entry := range entries {
		languages[i] = LanguageInfo{
			Code:         entry.Language,
			Name:         entry.Name,
			Script:       entry.Script,
			Direction:    entry.Direction,
			HasFrequency: entry.HasFrequency,
		}
	}

	response := LanguagesResponse{
		Languages: languages,
		Count:     len(languages),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding languages response: %v\n", err)
	}
}

// detectHandler identifies the language of the posted text.
func (s *Server) detectHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	var req DetectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		detectRequestsTotal.WithLabelValues("http", "error").Inc()
		s.writeErrorResponse(w, fmt.Sprintf("Failed to parse JSON request: %v", err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		detectRequestsTotal.WithLabelValues("http", "error").Inc()
		s.writeErrorResponse(w, "No text provided", http.StatusBadRequest)
		return
	}

	if s.detector == nil {
		s.writeErrorResponse(w, "Detector not initialized", http.StatusServiceUnavailable)
		return
	}

	opts := detect.Options{
		Candidates: req.Candidates,
		Priors:     req.Priors,
		TopK:       req.TopK,
	}

	start := time.Now()
	results, err := s.detector.Detect(req.Text, opts)
	duration := time.Since(start)

	if err != nil {
		detectRequestsTotal.WithLabelValues("http", "error").Inc()
		status := http.StatusInternalServerError
		if errors.Is(err, detect.ErrInvalidOptions) {
			status = http.StatusBadRequest
		}
		s.writeErrorResponse(w, fmt.Sprintf("Detection failed: %v", err), status)
		return
	}

	detectRequestsTotal.WithLabelValues("http", "success").Inc()
	detectDuration.WithLabelValues("http").Observe(duration.Seconds())
	detectTextLength.WithLabelValues("http").Observe(float64(len(req.Text)))
	detectMatches.WithLabelValues("http").Observe(float64(len(results)))

	response := DetectResponse{
		Success:    true,
		Matches:    toMatches(results),
		DurationMs: duration.Milliseconds(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding detect response: %v\n", err)
	}
}

func toMatches(results []detect.Result) []DetectMatch {
	matches := make([]DetectMatch, len(results))
	for i, res := range results {
		matches[i] = DetectMatch{Language: res.Language, Score: res.Score}
	}
	return matches
}

// writeErrorResponse writes a JSON error response.
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := DetectResponse{
		Success: false,
		Error:   message,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		// Log error, but can't send another response
		fmt.Fprintf(os.Stderr, "Error writing error response: %v\n", err)
	}
}
