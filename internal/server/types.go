// Package server exposes language detection over HTTP: a JSON detect
// endpoint, a websocket stream, language metadata, health, and Prometheus
// metrics, with CORS and per-client rate limiting.
package server

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MeKo-Tech/langtab/internal/data"
	"github.com/MeKo-Tech/langtab/internal/detect"
)

const defaultMaxBodyKB = 512

// detectorInterface defines the methods the server needs from the detection
// engine.
type detectorInterface interface {
	Detect(text string, opts detect.Options) ([]detect.Result, error)
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	detector     detectorInterface
	store        *data.Store
	corsOrigin   string
	maxBodyBytes int64
	rateLimiter  *RateLimiter
}

// Config holds server configuration.
type Config struct {
	Host       string
	Port       int
	CORSOrigin string
	MaxBodyKB  int
	TimeoutSec int
	DataDir    string
	FreqDir    string
	Detect     detect.Config
	RateLimit  RateLimitConfig
}

// RateLimitConfig holds per-client token bucket settings.
type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

// Response types for API endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

// LanguageInfo describes one language of the dataset.
type LanguageInfo struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Script       string `json:"script"`
	Direction    string `json:"direction"`
	HasFrequency bool   `json:"has_frequency"`
}

type LanguagesResponse struct {
	Languages []LanguageInfo `json:"languages"`
	Count     int            `json:"count"`
}

// DetectRequest is the JSON body accepted by POST /detect.
type DetectRequest struct {
	Text       string             `json:"text"`
	Candidates []string           `json:"candidates,omitempty"`
	Priors     map[string]float64 `json:"priors,omitempty"`
	TopK       int                `json:"top_k,omitempty"`
}

// DetectMatch is one ranked detection result.
type DetectMatch struct {
	Language string  `json:"language"`
	Score    float64 `json:"score"`
}

type DetectResponse struct {
	Success    bool          `json:"success"`
	Matches    []DetectMatch `json:"matches,omitempty"`
	Error      string        `json:"error,omitempty"`
	DurationMs int64         `json:"duration_ms"`
}

// NewServer creates a new detection server instance.
func NewServer(config Config) (*Server, error) {
	store := data.NewStore(data.ResolveConfig(config.DataDir, config.FreqDir))

	engineCfg := config.Detect
	if engineCfg == (detect.Config{}) {
		engineCfg = detect.DefaultConfig()
	}

	detector, err := detect.New(store, engineCfg)
	if err != nil {
		return nil, fmt.Errorf("building detector: %w", err)
	}

	maxBodyKB := config.MaxBodyKB
	if maxBodyKB <= 0 {
		maxBodyKB = defaultMaxBodyKB
	}

	var limiter *RateLimiter
	if config.RateLimit.Enabled {
		limiter = NewRateLimiter(config.RateLimit.RPS, config.RateLimit.Burst)
	}

	return &Server{
		detector:     detector,
		store:        store,
		corsOrigin:   config.CORSOrigin,
		maxBodyBytes: int64(maxBodyKB) * 1024,
		rateLimiter:  limiter,
	}, nil
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/detect", s.corsMiddleware(s.rateLimitMiddleware(s.detectHandler)))
	mux.HandleFunc("/detect/ws", s.rateLimitMiddleware(s.detectWebSocketHandler))
	mux.HandleFunc("/languages", s.corsMiddleware(s.languagesHandler))
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.Handle("/metrics", promhttp.Handler())
}
