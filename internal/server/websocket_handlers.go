package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MeKo-Tech/langtab/internal/detect"
)

const (
	websocketReadDeadline  = 60 * time.Second
	websocketPingInterval  = 30 * time.Second
	websocketWriteDeadline = 10 * time.Second
)

// WebSocket upgrader with reasonable defaults.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow connections from any origin in development
		// In production, you should check against allowed origins
		return true
	},
}

// WebSocketDetectRequest is one detection request sent over the socket.
// The optional ID is echoed back so clients can correlate responses.
type WebSocketDetectRequest struct {
	ID         string             `json:"id,omitempty"`
	Text       string             `json:"text"`
	Candidates []string           `json:"candidates,omitempty"`
	Priors     map[string]float64 `json:"priors,omitempty"`
	TopK       int                `json:"top_k,omitempty"`
}

// WebSocketConnWriter is an interface for writing WebSocket messages.
type WebSocketConnWriter interface {
	WriteMessage(messageType int, data []byte) error
}

// WebSocketDetectResponse represents a detection response via WebSocket.
type WebSocketDetectResponse struct {
	Type       string        `json:"type"`
	Status     string        `json:"status"` // "completed" or "error"
	Matches    []DetectMatch `json:"matches,omitempty"`
	Error      string        `json:"error,omitempty"`
	ErrorType  string        `json:"error_type,omitempty"`
	RequestID  string        `json:"request_id,omitempty"`
	DurationMs int64         `json:"duration_ms,omitempty"`
}

// detectWebSocketHandler handles WebSocket connections for streaming
// detection.
func (s *Server) detectWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	// Track active connections metric
	websocketConnections.Inc()
	defer websocketConnections.Dec()

	slog.Info("WebSocket connection established", "remote_addr", r.RemoteAddr)

	s.handleWebSocketConnection(conn)
}

// handleWebSocketConnection processes messages from a WebSocket connection.
func (s *Server) handleWebSocketConnection(conn *websocket.Conn) {
	// Set read deadline to prevent hanging connections
	_ = conn.SetReadDeadline(time.Now().Add(websocketReadDeadline))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(websocketReadDeadline))
		return nil
	})

	// Send ping messages to keep connection alive
	go func() {
		ticker := time.NewTicker(websocketPingInterval)
		defer ticker.Stop()
		for range ticker.C {
			deadline := time.Now().Add(websocketWriteDeadline)
			if err := conn.WriteControl(websocket.PingMessage, []byte{}, deadline); err != nil {
				return
			}
		}
	}()

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("WebSocket error", "error", err)
			}
			break
		}

		websocketMessagesTotal.WithLabelValues("received").Inc()

		if messageType == websocket.TextMessage {
			s.handleWebSocketMessage(conn, data)
		}
	}
}

// handleWebSocketMessage runs one detection request and writes the response.
func (s *Server) handleWebSocketMessage(conn *websocket.Conn, data []byte) {
	var req WebSocketDetectRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.sendWebSocketError(conn, "invalid_request", fmt.Sprintf("Failed to parse request: %v", err), "")
		return
	}

	requestID := req.ID
	if requestID == "" {
		requestID = strconv.FormatInt(time.Now().UnixNano(), 10)
	}

	if strings.TrimSpace(req.Text) == "" {
		detectRequestsTotal.WithLabelValues("websocket", "error").Inc()
		s.sendWebSocketError(conn, "invalid_request", "No text provided", requestID)
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
		detectRequestsTotal.WithLabelValues("websocket", "error").Inc()
		s.sendWebSocketError(conn, "detection_error", fmt.Sprintf("Detection failed: %v", err), requestID)
		return
	}

	detectRequestsTotal.WithLabelValues("websocket", "success").Inc()
	detectDuration.WithLabelValues("websocket").Observe(duration.Seconds())
	detectTextLength.WithLabelValues("websocket").Observe(float64(len(req.Text)))
	detectMatches.WithLabelValues("websocket").Observe(float64(len(results)))

	s.sendWebSocketResponse(conn, WebSocketDetectResponse{
		Type:       "detect_response",
		Status:     "completed",
		Matches:    toMatches(results),
		RequestID:  requestID,
		DurationMs: duration.Milliseconds(),
	})
}

// sendWebSocketResponse sends a response message over WebSocket.
func (s *Server) sendWebSocketResponse(conn WebSocketConnWriter, response WebSocketDetectResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		slog.Error("Failed to marshal WebSocket response", "error", err)
		return
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Error("Failed to send WebSocket message", "error", err)
		return
	}

	websocketMessagesTotal.WithLabelValues("sent").Inc()
}

// sendWebSocketError sends an error message over WebSocket.
func (s *Server) sendWebSocketError(conn WebSocketConnWriter, errorType, message, requestID string) {
	response := WebSocketDetectResponse{
		Type:      "error",
		Status:    "error",
		Error:     message,
		ErrorType: errorType,
		RequestID: requestID,
	}

	data, err := json.Marshal(response)
	if err != nil {
		slog.Error("Failed to marshal WebSocket error response", "error", err)
		return
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Error("Failed to send WebSocket error message", "error", err)
		return
	}

	websocketMessagesTotal.WithLabelValues("sent").Inc()
}
