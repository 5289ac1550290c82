package sse

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/kbukum/elevenlabs-stt/errors"
	"github.com/kbukum/elevenlabs-stt/logger"
	"github.com/kbukum/elevenlabs-stt/server"
)

// Handler subscribes the caller to transcription events. The optional
// request_id query parameter is a glob over request IDs; it defaults to "*".
func (h *Hub) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		pattern := c.DefaultQuery("request_id", "*")
		if _, err := filepath.Match(pattern, ""); err != nil {
			server.RespondWithError(c, apperrors.Validation("request_id: malformed pattern"))
			return
		}
		h.Serve(c.Writer, c.Request, uuid.NewString(), pattern)
	}
}

// Serve streams events matching pattern to w until the request ends or the
// hub stops.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, clientID, pattern string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}
	log := h.log.WithFields(logger.Fields("client_id", clientID))

	// Streams outlive the server's write timeout.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		log.Debug("could not clear write deadline", logger.Fields(logger.FieldError, err.Error()))
	}

	client := NewClient(clientID, pattern)
	if !h.Register(client) {
		http.Error(w, "event feed stopped", http.StatusServiceUnavailable)
		return
	}
	defer h.Unregister(client)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	hello, _ := json.Marshal(map[string]string{"client_id": clientID, "pattern": pattern})
	_, _ = Event{Type: EventTypeConnected, Data: hello}.WriteTo(w)
	flusher.Flush()
	log.Debug("subscriber connected", logger.Fields("remote_addr", r.RemoteAddr))

	keepAlive := time.NewTicker(h.keepAlive)
	defer keepAlive.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			log.Debug("subscriber disconnected")
			return
		case ev, ok := <-client.Events():
			if !ok {
				return
			}
			if _, err := ev.WriteTo(w); err != nil {
				return
			}
			flusher.Flush()
		case <-keepAlive.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
