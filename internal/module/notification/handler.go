// Package notification exposes the transient notification channel to the
// browser: the currently visible stack, manual dismissal, and an SSE
// stream carrying add and dismiss events.
package notification

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshmart/admin-console/internal/notify"
	"github.com/freshmart/admin-console/internal/pkg"
)

// NotificationHandler handles REST API and SSE requests for the
// notification channel.
type NotificationHandler struct {
	hub *notify.Hub
}

// NewHandler creates a NotificationHandler around the given hub.
func NewHandler(hub *notify.Hub) *NotificationHandler {
	return &NotificationHandler{hub: hub}
}

// Active handles GET /api/v1/notifications. It returns the stack as it
// stands, oldest first, for clients that reconnect mid-session.
func (h *NotificationHandler) Active(c *gin.Context) {
	pkg.Success(c, h.hub.Active())
}

// Dismiss handles DELETE /api/v1/notifications/:id. Dismissing an entry
// already gone is a no-op, not an error; the auto-dismiss timer may have
// beaten the click.
func (h *NotificationHandler) Dismiss(c *gin.Context) {
	h.hub.Dismiss(c.Param("id"))
	pkg.Success(c, nil)
}

// Stream handles GET /api/v1/notifications/stream. Events are delivered
// as SSE messages named after the event kind, with the notification as
// JSON payload. The stream ends when the client disconnects or the hub
// closes.
func (h *NotificationHandler) Stream(c *gin.Context) {
	events, cancel := h.hub.Subscribe()
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			payload, err := json.Marshal(ev.Notification)
			if err != nil {
				return false
			}
			c.SSEvent(ev.Kind, string(payload))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
