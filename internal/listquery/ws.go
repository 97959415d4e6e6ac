package listquery

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The guard middleware has already authenticated the request; origins
	// are enforced by the CORS layer ahead of the upgrade.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientMessage is a partial query update sent by the browser over a live
// list connection. Absent fields leave the corresponding value untouched.
type clientMessage struct {
	Keyword *string `json:"keyword,omitempty"`
	Filter  *string `json:"filter,omitempty"`
	Page    *int    `json:"page,omitempty"`
	Limit   *int    `json:"limit,omitempty"`
	Refresh bool    `json:"refresh,omitempty"`
}

// ServeLive upgrades the request to a WebSocket and binds a fresh
// controller to the connection: query updates flow in as JSON messages,
// state snapshots flow out as JSON frames. The controller is closed when
// the peer disconnects.
func ServeLive[T any](c *gin.Context, fetch Fetch[T], opts ...Option) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		return
	}
	defer conn.Close()

	ctrl := New(fetch, opts...)
	defer ctrl.Close()

	states, cancel := ctrl.Subscribe()
	defer cancel()

	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var msg clientMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				continue
			}
			applyMessage(ctrl, msg)
		}
	}()

	ctrl.Refresh()

	for {
		select {
		case <-done:
			return
		case state, ok := <-states:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(state); err != nil {
				return
			}
		}
	}
}

func applyMessage[T any](ctrl *Controller[T], msg clientMessage) {
	if msg.Keyword != nil {
		ctrl.SetKeyword(*msg.Keyword)
	}
	if msg.Filter != nil {
		ctrl.SetFilter(*msg.Filter)
	}
	if msg.Limit != nil {
		ctrl.SetLimit(*msg.Limit)
	}
	if msg.Page != nil {
		ctrl.SetPage(*msg.Page)
	}
	if msg.Refresh {
		ctrl.Refresh()
	}
}
