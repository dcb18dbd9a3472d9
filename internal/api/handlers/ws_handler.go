package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/formforge/formforge/internal/application"
	"github.com/formforge/formforge/pkg/response"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// previewMessage is one client update: the full current value snapshot.
type previewMessage struct {
	Values map[string]any `json:"values"`
}

// previewReply carries the post-recompute snapshot and the per-field
// validation errors for it.
type previewReply struct {
	Values map[string]any    `json:"values"`
	Errors map[string]string `json:"errors"`
}

type PreviewWSHandler struct {
	service *application.PreviewService
}

func NewPreviewWSHandler(service *application.PreviewService) *PreviewWSHandler {
	return &PreviewWSHandler{service: service}
}

// Stream is the live preview loop: the client sends a value snapshot on
// every input change and receives the recomputed snapshot back. Each
// message is one derivation pass; chained derived fields settle over
// consecutive messages, exactly as in the HTTP recompute endpoint.
func (h *PreviewWSHandler) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "websocket upgrade failed: " + err.Error()})
		return
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()
	defer close(done)

	for {
		var msg previewMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("preview websocket closed: %v", err)
			}
			return
		}
		if msg.Values == nil {
			msg.Values = map[string]any{}
		}

		merged, err := h.service.Recompute(msg.Values)
		if err != nil {
			log.Printf("preview recompute failed: %v", err)
			return
		}
		errs, err := h.service.Validate(merged)
		if err != nil {
			log.Printf("preview validate failed: %v", err)
			return
		}

		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(previewReply{Values: merged, Errors: errs}); err != nil {
			return
		}
	}
}
