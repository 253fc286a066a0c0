package websocket

import (
	"context"
	"encoding/json"
	"time"

	"ollama-chat-be/internal/dto"
	"ollama-chat-be/internal/pkg/logger"
	"ollama-chat-be/internal/pkg/serverutils"
	"ollama-chat-be/internal/service"

	"github.com/gofiber/websocket/v2"
)

const writeWait = 10 * time.Second

// StreamHandler serves one streaming chat turn per websocket message: the
// client sends a JSON ChatRequest, the server answers with a sequence of
// "fragment" frames followed by exactly one "done" or "error" frame. The
// connection stays open for further turns.
type StreamHandler struct {
	chatService service.IChatService
	logger      logger.ILogger
}

func NewStreamHandler(chatService service.IChatService, log logger.ILogger) *StreamHandler {
	return &StreamHandler{
		chatService: chatService,
		logger:      log,
	}
}

// Serve runs the read loop for one connection.
func (h *StreamHandler) Serve(conn *websocket.Conn) {
	defer conn.Close()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WS", "Connection closed unexpectedly", map[string]interface{}{"error": err.Error()})
			}
			return
		}

		var req dto.ChatRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			h.writeFrame(conn, dto.StreamFrame{Type: "error", Error: "malformed request: " + err.Error()})
			continue
		}
		if err := serverutils.ValidateRequest(req); err != nil {
			h.writeFrame(conn, dto.StreamFrame{Type: "error", Error: err.Error()})
			continue
		}

		h.serveTurn(conn, &req)
	}
}

func (h *StreamHandler) serveTurn(conn *websocket.Conn, req *dto.ChatRequest) {
	fragments := make(chan string)
	writerDone := make(chan struct{})

	// Writer goroutine: forward fragments to the peer as they arrive. The
	// chat service closes the channel when the stream ends, successful or not.
	go func() {
		defer close(writerDone)
		for fragment := range fragments {
			h.writeFrame(conn, dto.StreamFrame{Type: "fragment", Content: fragment})
		}
	}()

	resp, err := h.chatService.StreamChat(context.Background(), req, fragments)
	<-writerDone

	if err != nil {
		h.writeFrame(conn, dto.StreamFrame{Type: "error", Error: err.Error()})
		return
	}
	h.writeFrame(conn, dto.StreamFrame{Type: "done", Messages: len(resp.ConversationHistory)})
}

func (h *StreamHandler) writeFrame(conn *websocket.Conn, frame dto.StreamFrame) {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(frame); err != nil {
		h.logger.Warn("WS", "Failed to write frame", map[string]interface{}{"error": err.Error()})
	}
}
