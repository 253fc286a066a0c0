package controller

import (
	"ollama-chat-be/internal/dto"
	"ollama-chat-be/internal/pkg/serverutils"
	"ollama-chat-be/internal/service"
	internalWS "ollama-chat-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	QuickChat(ctx *fiber.Ctx) error
	ChatWs(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService   service.IChatService
	streamHandler *internalWS.StreamHandler
}

func NewChatController(chatService service.IChatService, streamHandler *internalWS.StreamHandler) IChatController {
	return &chatController{
		chatService:   chatService,
		streamHandler: streamHandler,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Post("", c.Chat)
	h.Post("quick", c.QuickChat)
	h.Get("ws", c.ChatWs)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendChat(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success chat", res))
}

func (c *chatController) QuickChat(ctx *fiber.Ctx) error {
	var req dto.QuickChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.QuickChat(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success quick chat", res))
}

// ChatWs upgrades to a websocket that streams chat turns fragment by fragment.
func (c *chatController) ChatWs(ctx *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(ctx) {
		return websocket.New(c.streamHandler.Serve)(ctx)
	}
	return fiber.ErrUpgradeRequired
}
