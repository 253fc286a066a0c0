package controller

import (
	"io"

	"ollama-chat-be/internal/pkg/apperrors"
	"ollama-chat-be/internal/pkg/serverutils"
	"ollama-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) IDocumentController {
	return &documentController{
		documentService: documentService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	r.Post("/sessions/:id/documents", c.Upload)
}

// Upload accepts one multipart file under the "file" field and indexes it
// for the session.
func (c *documentController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return &apperrors.ValidationError{Message: "missing multipart file field 'file'"}
	}

	file, err := fileHeader.Open()
	if err != nil {
		return &apperrors.ValidationError{Message: "unreadable upload: " + err.Error()}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return &apperrors.ValidationError{Message: "unreadable upload: " + err.Error()}
	}

	res, err := c.documentService.Upload(ctx.Context(), ctx.Params("id"), fileHeader.Filename, data)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success upload document", res))
}
