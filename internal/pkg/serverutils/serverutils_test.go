package serverutils

import (
	"errors"
	"net/http/httptest"
	"testing"

	"ollama-chat-be/internal/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequest(t *testing.T) {
	type payload struct {
		SessionId string `validate:"required"`
		Model     string `validate:"required"`
	}

	t.Run("valid request passes", func(t *testing.T) {
		require.NoError(t, ValidateRequest(payload{SessionId: "s1", Model: "llama3"}))
	})

	t.Run("missing fields are all reported", func(t *testing.T) {
		err := ValidateRequest(payload{})

		var validation *apperrors.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, validation.Message, "SessionId (required)")
		assert.Contains(t, validation.Message, "Model (required)")
	})
}

func TestErrorHandlerMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", apperrors.SessionNotFound("s1"), fiber.StatusNotFound},
		{"model mismatch", &apperrors.ModelMismatchError{SessionModel: "a", RequestedModel: "b"}, fiber.StatusBadRequest},
		{"validation", &apperrors.ValidationError{Message: "bad input"}, fiber.StatusUnprocessableEntity},
		{"upstream", &apperrors.UpstreamError{Op: "list models", Err: errors.New("down")}, fiber.StatusBadGateway},
		{"inference", &apperrors.InferenceError{Err: errors.New("timeout")}, fiber.StatusInternalServerError},
		{"fiber error passthrough", fiber.ErrUpgradeRequired, fiber.StatusUpgradeRequired},
		{"unknown error", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(ErrorHandlerMiddleware())
			app.Get("/boom", func(ctx *fiber.Ctx) error {
				return tt.err
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
