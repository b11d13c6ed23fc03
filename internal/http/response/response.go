package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/projectgate-backend/internal/pkg/apperr"
)

type APIError struct {
	Message string         `json:"message"`
	Code    string         `json:"code,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondFromError maps a typed *apperr.Error to its HTTP status and carries
// its meta through; anything else becomes a 500.
func RespondFromError(c *gin.Context, err error) {
	if ae, ok := apperr.As(err); ok {
		c.JSON(ae.HTTPStatus(), ErrorEnvelope{
			Error: APIError{
				Message: ae.Message,
				Code:    ae.Code,
				Meta:    ae.Meta,
			},
		})
		return
	}
	RespondError(c, http.StatusInternalServerError, "internal_error", err)
}
