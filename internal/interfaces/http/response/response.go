package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "github.com/fuckinutkin/greenland/internal/domain/errors"
)

// Success sends a success response. The payload already carries its own
// "ok":true field; the browser widget checks it before reading anything else.
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// OK sends the bare success envelope
func OK(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Error sends an error response in the widget's envelope:
// {"ok":false,"error":"<code>"}
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	switch {
	case errors.As(err, &appErr):
	case errors.Is(err, domainerrors.ErrLinkNotFound):
		appErr = domainerrors.NotFound(domainerrors.CodeLinkNotFound, "link not found")
	case errors.Is(err, domainerrors.ErrThreadNotFound):
		appErr = domainerrors.NotFound(domainerrors.CodeLinkNotFound, "thread not found")
	case errors.Is(err, domainerrors.ErrNotOwner):
		appErr = domainerrors.Forbidden("not the link owner")
	default:
		appErr = domainerrors.InternalError(err)
	}

	c.JSON(appErr.Status, gin.H{
		"ok":    false,
		"error": appErr.Code,
	})
}

// ErrorWithCode sends an error response with an explicit status and code
func ErrorWithCode(c *gin.Context, status int, code string) {
	c.JSON(status, gin.H{
		"ok":    false,
		"error": code,
	})
}
