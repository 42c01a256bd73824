package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	domainerrors "github.com/fuckinutkin/greenland/internal/domain/errors"
	"github.com/fuckinutkin/greenland/internal/interfaces/http/response"
	"github.com/fuckinutkin/greenland/internal/usecases"
	"github.com/fuckinutkin/greenland/pkg/logger"
	"github.com/fuckinutkin/greenland/web"
)

// LinkHandler serves the public check page and the link metadata API
type LinkHandler struct {
	links *usecases.LinkUsecase
}

// NewLinkHandler creates a new link handler
func NewLinkHandler(links *usecases.LinkUsecase) *LinkHandler {
	return &LinkHandler{links: links}
}

type checkPageData struct {
	ID     string
	Amount string
	Detail string
}

// CheckPage resolves a link, counts the open and serves the widget page.
// GET /check?id=
func (h *LinkHandler) CheckPage(c *gin.Context) {
	id := c.Query("id")

	link, err := h.links.RecordOpen(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrLinkNotFound) {
			c.String(http.StatusNotFound, "Link not found")
			return
		}
		response.Error(c, err)
		return
	}

	data := checkPageData{
		ID:     link.ID,
		Amount: "$" + link.Amount,
	}
	switch {
	case link.Currency.Valid:
		data.Detail = "currency: " + strings.ToUpper(link.Currency.String)
	case link.DurationSeconds.Valid:
		data.Detail = "expires in " + usecases.FormatDuration(link.DurationSeconds.Int64)
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := web.CheckTemplate.Execute(c.Writer, data); err != nil {
		logger.Error(c.Request.Context(), "check page render failed",
			zap.String("link_id", link.ID), zap.Error(err))
	}
}

type linkInfoResponse struct {
	OK              bool        `json:"ok"`
	ID              string      `json:"id"`
	Amount          string      `json:"amount"`
	Network         null.String `json:"network"`
	DurationSeconds null.Int64  `json:"durationSeconds"`
	Currency        null.String `json:"currency"`
	Opens           int64       `json:"opens"`
	CreatedAt       int64       `json:"createdAt"`
	ExpiresAt       null.Int64  `json:"expiresAt"`
}

// GetLink returns the link's public fields
// GET /api/link?id=
func (h *LinkHandler) GetLink(c *gin.Context) {
	id := c.Query("id")

	link, err := h.links.GetLink(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, linkInfoResponse{
		OK:              true,
		ID:              link.ID,
		Amount:          link.Amount,
		Network:         link.Network,
		DurationSeconds: link.DurationSeconds,
		Currency:        link.Currency,
		Opens:           link.Opens,
		CreatedAt:       link.CreatedAt,
		ExpiresAt:       link.ExpiresAt(),
	})
}
