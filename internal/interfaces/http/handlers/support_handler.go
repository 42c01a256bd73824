package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fuckinutkin/greenland/internal/domain/entities"
	domainerrors "github.com/fuckinutkin/greenland/internal/domain/errors"
	"github.com/fuckinutkin/greenland/internal/interfaces/http/response"
	"github.com/fuckinutkin/greenland/internal/usecases"
)

// SupportHandler exposes the widget's chat read/write endpoints
type SupportHandler struct {
	links   *usecases.LinkUsecase
	support *usecases.SupportUsecase
}

// NewSupportHandler creates a new support handler
func NewSupportHandler(links *usecases.LinkUsecase, support *usecases.SupportUsecase) *SupportHandler {
	return &SupportHandler{links: links, support: support}
}

type supportSendRequest struct {
	LinkID   string `json:"linkId"`
	ThreadID string `json:"threadId"`
	Text     string `json:"text"`
}

// Send appends a visitor message and forwards it to the link owner.
// POST /api/support/send
func (h *SupportHandler) Send(c *gin.Context) {
	var req supportSendRequest
	// a malformed body reads the same as an empty one
	_ = c.ShouldBindJSON(&req)

	// the link is resolved before field validation: an unknown link answers
	// 404 even when other fields are missing too
	if _, err := h.links.GetLink(c.Request.Context(), req.LinkID); err != nil {
		response.Error(c, err)
		return
	}
	if req.ThreadID == "" || req.Text == "" {
		response.ErrorWithCode(c, http.StatusBadRequest, domainerrors.CodeMissingFields)
		return
	}

	if err := h.support.VisitorSend(c.Request.Context(), req.LinkID, req.ThreadID, req.Text); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c)
}

type supportPollResponse struct {
	OK       bool               `json:"ok"`
	Messages []entities.Message `json:"messages"`
}

// Poll returns the thread log. A thread that does not exist yet polls as
// empty, never as an error: the widget polls before the first message.
// GET /api/support/poll?linkId=&threadId=
func (h *SupportHandler) Poll(c *gin.Context) {
	msgs, err := h.support.Poll(c.Request.Context(), c.Query("linkId"), c.Query("threadId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if msgs == nil {
		msgs = []entities.Message{}
	}
	response.Success(c, http.StatusOK, supportPollResponse{OK: true, Messages: msgs})
}
