package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/planner/api/transport"
	"github.com/fastygo/planner/pkg/httpcontext"
	messageUC "github.com/fastygo/planner/usecase/message"
)

type MessageHandler struct {
	baseHandler
	uc *messageUC.UseCase
}

func NewMessageHandler(uc *messageUC.UseCase, adapter *httpcontext.Adapter, localizer *Localizer, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{
		baseHandler: newBaseHandler(adapter, localizer, logger),
		uc:          uc,
	}
}

// @Summary List conversations, most recent first
// @Tags messages
// @Router /api/v1/conversations [get]
func (h *MessageHandler) GetConversations(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	convs, err := h.uc.Conversations(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(convs, map[string]interface{}{
		"total":    len(convs),
		"activeId": h.uc.ActiveConversationID(),
	}))
}

// @Summary Start or reuse a conversation
// @Tags messages
// @Router /api/v1/conversations [post]
func (h *MessageHandler) StartConversation(ctx *fasthttp.RequestCtx) {
	var req transport.StartConversationRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id, err := h.uc.StartConversation(stdCtx, req.ParticipantIDs, req.Name)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.ConversationCreated{ID: id})
}

// @Summary Select the active conversation
// @Tags messages
// @Router /api/v1/conversations/active [put]
func (h *MessageHandler) SetActive(ctx *fasthttp.RequestCtx) {
	var req transport.ActiveConversationRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.SetActiveConversation(stdCtx, req.ID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.ConversationCreated{ID: h.uc.ActiveConversationID()})
}

// @Summary Messages of a conversation
// @Tags messages
// @Router /api/v1/conversations/{id}/messages [get]
func (h *MessageHandler) GetMessages(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	msgs, err := h.uc.ConversationMessages(stdCtx, pathParam(ctx, "id"))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondList(ctx, msgs, len(msgs))
}

// @Summary Send a message
// @Tags messages
// @Router /api/v1/conversations/{id}/messages [post]
func (h *MessageHandler) SendMessage(ctx *fasthttp.RequestCtx) {
	var req transport.SendMessageRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id := pathParam(ctx, "id")
	msg, err := h.uc.SendMessage(stdCtx, id, req.Text)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if msg == nil {
		conv, err := h.uc.Conversation(stdCtx, id)
		if err != nil || conv == nil {
			h.notFound(ctx)
			return
		}
		h.respondSuccess(ctx, http.StatusOK, nil)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, msg)
}

// @Summary Participants of a conversation
// @Tags messages
// @Router /api/v1/conversations/{id}/participants [get]
func (h *MessageHandler) GetParticipants(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	participants, err := h.uc.ConversationParticipants(stdCtx, pathParam(ctx, "id"))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondList(ctx, participants, len(participants))
}

// @Summary Add participants to a group conversation
// @Tags messages
// @Router /api/v1/conversations/{id}/participants [post]
func (h *MessageHandler) AddParticipants(ctx *fasthttp.RequestCtx) {
	var req transport.AddParticipantsRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	conv, err := h.uc.AddParticipants(stdCtx, pathParam(ctx, "id"), req.ParticipantIDs)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if conv == nil {
		h.notFound(ctx)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, conv)
}
