package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/planner/api/transport"
	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/pkg/httpcontext"
	meetingUC "github.com/fastygo/planner/usecase/meeting"
)

type MeetingHandler struct {
	baseHandler
	uc *meetingUC.UseCase
}

func NewMeetingHandler(uc *meetingUC.UseCase, adapter *httpcontext.Adapter, localizer *Localizer, logger *zap.Logger) *MeetingHandler {
	return &MeetingHandler{
		baseHandler: newBaseHandler(adapter, localizer, logger),
		uc:          uc,
	}
}

// @Summary List or search meeting notes
// @Tags meetings
// @Router /api/v1/meetings [get]
func (h *MeetingHandler) GetMeetings(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	meetings, err := h.uc.Search(stdCtx, string(ctx.QueryArgs().Peek("search")))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondList(ctx, meetings, len(meetings))
}

// @Summary Create meeting note
// @Tags meetings
// @Router /api/v1/meetings [post]
func (h *MeetingHandler) CreateMeeting(ctx *fasthttp.RequestCtx) {
	var req transport.MeetingRequest
	if !h.decode(ctx, &req) {
		return
	}
	meeting, err := req.ToDomain()
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Add(stdCtx, meeting)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update meeting note
// @Tags meetings
// @Router /api/v1/meetings/{id} [patch]
func (h *MeetingHandler) UpdateMeeting(ctx *fasthttp.RequestCtx) {
	var patch domain.MeetingPatch
	if !h.decode(ctx, &patch) {
		return
	}
	if err := transport.ValidateMeetingPatch(patch); err != nil {
		h.respondError(ctx, err)
		return
	}
	// attachments change only through the attachment routes
	patch.Attachments = nil

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Update(stdCtx, pathParam(ctx, "id"), patch)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if updated == nil {
		h.notFound(ctx)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete meeting note
// @Tags meetings
// @Router /api/v1/meetings/{id} [delete]
func (h *MeetingHandler) DeleteMeeting(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	removed, err := h.uc.Delete(stdCtx, pathParam(ctx, "id"))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if !removed {
		h.notFound(ctx)
		return
	}
	ctx.SetStatusCode(http.StatusNoContent)
}

// @Summary Comment on a meeting note
// @Tags meetings
// @Router /api/v1/meetings/{id}/comments [post]
func (h *MeetingHandler) AddComment(ctx *fasthttp.RequestCtx) {
	var req transport.CommentRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id := pathParam(ctx, "id")
	comment, err := h.uc.AddComment(stdCtx, id, req.Content)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if comment == nil {
		existing, err := h.uc.Get(stdCtx, id)
		if err != nil || existing == nil {
			h.notFound(ctx)
			return
		}
		// blank comment
		h.respondSuccess(ctx, http.StatusOK, nil)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, comment)
}
