package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/planner/api/transport"
	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/pkg/httpcontext"
	attachmentUC "github.com/fastygo/planner/usecase/attachment"
)

type AttachmentHandler struct {
	baseHandler
	uc *attachmentUC.UseCase
}

func NewAttachmentHandler(uc *attachmentUC.UseCase, adapter *httpcontext.Adapter, localizer *Localizer, logger *zap.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		baseHandler: newBaseHandler(adapter, localizer, logger),
		uc:          uc,
	}
}

// @Summary Validate a file and get a presigned upload URL
// @Tags attachments
// @Router /api/v1/attachments [post]
func (h *AttachmentHandler) Prepare(ctx *fasthttp.RequestCtx) {
	var req transport.PrepareUploadRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	upload, err := h.uc.Prepare(stdCtx, req.Name, req.Size, req.ContentType)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.log(stdCtx).Debug("upload prepared", zap.String("key", upload.Key), zap.String("size", attachmentUC.FormatSize(req.Size)))
	h.respondSuccess(ctx, http.StatusCreated, upload)
}

// @Summary Attach an uploaded file to a task
// @Tags attachments
// @Router /api/v1/tasks/{id}/attachments [post]
func (h *AttachmentHandler) AttachToTask(ctx *fasthttp.RequestCtx) {
	var att domain.Attachment
	if !h.decode(ctx, &att) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.AttachToTask(stdCtx, pathParam(ctx, "id"), att)
	h.respondOwner(ctx, http.StatusCreated, task, task == nil, err)
}

// @Summary Remove a file from a task
// @Tags attachments
// @Router /api/v1/tasks/{id}/attachments/{attachmentId} [delete]
func (h *AttachmentHandler) DetachFromTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.DetachFromTask(stdCtx, pathParam(ctx, "id"), pathParam(ctx, "attachmentId"))
	h.respondOwner(ctx, http.StatusOK, task, task == nil, err)
}

// @Summary Attach an uploaded file to a meeting note
// @Tags attachments
// @Router /api/v1/meetings/{id}/attachments [post]
func (h *AttachmentHandler) AttachToMeeting(ctx *fasthttp.RequestCtx) {
	var att domain.Attachment
	if !h.decode(ctx, &att) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	meeting, err := h.uc.AttachToMeeting(stdCtx, pathParam(ctx, "id"), att)
	h.respondOwner(ctx, http.StatusCreated, meeting, meeting == nil, err)
}

// @Summary Remove a file from a meeting note
// @Tags attachments
// @Router /api/v1/meetings/{id}/attachments/{attachmentId} [delete]
func (h *AttachmentHandler) DetachFromMeeting(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	meeting, err := h.uc.DetachFromMeeting(stdCtx, pathParam(ctx, "id"), pathParam(ctx, "attachmentId"))
	h.respondOwner(ctx, http.StatusOK, meeting, meeting == nil, err)
}

func (h *AttachmentHandler) respondOwner(ctx *fasthttp.RequestCtx, status int, owner interface{}, missing bool, err error) {
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if missing {
		h.notFound(ctx)
		return
	}
	h.respondSuccess(ctx, status, owner)
}
