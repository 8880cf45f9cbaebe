package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/planner/api/transport"
	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/pkg/httpcontext"
	dataUC "github.com/fastygo/planner/usecase/data"
)

type EventHandler struct {
	baseHandler
	uc *dataUC.UseCase
}

func NewEventHandler(uc *dataUC.UseCase, adapter *httpcontext.Adapter, localizer *Localizer, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		baseHandler: newBaseHandler(adapter, localizer, logger),
		uc:          uc,
	}
}

// @Summary List events, or the events of one date
// @Tags events
// @Router /api/v1/events [get]
func (h *EventHandler) GetEvents(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var (
		events []domain.Event
		err    error
	)
	if date := string(ctx.QueryArgs().Peek("date")); date != "" {
		var day domain.Date
		day, err = domain.ParseDate(date)
		if err == nil {
			events, err = h.uc.EventsOn(stdCtx, day)
		}
	} else {
		events, err = h.uc.ListEvents(stdCtx)
	}
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondList(ctx, events, len(events))
}

// @Summary Create event
// @Tags events
// @Router /api/v1/events [post]
func (h *EventHandler) CreateEvent(ctx *fasthttp.RequestCtx) {
	var req transport.EventRequest
	if !h.decode(ctx, &req) {
		return
	}
	event, err := req.ToDomain()
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.AddEvent(stdCtx, event)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update event
// @Tags events
// @Router /api/v1/events/{id} [patch]
func (h *EventHandler) UpdateEvent(ctx *fasthttp.RequestCtx) {
	var patch domain.EventPatch
	if !h.decode(ctx, &patch) {
		return
	}
	if err := transport.ValidateEventPatch(patch); err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateEvent(stdCtx, pathParam(ctx, "id"), patch)
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

// @Summary Delete event
// @Tags events
// @Router /api/v1/events/{id} [delete]
func (h *EventHandler) DeleteEvent(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	removed, err := h.uc.DeleteEvent(stdCtx, pathParam(ctx, "id"))
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
