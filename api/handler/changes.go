package handler

import (
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/planner/api/transport"
	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/pkg/httpcontext"
)

// ChangeFeed exposes the retained store changes.
type ChangeFeed interface {
	Since(version int64) []domain.Change
	Version() int64
}

type ChangesHandler struct {
	baseHandler
	feed ChangeFeed
}

func NewChangesHandler(feed ChangeFeed, adapter *httpcontext.Adapter, localizer *Localizer, logger *zap.Logger) *ChangesHandler {
	return &ChangesHandler{
		baseHandler: newBaseHandler(adapter, localizer, logger),
		feed:        feed,
	}
}

// @Summary Store changes after a version, for polling clients
// @Tags changes
// @Router /api/v1/changes [get]
func (h *ChangesHandler) GetChanges(ctx *fasthttp.RequestCtx) {
	since := int64(0)
	if raw := string(ctx.QueryArgs().Peek("since")); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			h.invalidPayload(ctx)
			return
		}
		since = parsed
	}

	changes := h.feed.Since(since)
	if changes == nil {
		changes = []domain.Change{}
	}
	h.respondSuccess(ctx, http.StatusOK, transport.ChangesResponse{
		Version: h.feed.Version(),
		Changes: changes,
	})
}
