package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/planner/api/transport"
	"github.com/fastygo/planner/pkg/httpcontext"
	prefsUC "github.com/fastygo/planner/usecase/preferences"
)

type PreferencesHandler struct {
	baseHandler
	uc *prefsUC.UseCase
}

func NewPreferencesHandler(uc *prefsUC.UseCase, adapter *httpcontext.Adapter, localizer *Localizer, logger *zap.Logger) *PreferencesHandler {
	return &PreferencesHandler{
		baseHandler: newBaseHandler(adapter, localizer, logger),
		uc:          uc,
	}
}

// @Summary Current language and theme
// @Tags preferences
// @Router /api/v1/preferences [get]
func (h *PreferencesHandler) Get(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.uc.Snapshot())
}

// @Summary Change the display language
// @Tags preferences
// @Router /api/v1/preferences [put]
func (h *PreferencesHandler) Update(ctx *fasthttp.RequestCtx) {
	var req transport.PreferencesRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.SetLanguage(stdCtx, req.Language); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, h.uc.Snapshot())
}

// @Summary Toggle dark mode
// @Tags preferences
// @Router /api/v1/preferences/dark-mode [post]
func (h *PreferencesHandler) ToggleDarkMode(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.uc.ToggleDarkMode(stdCtx)
	h.respondSuccess(ctx, http.StatusOK, h.uc.Snapshot())
}

// @Summary Translation catalog
// @Tags preferences
// @Router /api/v1/translations [get]
func (h *PreferencesHandler) Translations(ctx *fasthttp.RequestCtx) {
	lang := string(ctx.QueryArgs().Peek("lang"))
	if lang == "" {
		stdCtx, cancel := h.requestContext(ctx)
		lang = httpcontext.Language(stdCtx)
		cancel()
	}

	messages, err := h.uc.Translations(lang)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, messages)
}
