package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/planner/api/transport"
	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/pkg/httpcontext"
	appLogger "github.com/fastygo/planner/pkg/logger"
)

// Translator renders translation keys carried by domain errors.
type Translator interface {
	T(lang, key string) string
	Negotiate(acceptLanguage, fallback string) string
}

// LanguageSource reports the workspace display language.
type LanguageSource interface {
	Language() string
}

// Localizer picks the message language for a request: the Accept-Language
// header when it names a supported language, else the workspace language.
type Localizer struct {
	Catalog     Translator
	Preferences LanguageSource
}

func (l *Localizer) translate(ctx *fasthttp.RequestCtx, key string) string {
	if l == nil || l.Catalog == nil {
		return key
	}
	fallback := "ko"
	if l.Preferences != nil {
		fallback = l.Preferences.Language()
	}
	lang := l.Catalog.Negotiate(string(ctx.Request.Header.Peek(fasthttp.HeaderAcceptLanguage)), fallback)
	return l.Catalog.T(lang, key)
}

type baseHandler struct {
	adapter   *httpcontext.Adapter
	localizer *Localizer
	logger    *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, localizer *Localizer, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, localizer: localizer, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	h.respondJSON(ctx, status, transport.NewSuccess(data, nil))
}

func (h baseHandler) respondList(ctx *fasthttp.RequestCtx, data interface{}, total int) {
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(data, transport.ListMeta{Total: total}))
}

// respondError shows the translated message for keyed domain errors and
// the error text otherwise.
func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	status, code := mapError(err)
	message := err.Error()
	if key := domain.TranslationKey(err); key != "" {
		message = h.localizer.translate(ctx, key)
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", string(ctx.Path())),
			zap.String("request_id", string(ctx.Response.Header.Peek("X-Request-ID"))),
			zap.Error(err))
	}
	h.respondJSON(ctx, status, transport.NewError(code, message, nil))
}

func (h baseHandler) respondKey(ctx *fasthttp.RequestCtx, status int, code domain.ErrorCode, key string) {
	h.respondJSON(ctx, status, transport.NewError(string(code), h.localizer.translate(ctx, key), nil))
}

func (h baseHandler) notFound(ctx *fasthttp.RequestCtx) {
	h.respondKey(ctx, http.StatusNotFound, domain.ErrCodeNotFound, "common.notFound")
}

func (h baseHandler) invalidPayload(ctx *fasthttp.RequestCtx) {
	h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
}

// decode unmarshals the body into dst, answering 400 on failure.
func (h baseHandler) decode(ctx *fasthttp.RequestCtx, dst interface{}) bool {
	if err := json.Unmarshal(ctx.PostBody(), dst); err != nil {
		h.invalidPayload(ctx)
		return false
	}
	return true
}

func (h baseHandler) log(ctx context.Context) *zap.Logger {
	return appLogger.WithRequestID(ctx, h.logger)
}

func pathParam(ctx *fasthttp.RequestCtx, name string) string {
	value, _ := ctx.UserValue(name).(string)
	return value
}

func mapError(err error) (int, string) {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeUnauthorized):
		return http.StatusUnauthorized, string(domain.ErrCodeUnauthorized)
	case domain.IsDomainError(err, domain.ErrCodeForbidden):
		return http.StatusForbidden, string(domain.ErrCodeForbidden)
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		return http.StatusBadRequest, string(domain.ErrCodeInvalid)
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		return http.StatusNotFound, string(domain.ErrCodeNotFound)
	case domain.IsDomainError(err, domain.ErrCodeConflict):
		return http.StatusConflict, string(domain.ErrCodeConflict)
	case domain.IsDomainError(err, domain.ErrCodeUnavailable):
		return http.StatusServiceUnavailable, string(domain.ErrCodeUnavailable)
	default:
		return http.StatusInternalServerError, string(domain.ErrCodeInternal)
	}
}
