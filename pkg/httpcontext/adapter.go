package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/planner/pkg/logger"
)

// Key represents a context value key exported for reuse.
type Key string

const (
	KeyRemoteAddr Key = "remote_addr"
	KeyUserAgent  Key = "user_agent"
	KeyUserID     Key = "user_id"
	KeyLanguage   Key = "language"
)

// UserIDHeader carries the authenticated user id set by the auth middleware.
const UserIDHeader = "X-User-ID"

// LanguageNegotiator picks a display language from an Accept-Language value.
type LanguageNegotiator func(acceptLanguage string) string

// Adapter converts fasthttp.RequestCtx into a stdlib context with deadlines and metadata.
type Adapter struct {
	timeout   time.Duration
	negotiate LanguageNegotiator
}

// NewAdapter constructs a new Adapter using the provided timeout. negotiate
// may be nil, in which case no language is attached.
func NewAdapter(timeout time.Duration, negotiate LanguageNegotiator) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{
		timeout:   timeout,
		negotiate: negotiate,
	}
}

// Attach creates a context with timeout derived from the adapter and enriches it with request metadata.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(context.Background(), a.timeout)

	reqID := getRequestID(ctx)
	stdCtx = appLogger.ContextWithRequestID(stdCtx, reqID)
	ctx.Response.Header.Set("X-Request-ID", reqID)

	if remoteAddr := ctx.RemoteAddr(); remoteAddr != nil {
		stdCtx = context.WithValue(stdCtx, KeyRemoteAddr, remoteAddr.String())
	}
	if ua := string(ctx.Request.Header.UserAgent()); ua != "" {
		stdCtx = context.WithValue(stdCtx, KeyUserAgent, ua)
	}
	if userID := string(ctx.Request.Header.Peek(UserIDHeader)); userID != "" {
		stdCtx = context.WithValue(stdCtx, KeyUserID, userID)
	}
	if a.negotiate != nil {
		lang := a.negotiate(string(ctx.Request.Header.Peek(fasthttp.HeaderAcceptLanguage)))
		if lang != "" {
			stdCtx = context.WithValue(stdCtx, KeyLanguage, lang)
		}
	}

	return stdCtx, cancel
}

// UserID returns the authenticated user id attached by Attach.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(KeyUserID).(string)
	return id
}

// Language returns the negotiated request language, or "".
func Language(ctx context.Context) string {
	lang, _ := ctx.Value(KeyLanguage).(string)
	return lang
}

func getRequestID(ctx *fasthttp.RequestCtx) string {
	if ctx == nil {
		return uuid.NewString()
	}
	if header := string(ctx.Request.Header.Peek("X-Request-ID")); strings.TrimSpace(header) != "" {
		return header
	}
	return uuid.NewString()
}
