package httpcontext

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/planner/pkg/logger"
)

func TestAttachCarriesRequestMetadata(t *testing.T) {
	var rc fasthttp.RequestCtx
	rc.Request.Header.Set("X-Request-ID", "req-1")
	rc.Request.Header.Set(UserIDHeader, "2")
	rc.Request.Header.Set(fasthttp.HeaderAcceptLanguage, "en-US")
	rc.Request.Header.SetUserAgent("planner-test")

	adapter := NewAdapter(time.Second, func(accept string) string {
		if accept == "en-US" {
			return "en"
		}
		return "ko"
	})
	ctx, cancel := adapter.Attach(&rc)
	defer cancel()

	assert.Equal(t, "req-1", appLogger.RequestID(ctx))
	assert.Equal(t, "req-1", string(rc.Response.Header.Peek("X-Request-ID")))
	assert.Equal(t, "2", UserID(ctx))
	assert.Equal(t, "en", Language(ctx))
	assert.Equal(t, "planner-test", ctx.Value(KeyUserAgent))

	deadline, ok := ctx.Deadline()
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, time.Second)
}

func TestAttachGeneratesRequestID(t *testing.T) {
	var rc fasthttp.RequestCtx
	ctx, cancel := NewAdapter(0, nil).Attach(&rc)
	defer cancel()

	assert.NotEmpty(t, appLogger.RequestID(ctx))
	assert.Empty(t, UserID(ctx))
	assert.Empty(t, Language(ctx))
}
