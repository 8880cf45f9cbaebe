package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/internal/i18n"
	"github.com/fastygo/planner/repository/memory"
	authUC "github.com/fastygo/planner/usecase/auth"
	dataUC "github.com/fastygo/planner/usecase/data"
	prefsUC "github.com/fastygo/planner/usecase/preferences"
)

type stubTokens struct{}

func (stubTokens) Issue(user domain.SessionUser) (string, time.Time, error) {
	return "token-" + user.ID, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), nil
}

type envelope struct {
	Status string          `json:"status"`
	Code   string          `json:"code"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

func newLocalizer(t *testing.T) *Localizer {
	t.Helper()
	catalog, err := i18n.Load()
	require.NoError(t, err)
	return &Localizer{Catalog: catalog, Preferences: prefsUC.New(catalog, i18n.Korean, nil)}
}

func newRequest(method, body string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	if body != "" {
		ctx.Request.SetBodyString(body)
	}
	return ctx
}

func decodeEnvelope(t *testing.T, ctx *fasthttp.RequestCtx) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &env))
	return env
}

func TestLoginFailureIsTranslated(t *testing.T) {
	session := authUC.New(context.Background(), memory.NewLocalStorage(), nil)
	h := NewAuthHandler(session, stubTokens{}, nil, newLocalizer(t), nil)

	ctx := newRequest(fasthttp.MethodPost, `{"email":"nobody@corp.com","password":"secret1"}`)
	h.Login(ctx)
	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
	env := decodeEnvelope(t, ctx)
	assert.Equal(t, string(domain.ErrCodeUnauthorized), env.Code)
	assert.Equal(t, "이메일 또는 비밀번호가 올바르지 않습니다.", env.Error)

	ctx = newRequest(fasthttp.MethodPost, `{"email":"nobody@corp.com","password":"secret1"}`)
	ctx.Request.Header.Set(fasthttp.HeaderAcceptLanguage, "en-US,en;q=0.9")
	h.Login(ctx)
	assert.Equal(t, "Email or password is incorrect.", decodeEnvelope(t, ctx).Error)
}

func TestSignupValidationAndDemoLogin(t *testing.T) {
	session := authUC.New(context.Background(), memory.NewLocalStorage(), nil)
	h := NewAuthHandler(session, stubTokens{}, nil, newLocalizer(t), nil)

	ctx := newRequest(fasthttp.MethodPost, `{"name":"  ","email":"a@b.c","password":"secret1"}`)
	ctx.Request.Header.Set(fasthttp.HeaderAcceptLanguage, "en")
	h.Signup(ctx)
	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	assert.Equal(t, "Please enter your name.", decodeEnvelope(t, ctx).Error)

	ctx = newRequest(fasthttp.MethodPost, `{"role":"admin"}`)
	h.Demo(ctx)
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	var resp struct {
		User  domain.SessionUser `json:"user"`
		Token string             `json:"token"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, ctx).Data, &resp))
	assert.Equal(t, "1", resp.User.ID)
	assert.Equal(t, "token-1", resp.Token)

	ctx = newRequest(fasthttp.MethodPost, `{not json`)
	h.Demo(ctx)
	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
}

func TestTaskRoutes(t *testing.T) {
	store := dataUC.New(memory.NewTaskRepository(), memory.NewUserRepository(), memory.NewEventRepository(), nil)
	h := NewTaskHandler(store, nil, newLocalizer(t), nil)

	ctx := newRequest(fasthttp.MethodPost, `{"title":"Ship it","assignee":"Kim"}`)
	h.CreateTask(ctx)
	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())

	ctx = newRequest(fasthttp.MethodPost, `{"title":"Ship it","assignee":"Kim","dueDate":"2024-01-20"}`)
	h.CreateTask(ctx)
	require.Equal(t, http.StatusCreated, ctx.Response.StatusCode())
	var created domain.Task
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, ctx).Data, &created))
	assert.Equal(t, domain.TaskStatusPending, created.Status)
	assert.Equal(t, domain.PriorityMedium, created.Priority)

	ctx = newRequest(fasthttp.MethodPatch, `{"title":"Renamed"}`)
	ctx.SetUserValue("id", "missing")
	h.UpdateTask(ctx)
	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
	assert.Equal(t, "요청한 항목을 찾을 수 없습니다.", decodeEnvelope(t, ctx).Error)

	ctx = newRequest(fasthttp.MethodDelete, "")
	ctx.SetUserValue("id", created.ID)
	h.DeleteTask(ctx)
	assert.Equal(t, http.StatusNoContent, ctx.Response.StatusCode())

	ctx = newRequest(fasthttp.MethodGet, "")
	h.GetTasks(ctx)
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.JSONEq(t, `[]`, string(decodeEnvelope(t, ctx).Data))
}

func TestUserMutationsRequireAdmin(t *testing.T) {
	ctx := context.Background()
	session := authUC.New(ctx, memory.NewLocalStorage(), nil)
	store := dataUC.New(memory.NewTaskRepository(), memory.NewUserRepository(), memory.NewEventRepository(), nil)
	h := NewUserHandler(store, session, nil, newLocalizer(t), nil)
	body := `{"name":"Lee","email":"lee@corp.com","role":"user"}`

	req := newRequest(fasthttp.MethodPost, body)
	h.CreateUser(req)
	assert.Equal(t, http.StatusForbidden, req.Response.StatusCode())

	_, err := session.LoginAsDemo(ctx, domain.RoleUser)
	require.NoError(t, err)
	req = newRequest(fasthttp.MethodPost, body)
	h.CreateUser(req)
	assert.Equal(t, http.StatusForbidden, req.Response.StatusCode())

	_, err = session.LoginAsDemo(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	req = newRequest(fasthttp.MethodPost, body)
	h.CreateUser(req)
	assert.Equal(t, http.StatusCreated, req.Response.StatusCode())

	count, err := store.TeamMemberCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMapError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.NewError(domain.ErrCodeInvalid, "bad"), http.StatusBadRequest},
		{domain.NewError(domain.ErrCodeNotFound, "gone"), http.StatusNotFound},
		{domain.NewError(domain.ErrCodeConflict, "dup"), http.StatusConflict},
		{domain.WrapError(domain.ErrCodeUnavailable, "down", errors.New("dial")), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		status, _ := mapError(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
	}
}
