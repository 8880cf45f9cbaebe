package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/planner/api/transport"
	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/pkg/httpcontext"
)

// SessionStore is the subset of the session store the auth routes drive.
type SessionStore interface {
	Login(ctx context.Context, email, password string) (bool, error)
	Signup(ctx context.Context, name, email, password string) (domain.SessionUser, error)
	LoginAsDemo(ctx context.Context, role string) (domain.SessionUser, error)
	Logout(ctx context.Context) error
	CurrentUser() *domain.SessionUser
}

// TokenIssuer signs bearer tokens for a session identity.
type TokenIssuer interface {
	Issue(user domain.SessionUser) (string, time.Time, error)
}

type AuthHandler struct {
	baseHandler
	session SessionStore
	tokens  TokenIssuer
}

func NewAuthHandler(session SessionStore, tokens TokenIssuer, adapter *httpcontext.Adapter, localizer *Localizer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, localizer, logger),
		session:     session,
		tokens:      tokens,
	}
}

// @Summary Log in with email and password
// @Tags auth
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	ok, err := h.session.Login(stdCtx, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if !ok {
		h.log(stdCtx).Info("login rejected")
		h.respondKey(ctx, http.StatusUnauthorized, domain.ErrCodeUnauthorized, "auth.loginError")
		return
	}
	h.respondSession(ctx, http.StatusOK, h.session.CurrentUser())
}

// @Summary Register an account and log it in
// @Tags auth
// @Router /api/v1/auth/signup [post]
func (h *AuthHandler) Signup(ctx *fasthttp.RequestCtx) {
	var req transport.SignupRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.session.Signup(stdCtx, req.Name, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSession(ctx, http.StatusCreated, &user)
}

// @Summary Log in as a demo identity
// @Tags auth
// @Router /api/v1/auth/demo [post]
func (h *AuthHandler) Demo(ctx *fasthttp.RequestCtx) {
	var req transport.DemoLoginRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.session.LoginAsDemo(stdCtx, req.Role)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSession(ctx, http.StatusOK, &user)
}

// @Summary End the session
// @Tags auth
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.session.Logout(stdCtx); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.SessionStatus{})
}

// @Summary Current session
// @Tags auth
// @Router /api/v1/auth/session [get]
func (h *AuthHandler) Session(ctx *fasthttp.RequestCtx) {
	user := h.session.CurrentUser()
	h.respondSuccess(ctx, http.StatusOK, transport.SessionStatus{
		Authenticated: user != nil,
		IsAdmin:       user.IsAdmin(),
		User:          user,
	})
}

func (h *AuthHandler) respondSession(ctx *fasthttp.RequestCtx, status int, user *domain.SessionUser) {
	if user == nil {
		h.respondError(ctx, domain.ErrUnauthorized)
		return
	}
	token, expires, err := h.tokens.Issue(*user)
	if err != nil {
		h.respondError(ctx, domain.WrapError(domain.ErrCodeInternal, "issue token", err))
		return
	}
	h.respondSuccess(ctx, status, transport.SessionResponse{
		User:      *user,
		Token:     token,
		ExpiresAt: expires,
	})
}
