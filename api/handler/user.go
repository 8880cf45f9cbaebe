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

// SessionReader exposes the acting session identity.
type SessionReader interface {
	CurrentUser() *domain.SessionUser
}

// UserHandler serves the team directory. Mutations are reserved to admins.
type UserHandler struct {
	baseHandler
	uc      *dataUC.UseCase
	session SessionReader
}

func NewUserHandler(uc *dataUC.UseCase, session SessionReader, adapter *httpcontext.Adapter, localizer *Localizer, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		baseHandler: newBaseHandler(adapter, localizer, logger),
		uc:          uc,
		session:     session,
	}
}

// @Summary List or search users
// @Tags users
// @Router /api/v1/users [get]
func (h *UserHandler) GetUsers(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	users, err := h.uc.SearchUsers(stdCtx, string(ctx.QueryArgs().Peek("search")))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondList(ctx, users, len(users))
}

// @Summary User statistics
// @Tags users
// @Router /api/v1/users/stats [get]
func (h *UserHandler) Stats(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats, err := h.uc.UserStats(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, stats)
}

// @Summary Create user
// @Tags users
// @Router /api/v1/users [post]
func (h *UserHandler) CreateUser(ctx *fasthttp.RequestCtx) {
	if !h.requireAdmin(ctx) {
		return
	}
	var req transport.UserRequest
	if !h.decode(ctx, &req) {
		return
	}
	user, err := req.ToDomain()
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.AddUser(stdCtx, user)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update user
// @Tags users
// @Router /api/v1/users/{id} [patch]
func (h *UserHandler) UpdateUser(ctx *fasthttp.RequestCtx) {
	if !h.requireAdmin(ctx) {
		return
	}
	var patch domain.UserPatch
	if !h.decode(ctx, &patch) {
		return
	}
	if err := transport.ValidateUserPatch(patch); err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateUser(stdCtx, pathParam(ctx, "id"), patch)
	h.respondUser(ctx, updated, err)
}

// @Summary Toggle whether the user is active
// @Tags users
// @Router /api/v1/users/{id}/toggle [post]
func (h *UserHandler) ToggleActive(ctx *fasthttp.RequestCtx) {
	if !h.requireAdmin(ctx) {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.ToggleUserActive(stdCtx, pathParam(ctx, "id"))
	h.respondUser(ctx, updated, err)
}

// @Summary Delete user
// @Tags users
// @Router /api/v1/users/{id} [delete]
func (h *UserHandler) DeleteUser(ctx *fasthttp.RequestCtx) {
	if !h.requireAdmin(ctx) {
		return
	}
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	removed, err := h.uc.DeleteUser(stdCtx, pathParam(ctx, "id"))
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

func (h *UserHandler) respondUser(ctx *fasthttp.RequestCtx, user *domain.User, err error) {
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if user == nil {
		h.notFound(ctx)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}

func (h *UserHandler) requireAdmin(ctx *fasthttp.RequestCtx) bool {
	if h.session.CurrentUser().IsAdmin() {
		return true
	}
	h.respondError(ctx, domain.ErrForbidden)
	return false
}
