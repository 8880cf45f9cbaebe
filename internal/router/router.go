package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/planner/api/handler"
)

type Handlers struct {
	Auth        *apiHandler.AuthHandler
	Task        *apiHandler.TaskHandler
	User        *apiHandler.UserHandler
	Event       *apiHandler.EventHandler
	Meeting     *apiHandler.MeetingHandler
	Message     *apiHandler.MessageHandler
	Attachment  *apiHandler.AttachmentHandler
	Preferences *apiHandler.PreferencesHandler
	Changes     *apiHandler.ChangesHandler
	Health      *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()
	protected := authMiddleware

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/signup", handlers.Auth.Signup)
	r.POST("/api/v1/auth/demo", handlers.Auth.Demo)
	r.GET("/api/v1/auth/session", handlers.Auth.Session)
	r.POST("/api/v1/auth/logout", protected(handlers.Auth.Logout))

	// Preferences are usable before login, like the login page language toggle.
	r.GET("/api/v1/preferences", handlers.Preferences.Get)
	r.PUT("/api/v1/preferences", handlers.Preferences.Update)
	r.POST("/api/v1/preferences/dark-mode", handlers.Preferences.ToggleDarkMode)
	r.GET("/api/v1/translations", handlers.Preferences.Translations)

	r.GET("/api/v1/dashboard", protected(handlers.Task.Dashboard))

	r.GET("/api/v1/tasks", protected(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", protected(handlers.Task.CreateTask))
	r.GET("/api/v1/tasks/gantt", protected(handlers.Task.Gantt))
	r.PATCH("/api/v1/tasks/{id}", protected(handlers.Task.UpdateTask))
	r.DELETE("/api/v1/tasks/{id}", protected(handlers.Task.DeleteTask))
	r.POST("/api/v1/tasks/{id}/attachments", protected(handlers.Attachment.AttachToTask))
	r.DELETE("/api/v1/tasks/{id}/attachments/{attachmentId}", protected(handlers.Attachment.DetachFromTask))

	r.GET("/api/v1/users", protected(handlers.User.GetUsers))
	r.POST("/api/v1/users", protected(handlers.User.CreateUser))
	r.GET("/api/v1/users/stats", protected(handlers.User.Stats))
	r.PATCH("/api/v1/users/{id}", protected(handlers.User.UpdateUser))
	r.DELETE("/api/v1/users/{id}", protected(handlers.User.DeleteUser))
	r.POST("/api/v1/users/{id}/toggle", protected(handlers.User.ToggleActive))

	r.GET("/api/v1/events", protected(handlers.Event.GetEvents))
	r.POST("/api/v1/events", protected(handlers.Event.CreateEvent))
	r.PATCH("/api/v1/events/{id}", protected(handlers.Event.UpdateEvent))
	r.DELETE("/api/v1/events/{id}", protected(handlers.Event.DeleteEvent))

	r.GET("/api/v1/meetings", protected(handlers.Meeting.GetMeetings))
	r.POST("/api/v1/meetings", protected(handlers.Meeting.CreateMeeting))
	r.PATCH("/api/v1/meetings/{id}", protected(handlers.Meeting.UpdateMeeting))
	r.DELETE("/api/v1/meetings/{id}", protected(handlers.Meeting.DeleteMeeting))
	r.POST("/api/v1/meetings/{id}/comments", protected(handlers.Meeting.AddComment))
	r.POST("/api/v1/meetings/{id}/attachments", protected(handlers.Attachment.AttachToMeeting))
	r.DELETE("/api/v1/meetings/{id}/attachments/{attachmentId}", protected(handlers.Attachment.DetachFromMeeting))

	r.GET("/api/v1/conversations", protected(handlers.Message.GetConversations))
	r.POST("/api/v1/conversations", protected(handlers.Message.StartConversation))
	r.PUT("/api/v1/conversations/active", protected(handlers.Message.SetActive))
	r.GET("/api/v1/conversations/{id}/messages", protected(handlers.Message.GetMessages))
	r.POST("/api/v1/conversations/{id}/messages", protected(handlers.Message.SendMessage))
	r.GET("/api/v1/conversations/{id}/participants", protected(handlers.Message.GetParticipants))
	r.POST("/api/v1/conversations/{id}/participants", protected(handlers.Message.AddParticipants))

	r.POST("/api/v1/attachments", protected(handlers.Attachment.Prepare))

	r.GET("/api/v1/changes", protected(handlers.Changes.GetChanges))

	return r
}
