package http

import (
	"net/http"

	"github.com/mindtrackhq/mindtrack-api/internal/http/handler"
	"github.com/mindtrackhq/mindtrack-api/internal/service"
)

// Services groups the application services the router exposes.
type Services struct {
	CheckIn *service.CheckInService
	Todo    *service.TodoService
	Journal *service.JournalService
	Auth    *service.AuthService
}

func NewRouter(svcs Services) http.Handler {
	mux := http.NewServeMux()

	// Health check - intentionally outside /api/v1 for ALB health check compatibility
	health := handler.NewHealthHandler()
	mux.Handle("/health", health)

	if svcs.Auth != nil {
		authHandler := handler.NewAuthHandler(svcs.Auth)
		mux.Handle("/api/v1/auth/", authHandler)
	}

	checkinHandler := handler.NewCheckInHandler(svcs.CheckIn)
	mux.Handle("/api/v1/checkins", checkinHandler)
	mux.Handle("/api/v1/checkins/", checkinHandler)

	todoHandler := handler.NewTodoHandler(svcs.Todo)
	mux.Handle("/api/v1/todos", todoHandler)
	mux.Handle("/api/v1/todos/", todoHandler)

	journalHandler := handler.NewJournalHandler(svcs.Journal)
	mux.Handle("/api/v1/journal", journalHandler)
	mux.Handle("/api/v1/journal/", journalHandler)

	return mux
}
