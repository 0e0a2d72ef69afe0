package api

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	apiContext "invitr/internal/api/context"
	"invitr/internal/api/handlers"
	"invitr/internal/api/middleware"
)

type Dependencies struct {
	AuthHandler      *handlers.AuthHandler
	ProfileHandler   *handlers.ProfileHandler
	MediaHandler     *handlers.MediaHandler
	GreetingHandler  *handlers.GreetingHandler
	PublicHandler    *handlers.PublicHandler
	AnalyticsHandler *handlers.AnalyticsHandler
	AuditHandler     *handlers.AuditHandler
	HealthHandler    *handlers.HealthHandler
	AuthMiddleware   *middleware.AuthMiddleware
	RateLimiter      *middleware.RateLimiter
}

func NewRouter(deps *Dependencies) *httprouter.Router {
	router := httprouter.New()

	// Public invitation endpoints, no auth
	router.GET("/api/invite/:slug", wrap(deps.PublicHandler.Resolve))
	router.POST("/api/invite/:slug/greetings",
		chain(deps.PublicHandler.SubmitGreeting, deps.RateLimiter.Handle))

	// Authentication
	router.POST("/api/auth/login", wrap(deps.AuthHandler.Login))
	router.GET("/api/auth/me", chain(deps.AuthHandler.Me, deps.AuthMiddleware.Handle))

	authMid := deps.AuthMiddleware

	// Profile management
	router.POST("/api/admin/profiles", chain(deps.ProfileHandler.Create, authMid.Handle))
	router.GET("/api/admin/profiles", chain(deps.ProfileHandler.List, authMid.Handle))
	router.GET("/api/admin/profiles/:profile_id", chain(deps.ProfileHandler.Get, authMid.Handle))
	router.PUT("/api/admin/profiles/:profile_id", chain(deps.ProfileHandler.Update, authMid.Handle))
	router.DELETE("/api/admin/profiles/:profile_id", chain(deps.ProfileHandler.Delete, authMid.Handle))
	router.GET("/api/admin/profiles/:profile_id/qr", chain(deps.ProfileHandler.GetQRCode, authMid.Handle))

	// Media management
	router.POST("/api/admin/profiles/:profile_id/media", chain(deps.MediaHandler.Add, authMid.Handle))
	router.GET("/api/admin/profiles/:profile_id/media", chain(deps.MediaHandler.List, authMid.Handle))
	router.DELETE("/api/admin/media/:media_id", chain(deps.MediaHandler.Delete, authMid.Handle))

	// Greetings (admin view)
	router.GET("/api/admin/profiles/:profile_id/greetings", chain(deps.GreetingHandler.List, authMid.Handle))

	// View analytics
	router.GET("/api/admin/profiles/:profile_id/views", chain(deps.AnalyticsHandler.GetProfileViews, authMid.Handle))

	// Audit trail
	router.GET("/api/admin/audit", chain(deps.AuditHandler.List, authMid.Handle))

	// Health
	router.GET("/api/health", wrap(deps.HealthHandler.Check))

	return router
}

// Helper function to chain middlewares
func chain(handler http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) httprouter.Handle {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return wrap(handler)
}

// Convert http.HandlerFunc to httprouter.Handle
func wrap(handler http.HandlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		// Inject params into context
		ctx := context.WithValue(r.Context(), apiContext.Params, ps)
		handler(w, r.WithContext(ctx))
	}
}
