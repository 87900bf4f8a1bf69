package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"counsellor/internal/auth"
	"counsellor/internal/config"
	"counsellor/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	universityHandler *handler.UniversityHandler,
	counsellorHandler *handler.CounsellorHandler,
	taskHandler *handler.TaskHandler,
	documentHandler *handler.DocumentHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return &auth.Claims{}
		},
	}))

	secured.GET("/auth/me", authHandler.Me)

	// Profile routes
	secured.GET("/profile/", profileHandler.Get)
	secured.PUT("/profile/", profileHandler.Update)
	secured.POST("/profile/onboarding/complete", profileHandler.CompleteOnboarding)
	secured.GET("/profile/dashboard", profileHandler.Dashboard)

	// University and shortlist routes
	secured.GET("/universities/", universityHandler.List)
	secured.GET("/universities/recommendations", universityHandler.Recommendations)
	secured.GET("/universities/shortlist", universityHandler.Shortlist)
	secured.POST("/universities/shortlist", universityHandler.AddToShortlist)
	secured.DELETE("/universities/shortlist/:university_id", universityHandler.RemoveFromShortlist)
	secured.PUT("/universities/shortlist/:university_id/status", universityHandler.UpdateApplicationStatus)
	secured.POST("/universities/lock", universityHandler.Lock)
	secured.POST("/universities/unlock", universityHandler.Unlock)

	// Counsellor routes
	secured.POST("/counsellor/chat", counsellorHandler.Chat)
	secured.POST("/counsellor/voice-onboarding", counsellorHandler.VoiceOnboarding)
	secured.GET("/counsellor/history", counsellorHandler.History)
	secured.DELETE("/counsellor/history", counsellorHandler.ClearHistory)

	// Task routes
	secured.GET("/tasks/", taskHandler.List)
	secured.POST("/tasks/", taskHandler.Create)
	secured.PUT("/tasks/:task_id", taskHandler.Update)
	secured.POST("/tasks/:task_id/complete", taskHandler.Complete)

	// Document routes
	secured.GET("/documents/", documentHandler.List)
	secured.POST("/documents/upload", documentHandler.Upload)
	secured.DELETE("/documents/:document_id", documentHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
