package main

import (
	"log"

	"quicknotes/config"
	"quicknotes/handler"
	"quicknotes/middleware"
	"quicknotes/services"
	"quicknotes/usecase"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
)

type application struct {
	mongoClient *mongo.Client
	users       *usecase.UserService
	notes       *usecase.NotesService
	closers     []func() error
}

func (a *application) Close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			log.Printf("Warning: close failed: %v", err)
		}
	}
}

func sessionCodec(cfg config.SessionConfig) services.SessionCodec {
	if cfg.SigningKey == "" {
		return services.PlainCodec{}
	}
	return services.NewJWTCodec(cfg.SigningKey, cfg.MaxAge)
}

func setupRouter(cfg config.AppConfig, app *application) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.EnhancedRecoveryMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigin))
	router.Use(middleware.SecurityHeaders())

	sessions := services.NewSessionStore(
		cfg.Session.CookieName,
		cfg.Session.MaxAge,
		cfg.Session.Secure,
		sessionCodec(cfg.Session),
		app.users,
	)

	authHandler := handler.NewAuthHandler(sessions, cfg.IsDevelopment())
	notesHandler := handler.NewNoteHandler(app.notes, cfg.IsDevelopment())
	healthHandler := handler.NewHealthHandler(app.mongoClient)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.Use(middleware.NoStoreMiddleware())
	api.Use(middleware.RequestSizeLimiter(cfg.MaxBodyBytes))
	api.Use(middleware.SessionMiddleware(sessions))
	{
		api.GET("/health", healthHandler.GetHealth)

		auth := api.Group("/auth")
		{
			auth.POST("", authHandler.Login)
			auth.GET("", authHandler.Current)
			auth.DELETE("", authHandler.Logout)
		}

		notes := api.Group("/notes")
		notes.Use(middleware.RequireSession())
		{
			notes.GET("", notesHandler.SearchNotes)
			notes.POST("", notesHandler.CreateNote)
			notes.PATCH("", notesHandler.UpdateNote)
			notes.DELETE("", notesHandler.DeleteNote)
		}
	}

	return router
}
