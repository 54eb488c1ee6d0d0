package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quicknotes/config"
	"quicknotes/repository"
	"quicknotes/services"
	"quicknotes/usecase"
	"quicknotes/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

func init() {
	config.LoadEnvFile()
	utils.InitValidator()
}

func main() {
	cfg := config.Load()
	cfg.LogSummary()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	client, err := utils.ConnectMongo(ctx, cfg.Database.ClientOptions())
	cancel()
	if err != nil {
		log.Fatalf("Failed to initialize MongoDB: %v", err)
	}
	app, err := buildApplication(cfg, client)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.Close()

	router := setupRouter(cfg, app)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	sig := <-signalChan
	log.Printf("Caught signal %s, shutting down", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Printf("MongoDB disconnect error: %v", err)
	}
	log.Println("Server shutdown complete")
}

// buildApplication wires repositories, the optional Redis cache and services.
func buildApplication(cfg config.AppConfig, client *mongo.Client) (*application, error) {
	db := client.Database(cfg.Database.DatabaseName)
	usersRepo := repository.GetUsersRepo(db, cfg.Database.UsersCollection)
	notesRepo := repository.GetNotesRepo(db, cfg.Database.NotesCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repository.SetupIndexes(ctx, usersRepo.MongoCollection, notesRepo.MongoCollection); err != nil {
		return nil, err
	}

	app := &application{mongoClient: client}

	var cache usecase.UserCache
	if cfg.Redis.URL != "" {
		redisCache, err := services.NewRedisUserCache(cfg.Redis.URL, cfg.Redis.CacheTTL)
		if err != nil {
			// The cache is an optimization; run without it.
			log.Printf("Warning: user cache disabled: %v", err)
		} else {
			cache = redisCache
			app.closers = append(app.closers, redisCache.Close)
		}
	}

	app.users = usecase.NewUserService(usersRepo, cache)
	app.notes = usecase.NewNotesService(notesRepo)
	return app, nil
}
