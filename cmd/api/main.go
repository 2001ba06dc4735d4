package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Muskan6505/Local-helpHub/internal/chat"
	"github.com/Muskan6505/Local-helpHub/internal/config"
	"github.com/Muskan6505/Local-helpHub/internal/database"
	"github.com/Muskan6505/Local-helpHub/internal/http/handlers"
	"github.com/Muskan6505/Local-helpHub/internal/http/middleware"
	"github.com/Muskan6505/Local-helpHub/internal/logger"
	"github.com/Muskan6505/Local-helpHub/internal/storage"
	"github.com/Muskan6505/Local-helpHub/internal/tags"
	"github.com/Muskan6505/Local-helpHub/internal/tokens"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Environment)

	if cfg.DBDSN == "" || cfg.JWTSecret == "" {
		log.Fatal("DB_DSN and JWT_SECRET must be set")
	}

	db, err := database.Connect(cfg.DBDSN, cfg.Environment)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}

	rdb, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal("failed to connect to redis", "error", err)
	}
	defer rdb.Close()

	store, err := storage.NewDiskStore(cfg.UploadDir, "/uploads")
	if err != nil {
		log.Fatal("failed to init object store", "error", err)
	}

	tm := tokens.NewManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, rdb)
	tagGen := tags.NewGenerator(cfg.GeminiAPIKey, cfg.GeminiModel, log)
	hub := chat.NewHub(chat.NewStore(db), log)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.CORSOrigin))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "helphub-api"})
	})
	r.Static("/uploads", cfg.UploadDir)

	secure := cfg.Environment == "production"
	authH := &handlers.AuthHandler{
		DB: db, Tokens: tm, Log: log,
		AccessTTL: cfg.AccessTokenTTL, RefreshTTL: cfg.RefreshTokenTTL,
		Secure: secure,
	}
	userH := &handlers.UserHandler{DB: db, Store: store, Log: log}
	requestH := &handlers.RequestHandler{DB: db, Tags: tagGen, Log: log}
	responseH := &handlers.ResponseHandler{DB: db, Log: log}
	messageH := &handlers.MessageHandler{DB: db, Store: store, Log: log}
	wsH := &handlers.WSHandler{
		Hub: hub, Tokens: tm, Log: log,
		InsecureSkipVerify: cfg.WSInsecureSkipVerify,
	}

	r.POST("/api/v1/users/register", authH.Register)
	r.POST("/api/v1/users/login", authH.Login)
	r.POST("/api/v1/users/refresh", authH.Refresh)

	r.GET("/ws", wsH.Handle)

	authed := r.Group("/api/v1")
	authed.Use(middleware.Auth(tm))
	{
		users := authed.Group("/users")
		users.POST("/logout", authH.Logout)
		users.PATCH("/password/change", authH.ChangePassword)
		users.GET("", userH.Me)
		users.GET("/:userId", userH.Get)
		users.PATCH("/update", userH.Update)
		users.DELETE("/delete", userH.Delete)
		users.PATCH("/avatar/update", userH.UpdateAvatar)
		users.DELETE("/avatar/delete", userH.DeleteAvatar)

		requests := authed.Group("/help-requests")
		requests.POST("", requestH.Create)
		requests.GET("", requestH.List)
		requests.GET("/:id", requestH.Get)
		requests.PUT("/:id", requestH.Update)
		requests.DELETE("/:id", requestH.Delete)

		responses := authed.Group("/responses")
		responses.POST("/new", responseH.Create)
		responses.GET("", responseH.ListMine)
		responses.GET("/:helpRequest", responseH.ListByRequest)
		responses.PATCH("/:responseId", responseH.UpdateStatus)

		messages := authed.Group("/messages")
		messages.POST("/attachment", messageH.UploadAttachment)
		messages.GET("/request/:requestId", messageH.History)
		messages.GET("/unread/count", messageH.UnreadCount)
		messages.DELETE("/:id", messageH.Delete)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("starting helphub api", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("forced shutdown", "error", err)
	}

	log.Info("server exited")
}
