package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"kitabcloud/config"
	"kitabcloud/controllers"
	"kitabcloud/database"
	"kitabcloud/repository"
	"kitabcloud/routes"
	"kitabcloud/services"
	"kitabcloud/storage"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	app, err := NewApplication()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize application")
	}

	if err := app.Start(); err != nil {
		logrus.WithError(err).Fatal("Failed to start application")
	}
}

// Application wires configuration, the two storage systems and the HTTP
// surface together with an explicit init/teardown lifecycle.
type Application struct {
	config    *config.Config
	server    *http.Server
	dbManager *database.Manager
	objects   storage.ObjectStore
	router    *gin.Engine
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	cfg := config.LoadConfig()
	if err := cfg.ValidateConfig(); err != nil {
		return nil, err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.SetTrustedProxies([]string{"127.0.0.1", "::1"})
	router.Use(gin.Recovery())
	router.LoadHTMLGlob("templates/*")

	app := &Application{
		config:    cfg,
		dbManager: database.NewManager(cfg),
		router:    router,
		server: &http.Server{
			Addr:         cfg.GetServerAddress(),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	return app, nil
}

// Start initializes all components and starts the HTTP server
func (app *Application) Start() error {
	logrus.WithFields(logrus.Fields{
		"app":         app.config.AppName,
		"version":     app.config.AppVersion,
		"environment": app.config.Environment,
	}).Info("Starting server")

	ctx := context.Background()

	// A failed initial store connection aborts startup.
	if err := app.dbManager.Connect(ctx); err != nil {
		return err
	}
	if err := app.dbManager.CreateIndexes(ctx); err != nil {
		return err
	}

	s3Client, err := storage.NewS3Client(app.config)
	if err != nil {
		return err
	}
	app.objects = s3Client

	app.setupRoutes()

	go func() {
		logrus.WithField("addr", app.server.Addr).Info("Server listening")
		if err := app.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	app.waitForShutdown()
	return nil
}

// setupRoutes constructs the repository/service/controller graph and
// registers all routes
func (app *Application) setupRoutes() {
	folderRepo := repository.NewFolderRepository(app.dbManager.Collection(database.FoldersCollection))
	bookRepo := repository.NewBookRepository(app.dbManager.Collection(database.BooksCollection))
	adminRepo := repository.NewAdminRepository(app.dbManager.Collection(database.AdminsCollection))
	subAdminRepo := repository.NewAdminRepository(app.dbManager.Collection(database.SubAdminsCollection))

	folderService := services.NewFolderService(folderRepo, app.objects)
	bookService := services.NewBookService(bookRepo, app.objects, app.config.AppURL)
	adminService := services.NewAdminService(adminRepo, subAdminRepo)

	ctrl := &routes.Controllers{
		Admin:  controllers.NewAdminController(adminService),
		Folder: controllers.NewFolderController(folderService),
		Book:   controllers.NewBookController(bookService),
	}

	app.router.GET("/health", app.healthCheckHandler())
	app.router.GET("/version", app.versionHandler())

	routes.SetupRoutes(app.router, ctrl, app.config.CORSAllowedOrigins)
	logrus.Info("Routes configured")
}

// waitForShutdown waits for interrupt signal and gracefully shuts down
func (app *Application) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logrus.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}

	if err := app.dbManager.Close(ctx); err != nil {
		logrus.WithError(err).Error("Error closing database")
	}

	logrus.Info("Server shutdown complete")
}

// healthCheckHandler reports process and dependency health
func (app *Application) healthCheckHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"service":   app.config.AppName,
			"version":   app.config.AppVersion,
			"timestamp": time.Now().Unix(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := app.dbManager.Ping(ctx); err != nil {
			health["status"] = "degraded"
			health["database"] = "unhealthy"
		} else {
			health["database"] = "healthy"
		}

		if err := app.objects.HealthCheck(ctx); err != nil {
			health["status"] = "degraded"
			health["storage"] = "unhealthy"
		} else {
			health["storage"] = "healthy"
		}

		c.JSON(http.StatusOK, health)
	}
}

// versionHandler reports build information
func (app *Application) versionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        app.config.AppName,
			"version":     app.config.AppVersion,
			"environment": app.config.Environment,
		})
	}
}
