// File: gemtrade/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gemtrade/config"
	"gemtrade/database"
	profileRepoPkg "gemtrade/database/repository/profile"
	"gemtrade/handlers"
	"gemtrade/middleware"
	"gemtrade/routes"
	"gemtrade/services/identity"
	"gemtrade/services/registration"
	"gemtrade/services/session"
	"gemtrade/services/storage"
	"gemtrade/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func newDocumentStore() (storage.DocumentStore, error) {
	cfg := config.AppConfig
	if cfg.DocumentStoreBackend == "gcs" {
		return storage.NewGCSStore(cfg.FirebaseCredentialsFile, cfg.DocumentBucket)
	}
	return storage.NewCloudinaryStore(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
		cfg.DocumentBucket,
	)
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	mongoClient := database.Connect()
	utils.InitCache()
	utils.InitCodesCache()

	ctx := context.Background()
	identityProvider, err := identity.NewFirebaseProvider(
		ctx,
		config.AppConfig.FirebaseCredentialsFile,
		config.AppConfig.FirebaseWebAPIKey,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize identity provider: %v", err)
	}

	documentStore, err := newDocumentStore()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize document store: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	profileRepo := profileRepoPkg.NewMongoProfileRepo(mongoClient.Database(config.AppConfig.DatabaseName))

	// services.
	registrationService := &registration.DefaultRegistrationService{
		Identity:  identityProvider,
		Documents: documentStore,
		Profiles:  profileRepo,
		Groups: registration.Groups{
			Buyer:  config.AppConfig.BuyerGroup,
			Seller: config.AppConfig.SellerGroup,
		},
	}

	revoker := session.NewRedisTokenRevoker(utils.GetCacheClient())
	sessionService := &session.DefaultSessionService{
		Identity:     identityProvider,
		Registration: registrationService,
		Profiles:     profileRepo,
		Codes:        session.NewRedisCodeStore(utils.GetCodesCacheClient()),
		Revoker:      revoker,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Registration: handlers.NewRegistrationHandler(registrationService),
		Session:      handlers.NewSessionHandler(sessionService),
		Revoker:      revoker,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(
		map[string]*redis.Client{
			"cache": utils.GetCacheClient(),
			"codes": utils.GetCodesCacheClient(),
		},
		mongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
