// File: hospitalpanel/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospitalpanel/config"
	"hospitalpanel/database"
	billrecordRepo "hospitalpanel/database/repository/billrecord"
	"hospitalpanel/handlers"
	"hospitalpanel/middleware"
	"hospitalpanel/routes"
	"hospitalpanel/services/archive"
	"hospitalpanel/services/bill"
	"hospitalpanel/services/session"
	"hospitalpanel/services/storage"
	"hospitalpanel/upstream"
	"hospitalpanel/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	var imageStore storage.BillImageStore
	if config.AppConfig.ArchiveImages {
		store, err := utils.Cloudinary()
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize bill image archive: %v", err)
		}
		imageStore = store
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Upstream client and repositories.
	api := upstream.NewClient(config.AppConfig.UpstreamBaseURL)
	recordsRepo := billrecordRepo.NewMongoBillRecordRepo()

	// Services.
	codec := session.CookieCodec{Secure: config.IsProduction()}
	sessionManager := &session.Manager{
		API:      api,
		Attempts: &session.RedisAttemptStore{Client: utils.GetAttemptCacheClient()},
	}

	archiveEnqueuer := archive.NewEnqueuer()
	defer archiveEnqueuer.Close()
	archive.InitArchiveWorker(recordsRepo, imageStore)

	billEngine := &bill.Engine{
		Store:    &bill.RedisDraftStore{Client: utils.GetDraftCacheClient()},
		API:      api,
		Renderer: bill.PNGRenderer{},
		Archiver: archiveEnqueuer,
	}

	sessionHandler := handlers.NewSessionHandler(sessionManager, codec)
	billHandler := handlers.NewBillHandler(billEngine, api)
	accountsHandler := handlers.NewAccountsHandler(recordsRepo, api)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Codec: codec,

		// Session endpoints.
		RequestOTPHandler: sessionHandler.RequestOTPHandler,
		ResendOTPHandler:  sessionHandler.ResendOTPHandler,
		VerifyOTPHandler:  sessionHandler.VerifyOTPHandler,
		LogoutHandler:     sessionHandler.LogoutHandler,
		MeHandler:         sessionHandler.MeHandler,

		// Bill workflow endpoints.
		CreateBillHandler:     billHandler.CreateBillHandler,
		GetBillHandler:        billHandler.GetBillHandler,
		AddLineItemHandler:    billHandler.AddLineItemHandler,
		UpdateLineItemHandler: billHandler.UpdateLineItemHandler,
		RemoveLineItemHandler: billHandler.RemoveLineItemHandler,
		ConfirmBillHandler:    billHandler.ConfirmBillHandler,
		EditBillHandler:       billHandler.EditBillHandler,
		UploadBillHandler:     billHandler.UploadBillHandler,

		// Accounts endpoints.
		GetPatientDetailsHandler: accountsHandler.GetPatientDetailsHandler,
		ListBillRecordsHandler:   accountsHandler.ListBillRecordsHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
