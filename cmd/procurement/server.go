package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ekovaleva/procurement-assist/internal/ai"
	"github.com/ekovaleva/procurement-assist/internal/commodity"
	"github.com/ekovaleva/procurement-assist/internal/extraction"
	"github.com/ekovaleva/procurement-assist/internal/logger"
	"github.com/ekovaleva/procurement-assist/internal/metrics"
	"github.com/ekovaleva/procurement-assist/internal/request"
	"github.com/ekovaleva/procurement-assist/internal/router"
	storage "github.com/ekovaleva/procurement-assist/internal/storage/postgres"
	"github.com/ekovaleva/procurement-assist/internal/suggest"
	"github.com/ekovaleva/procurement-assist/internal/user"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := run(); err != nil {
		panic(err)
	}
}

func run() error {
	cfg, err := NewConfig()
	if err != nil {
		log.Fatal(err)
	}
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := storage.NewPostgresStorage(cfg.DatabaseConnection)
	if err != nil {
		log.Fatalf("Failed to initialize Postgres storage: %v", err)
	}
	if err := store.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Warning: failed to close storage: %v", err)
		}
	}()

	cache, err := extraction.NewRedisCache(cfg.RedisURL, cfg.CacheTTL)
	if err != nil {
		log.Fatalf("Failed to connect extraction cache: %v", err)
	}
	if cache != nil {
		defer cache.Close()
	}

	catalog := commodity.NewCatalog()
	m := metrics.New(prometheus.DefaultRegisterer)

	aiClient := &http.Client{Timeout: cfg.AITimeout}
	chat := &ai.ChatClient{
		Client:  aiClient,
		BaseURL: cfg.OpenAIBaseURL,
		APIKey:  cfg.OpenAIKey,
		Model:   cfg.OpenAIModel,
	}
	ocr := &ai.OCRClient{
		Client:  aiClient,
		BaseURL: cfg.MistralBaseURL,
		APIKey:  cfg.MistralKey,
		Model:   cfg.MistralOCRModel,
	}

	userSvc := user.NewService(store, []byte(cfg.JWTSecret), cfg.JWTTTL)
	userHandler := user.NewHandler(userSvc)

	requestSvc := request.NewService(store, catalog, m)
	requestHandler := request.NewHandler(requestSvc)

	commodityHandler := commodity.NewHandler(catalog)

	var extractionCache extraction.Cache
	if cache != nil {
		extractionCache = cache
	}
	extractionSvc := extraction.NewService(chat, ocr, extractionCache, catalog, m)
	extractionHandler := extraction.NewHandler(extractionSvc)

	suggestSvc := suggest.NewService(chat, catalog, m)
	suggestHandler := suggest.NewHandler(suggestSvc)

	r := router.NewRouter(
		userHandler,
		requestHandler,
		commodityHandler,
		extractionHandler,
		suggestHandler,
		[]byte(cfg.JWTSecret),
		cfg.AuthEnabled,
		store,
	)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 2 * cfg.AITimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
	return nil
}
