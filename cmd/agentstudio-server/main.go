package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kazz187/agentstudio/internal/config"
	"github.com/kazz187/agentstudio/internal/llm"
	"github.com/kazz187/agentstudio/internal/preset"
	presetrepo "github.com/kazz187/agentstudio/internal/preset/repositoryimpl"
	"github.com/kazz187/agentstudio/internal/relay"
	"github.com/kazz187/agentstudio/pkg/clog"
	"github.com/kazz187/agentstudio/pkg/storage"

	server "github.com/kazz187/agentstudio/internal"
)

// echoAPIKey stands in for a credential when the offline provider is used.
const echoAPIKey = "echo"

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		slog.Error("failed to load env", "error", err)
		os.Exit(1)
	}

	// Setup logger
	level := env.SlogLevel()
	var handler slog.Handler
	if env.Env == "local" {
		handler = clog.NewHTTPTextHandler(os.Stderr, clog.WithLevel(level))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(clog.NewAttributesHandler(handler)))

	// Setup storage
	var store storage.Storage
	switch env.StorageEnv.Type {
	case "s3":
		store, err = storage.NewS3Storage(context.Background(), env.StorageEnv.S3Bucket, env.StorageEnv.S3Prefix, env.StorageEnv.S3Region)
		if err != nil {
			slog.Error("failed to create S3 storage", "error", err)
			os.Exit(1)
		}
	default:
		store, err = storage.NewLocalStorage(env.StorageEnv.BaseDir)
		if err != nil {
			slog.Error("failed to create local storage", "error", err)
			os.Exit(1)
		}
	}

	// Setup provider
	factory, err := llm.NewFactory(env.Provider)
	if err != nil {
		slog.Error("failed to select llm provider", "error", err)
		os.Exit(1)
	}
	apiKey := env.ResolveAPIKey(os.Getenv)
	if env.Provider == llm.ProviderEcho && apiKey == "" {
		apiKey = echoAPIKey
	}
	if apiKey == "" {
		slog.Warn("provider api key is not set; chat requests will fail until it is configured", "provider", env.Provider)
	}

	// Setup servers
	presetRepo := presetrepo.NewYAMLRepository(store, preset.Atlas)
	relayServer := relay.NewServer(relay.New(relay.Config{
		Provider:    env.Provider,
		APIKey:      apiKey,
		BaseURL:     env.BaseURL,
		Model:       env.Model,
		Temperature: env.Temperature,
		Timeout:     env.Timeout,
	}, factory))
	presetServer := preset.NewServer(presetRepo)

	srv := server.NewServer(env, relayServer, presetServer)

	// Graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	go func() {
		if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
