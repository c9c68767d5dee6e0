package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do"
	"github.com/serroba/short-links/internal/container"
	"github.com/serroba/short-links/internal/diagnostics"
	"github.com/serroba/short-links/internal/messaging"
	"go.uber.org/zap"
)

func main() {
	opts := &container.Options{
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		LogFormat:           getEnv("LOG_FORMAT", "console"),
		DiagnosticsEndpoint: getEnv("DIAGNOSTICS_ENDPOINT", diagnostics.DefaultEndpoint),
	}

	injector := do.New()
	do.ProvideValue(injector, opts)
	container.LoggerPackage(injector)
	container.RedisPackage(injector)
	container.ForwarderPackage(injector)

	logger := do.MustInvoke[*zap.Logger](injector)
	group, err := do.Invoke[*messaging.ConsumerGroup](injector)
	if err != nil {
		logger.Fatal("failed to build forwarder", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())

	if err := group.Start(ctx); err != nil {
		logger.Fatal("failed to start forwarder", zap.Error(err))
	}

	logger.Info("forwarding diagnostic events",
		zap.String("topic", diagnostics.TopicLogged),
		zap.String("endpoint", opts.DiagnosticsEndpoint),
	)

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")
	cancel()

	if err := injector.Shutdown(); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}

	logger.Info("shutdown complete")
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return defaultValue
}
