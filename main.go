package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newsdesk/api"
	"newsdesk/config"
	"newsdesk/events"
	"newsdesk/newsapi"
	"newsdesk/reader"
	"newsdesk/rssfeeds"
	"newsdesk/storage"
	"newsdesk/store"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	port := flag.String("port", cfg.Port, "HTTP API port")
	source := flag.String("source", cfg.API.Source, "Article source: generator or rss")
	flag.Parse()
	cfg.Port = *port
	cfg.API.Source = *source

	gin.SetMode(gin.ReleaseMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer backend.Close()

	src, err := newSource(ctx, cfg.API)
	if err != nil {
		log.Fatalf("❌ Failed to set up article source: %v", err)
	}

	st := store.New(backend)
	service := newsapi.NewService(src, newsapi.ParamsFromConfig(cfg.Fetch))
	ctl := reader.New(st, service, reader.OptionsFromConfig(cfg.Fetch))

	if err := ctl.Start(ctx); err != nil {
		log.Fatalf("❌ Failed to start reader: %v", err)
	}

	consumer := startConsumer(ctx, cfg.Kafka, ctl)

	server := api.NewServer(cfg.Port, ctl)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	fmt.Printf("📰 Newsdesk\n")
	fmt.Printf("   API:       http://0.0.0.0:%s/api\n", cfg.Port)
	fmt.Printf("   Source:    %s\n", cfg.API.Source)
	fmt.Printf("   Storage:   %s\n", cfg.Storage.Backend)
	fmt.Printf("   Refresh:   %s\n", cfg.Fetch.RefreshSchedule)
	fmt.Println("\nPress Ctrl+C to shutdown")

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\nShutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("Shutdown error: %v\n", err)
	}
	ctl.Stop()
	cancel()

	if consumer != nil {
		if err := consumer.Close(); err != nil {
			fmt.Printf("Kafka consumer close error: %v\n", err)
		}
	}

	fmt.Println("Server stopped")
}

// newSource picks the generator API or the RSS feeds
func newSource(ctx context.Context, cfg config.APIConfig) (newsapi.Source, error) {
	switch cfg.Source {
	case config.SourceGenerator, "":
		log.Printf("✅ Using generator API at %s", cfg.URL)
		return newsapi.NewGeneratorClient(cfg.URL, cfg.Key, cfg.Timeout), nil
	case config.SourceRSS:
		if cfg.FeedsFile == "" {
			log.Println("✅ Using built-in RSS feed presets")
			return rssfeeds.NewFeedSource(nil, cfg.Extract, cfg.Timeout), nil
		}

		presets, err := rssfeeds.LoadPresets(cfg.FeedsFile)
		if err != nil {
			return nil, err
		}
		src := rssfeeds.NewFeedSource(presets, cfg.Extract, cfg.Timeout)
		if err := rssfeeds.WatchPresets(ctx, cfg.FeedsFile, src); err != nil {
			log.Printf("⚠️ Feed presets will not hot-reload: %v", err)
		}
		log.Printf("✅ Using RSS feed presets from %s", cfg.FeedsFile)
		return src, nil
	default:
		return nil, fmt.Errorf("unknown news source %q", cfg.Source)
	}
}

// startConsumer listens for refresh requests when Kafka is configured
func startConsumer(ctx context.Context, cfg config.KafkaConfig, ctl *reader.Controller) *events.Consumer {
	if len(cfg.Brokers) == 0 {
		return nil
	}

	consumer, err := events.NewConsumer(events.ConsumerConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
		GroupID: cfg.GroupID,
		Handler: events.NewRefreshHandler(ctl),
	})
	if err != nil {
		log.Printf("⚠️ Failed to create Kafka consumer: %v", err)
		return nil
	}

	go func() {
		if err := consumer.Start(ctx); err != nil {
			log.Printf("⚠️ Kafka consumer stopped before joining the group: %v", err)
		}
	}()
	return consumer
}
