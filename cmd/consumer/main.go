package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Guizzs26/ballot_register/internal/api"
	"github.com/Guizzs26/ballot_register/internal/ballot"
	"github.com/Guizzs26/ballot_register/internal/config"
	"github.com/Guizzs26/ballot_register/internal/event"
	"github.com/Guizzs26/ballot_register/internal/metrics"
	"github.com/Guizzs26/ballot_register/internal/processing"
	"github.com/Guizzs26/ballot_register/internal/pubsub"
	"github.com/Guizzs26/ballot_register/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	log.Printf("Starting Consumer of topic '%s' in group '%s'...\n", cfg.KafkaTopic, cfg.KafkaGroupID)

	mainCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer, err := event.NewKafkaConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID)
	if err != nil {
		log.Fatalf("Error creating Kafka consumer: %v", err)
	}
	defer consumer.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewProcessorMetrics(registry, cfg.MetricsNamespace, cfg.MetricsSubsystem)

	hub := pubsub.NewHub()
	go hub.Run(mainCtx)

	sinks := []processing.StandingsSink{hub}
	if cfg.RedisURL != "" {
		rs, err := store.NewRedisStore(mainCtx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("Error creating Redis store: %v", err)
		}
		defer rs.Close()
		sinks = append(sinks, rs)
	}

	processor := processing.NewVoteProcessor(ballot.New(), consumer, m,
		processing.WithSinks(sinks...),
		processing.WithAuthorizer(processing.AllowList(cfg.AllowedVoters...)),
		processing.WithReportInterval(cfg.ReportInterval),
	)
	for _, name := range cfg.Candidates {
		if err := processor.RegisterCandidate(mainCtx, name); err != nil {
			log.Fatalf("Error seeding candidate %q: %v", name, err)
		}
	}

	router := api.NewRouter(processor)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	router.GET("/ws/standings", gin.WrapF(hub.ServeWS))

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	go func() {
		log.Printf("HTTP API listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Error serving HTTP: %v", err)
			cancel()
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	processorDone := make(chan struct{})
	go func() {
		defer close(processorDone)
		if err := processor.Run(mainCtx); err != nil {
			log.Printf("Error during processor execution: %v", err)
		}
	}()

	// The `main` blocks here, waiting for a shutdown signal
	select {
	case <-signalChan:
		log.Println("Shutdown signal received, stopping the consumer...")
	case <-mainCtx.Done():
	}
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}

	// the Kafka reader and Redis client are closed by the defers above
	<-processorDone

	log.Println("Consumer terminated")
}
