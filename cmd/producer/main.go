package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Guizzs26/ballot_register/internal/config"
	"github.com/Guizzs26/ballot_register/internal/event"
	"github.com/Guizzs26/ballot_register/internal/simulation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	kp, err := event.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		log.Fatalf("failed to create kafka publisher: %v", err)
	}
	defer kp.Close()

	sim, err := simulation.New(kp, cfg.Candidates, cfg.SimulationVoters, cfg.SimulationInterval)
	if err != nil {
		log.Fatalf("failed to create simulator: %v", err)
	}

	mainCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := sim.Run(mainCtx); err != nil {
			log.Printf("Error while running simulator: %v", err)
		}
	}()

	// `main` now hangs here, waiting for a shutdown signal
	log.Println("Producer is running. Press Ctrl+C to exit")
	<-signalChan

	// Upon receiving the signal, we cancel the context, which will cause sim.Run() to stop
	log.Println("Shutdown signal received, stopping the producer...")
	cancel()

	log.Println("Producer terminated")
}
