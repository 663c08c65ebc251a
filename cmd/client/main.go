package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/coder/websocket"

	"github.com/Guizzs26/ballot_register/internal/config"
	"github.com/Guizzs26/ballot_register/internal/model"
	"github.com/Guizzs26/ballot_register/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	url := cfg.StandingsURL
	if len(os.Args) > 1 {
		url = os.Args[1]
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-signalChan
		log.Println("Shutting 'client' down...")
		cancel()
	}()

	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "client exit")

	log.Printf("Listening for standings on %s...", url)
	for {
		_, msg, err := conn.Read(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Println("Connection closed")
				return
			}
			log.Printf("Read error: %v", err)
			return
		}

		var s model.Standings
		if err := json.Unmarshal(msg, &s); err != nil {
			log.Printf("Malformed standings: %v", err)
			continue
		}
		log.Printf("Updated standings at %s:", s.UpdatedAt.Format("15:04:05"))
		report.PrintStandings(os.Stdout, s)
	}
}
