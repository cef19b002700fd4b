package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/fkcurrie/hub75-golang/internal/config"
	"github.com/fkcurrie/hub75-golang/pkg/gpio"
)

func main() {
	configPath := flag.String("config", "config.json", "path to config file")
	hold := flag.Duration("hold", time.Second, "how long each line stays high")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config from %s: %v", *configPath, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Println("Starting GPIO test...")
	if err := walk(ctx, cfg, *hold); err != nil {
		log.Fatalf("GPIO test failed: %v", err)
	}
}

// walk drives each line high then low so a probe or LED can follow it
func walk(ctx context.Context, cfg *config.Config, hold time.Duration) error {
	bank, err := gpio.Open(cfg.Chip, cfg.Pins, cfg.Panel())
	if err != nil {
		return fmt.Errorf("failed to open GPIO lines: %w", err)
	}
	defer bank.Close()

	for _, l := range bank.Lines() {
		if err := l.Set(true); err != nil {
			log.Printf("Failed to set %s (line %d) high: %v", l.Name(), l.Offset(), err)
			continue
		}
		log.Printf("Set %s (line %d) high", l.Name(), l.Offset())

		select {
		case <-ctx.Done():
			log.Println("Received shutdown signal")
			if err := l.Set(false); err != nil {
				log.Printf("Failed to set %s (line %d) low: %v", l.Name(), l.Offset(), err)
			}
			return nil
		case <-time.After(hold):
		}

		if err := l.Set(false); err != nil {
			log.Printf("Failed to set %s (line %d) low: %v", l.Name(), l.Offset(), err)
		}
	}
	log.Println("GPIO test completed")
	return nil
}
