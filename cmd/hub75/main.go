package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/fkcurrie/hub75-golang/internal/config"
	"github.com/fkcurrie/hub75-golang/internal/display"
	"github.com/fkcurrie/hub75-golang/pkg/gpio"
	"github.com/fkcurrie/hub75-golang/pkg/hub75"
)

func main() {
	configPath := flag.String("config", "config.json", "path to config file")
	text := flag.String("text", "", "text to scroll across the display")
	svg := flag.String("svg", "", "SVG file to show")
	pattern := flag.String("pattern", "", "test pattern: cycle, solid, checkerboard, ramp or off")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config from %s: %v", *configPath, err)
	}
	if *text != "" {
		cfg.Render.Text = *text
	}
	if *svg != "" {
		cfg.Render.SVG = *svg
	}
	if *pattern != "" {
		cfg.Render.Pattern = *pattern
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("HUB75 program failed: %v", err)
	}
	log.Println("HUB75 program stopped")
}

// run drives the panel until SIGINT or SIGTERM. The GPIO lines are
// released before it returns.
func run(cfg *config.Config) error {
	dc, err := cfg.DriverConfig()
	if err != nil {
		return fmt.Errorf("invalid display configuration: %w", err)
	}

	bank, err := gpio.Open(cfg.Chip, cfg.Pins, dc.Panel)
	if err != nil {
		return fmt.Errorf("failed to open GPIO lines: %w", err)
	}
	defer bank.Close()

	driver, err := hub75.NewDriver(bank.Pins(), dc)
	if err != nil {
		return fmt.Errorf("failed to create driver: %w", err)
	}
	log.Printf("Driving %s panel with %d sub-frames per refresh", dc.Panel, driver.BrightnessCount())

	content, err := newContent(cfg, driver)
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("Updating content every %v", cfg.UpdateInterval())
	renderer := display.NewRenderer(driver, content, &cfg.Render)
	err = renderer.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Println("Received shutdown signal")
		err = nil
	}

	if berr := renderer.Blank(); berr != nil {
		log.Printf("Failed to blank panel: %v", berr)
	}
	return err
}

// newContent picks what to show: text first, then an SVG, then a pattern
func newContent(cfg *config.Config, driver *hub75.Driver) (display.Content, error) {
	c, err := display.ParseColor(cfg.Render.Color)
	if err != nil {
		return nil, err
	}

	switch {
	case cfg.Render.Text != "":
		log.Printf("Scrolling text: %s", cfg.Render.Text)
		return display.NewTextScroller(cfg.Render.Text, c), nil
	case cfg.Render.SVG != "":
		w, h := driver.Size()
		img, err := display.LoadSVGFile(cfg.Render.SVG, int(w), int(h))
		if err != nil {
			return nil, err
		}
		log.Printf("Showing %s", cfg.Render.SVG)
		return display.Picture{Image: img}, nil
	}
	log.Printf("Showing %s pattern", cfg.Render.Pattern)
	return display.ParsePattern(cfg.Render.Pattern, c)
}
