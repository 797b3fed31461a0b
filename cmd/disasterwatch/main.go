package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"disasterwatch/internal/accumulator"
	"disasterwatch/internal/config"
	"disasterwatch/internal/domain"
	"disasterwatch/internal/predicthq"
	"disasterwatch/internal/ui/views"
)

func main() {
	var configPath, envPath, query string
	var showLabels bool
	flag.StringVar(&configPath, "config", "", "Path to config file (default: user config dir)")
	flag.StringVar(&envPath, "env", ".env", "Path to a .env file with PREDICTHQ_TOKEN")
	flag.StringVar(&query, "q", "", "Location to search for")
	flag.BoolVar(&showLabels, "labels", true, "Print event labels")
	flag.Parse()

	if query == "" && flag.NArg() > 0 {
		query = strings.Join(flag.Args(), " ")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		fmt.Fprintln(os.Stderr, "usage: disasterwatch [-config file] [-q] <location>")
		os.Exit(2)
	}

	log.SetOutput(os.Stderr)
	log.SetPrefix("disasterwatch: ")

	if err := config.LoadDotEnv(envPath); err != nil {
		log.Printf("Ignoring env file: %v", err)
	}

	cfg, err := config.NewConfigServiceWithBus(nil, configPath).Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := predicthq.NewClient(cfg.BaseURL, cfg.Token, cfg.Timeout.Duration)
	acc := accumulator.New(client, nil)

	searchErr := acc.StartSearch(ctx, query)
	snap := acc.Snapshot()

	renderer := views.NewEventRenderer(views.NewStyles(), showLabels && cfg.UISettings.ShowLabels, cfg.UISettings.ShowLocation)
	printEvents(os.Stdout, renderer, snap.Collected)

	if errors.Is(searchErr, context.Canceled) {
		log.Printf("Search cancelled after %d events", snap.Len())
		os.Exit(1)
	}
	if searchErr != nil {
		log.Printf("Search stopped after %d events: %v", snap.Len(), searchErr)
		if snap.HasMore() {
			log.Printf("Next page was %s", snap.Continuation)
		}
		os.Exit(1)
	}
}

// printEvents writes each event card as plain text, separated by blank lines
func printEvents(w io.Writer, r *views.EventRenderer, events []domain.Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events found.")
		return
	}
	for i, ev := range events {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, strings.Join(r.CardLines(ev), "\n"))
	}
	fmt.Fprintf(w, "\n%d events\n", len(events))
}
