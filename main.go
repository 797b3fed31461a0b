package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"disasterwatch/internal/accumulator"
	"disasterwatch/internal/config"
	"disasterwatch/internal/eventbus"
	"disasterwatch/internal/predicthq"
	"disasterwatch/internal/ui"
)

func main() {
	var configPath, envPath string
	flag.StringVar(&configPath, "config", "", "Path to config file (default: user config dir)")
	flag.StringVar(&envPath, "env", ".env", "Path to a .env file with PREDICTHQ_TOKEN")
	flag.Parse()

	// Set up logging
	logFile, err := os.OpenFile("disasterwatch.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	if err := config.LoadDotEnv(envPath); err != nil {
		log.Printf("Ignoring env file: %v", err)
	}

	bus := eventbus.New()
	defer bus.Close()

	configSvc := config.NewConfigServiceWithBus(bus, configPath)
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		cfg = config.DefaultConfig()
		if envErr := config.ApplyEnv(cfg); envErr != nil {
			log.Printf("Error reading environment: %v", envErr)
		}
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	client := predicthq.NewClient(cfg.BaseURL, cfg.Token, cfg.Timeout.Duration)
	acc := accumulator.New(client, bus)

	log.Printf("Creating UI model...")
	model := ui.NewModel(cfg, acc)
	p := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(p)

	// Forward search events to the UI without blocking the bus
	eventChan := make(chan eventbus.DomainEvent, 100)
	forwardEvent := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventSearchStarted,
		eventbus.EventPageLoaded,
		eventbus.EventSearchCompleted,
		eventbus.EventSearchFailed,
		eventbus.EventConfigSaved,
	} {
		bus.Subscribe(t, forwardEvent)
	}

	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		model.Shutdown()
		p.Quit()
	}()

	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")

	model.Shutdown()
}
