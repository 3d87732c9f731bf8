package main

import (
	"flag"

	"github.com/nicolagi/taskflow"
	"github.com/nicolagi/taskflow/internal/config"
	log "github.com/sirupsen/logrus"
)

var client taskflow.API

func main() {
	configPath := flag.String("config", "", "config file (default ~/lib/taskflow/config.toml)")
	flag.Parse()

	client = mustCreateClient(*configPath)

	// Create initial window with the progress overview.
	newListWindow(modeDashboard)

	// The program will be terminated when the last acme window owned by this process is deleted.
	select {}
}

func mustCreateClient(configPath string) taskflow.API {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.WithField("cause", err).Fatal("Could not load configuration")
	}
	if err := cfg.ApplyLogLevel(); err != nil {
		log.WithField("cause", err).Fatal("Could not set log level")
	}
	c, err := cfg.NewClient()
	if err != nil {
		log.WithField("cause", err).Fatal("Could not create client")
	}
	log.WithField("endpoint", c.Endpoint()).Debug("Client ready")
	return c
}
