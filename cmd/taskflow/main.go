package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nicolagi/taskflow"
	"github.com/nicolagi/taskflow/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var Version = "dev"

// globalFlags override the configuration file and environment.
type globalFlags struct {
	config   string
	endpoint string
	wireLog  string
	logLevel string
	timeout  string
}

func main() {
	var flags globalFlags
	rootCmd := &cobra.Command{
		Use:           "taskflow",
		Short:         "TaskFlow - manage your tasks from the command line",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.config, "config", "", "config file (default ~/lib/taskflow/config.toml)")
	pf.StringVar(&flags.endpoint, "endpoint", "", "base URL of the TaskFlow API")
	pf.StringVar(&flags.wireLog, "wire-log", "", "append requests and responses to this file")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warning, error)")
	pf.StringVar(&flags.timeout, "timeout", "", "per-request timeout, e.g. 5s")

	rootCmd.AddCommand(lsCmd(&flags))
	rootCmd.AddCommand(showCmd(&flags))
	rootCmd.AddCommand(addCmd(&flags))
	rootCmd.AddCommand(editCmd(&flags))
	rootCmd.AddCommand(toggleCmd(&flags))
	rootCmd.AddCommand(rmCmd(&flags))
	rootCmd.AddCommand(statsCmd(&flags))
	rootCmd.AddCommand(tuiCmd(&flags))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, fail("Error: "+err.Error()))
		os.Exit(1)
	}
}

// newStore builds the store every subcommand works with, from configuration overridden by flags.
func newStore(cmd *cobra.Command, flags *globalFlags) (*taskflow.Store, error) {
	cfg, err := config.Load(flags.config)
	if err != nil {
		return nil, err
	}
	pf := cmd.Flags()
	if pf.Changed("endpoint") {
		cfg.BaseURL = flags.endpoint
	}
	if pf.Changed("wire-log") {
		cfg.WireLog = flags.wireLog
	}
	if pf.Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if pf.Changed("timeout") {
		cfg.Timeout = flags.timeout
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.ApplyLogLevel(); err != nil {
		return nil, err
	}
	client, err := cfg.NewClient()
	if err != nil {
		return nil, fmt.Errorf("could not create client: %w", err)
	}
	log.WithField("endpoint", client.Endpoint()).Debug("Client ready")
	return taskflow.NewStore(client), nil
}
