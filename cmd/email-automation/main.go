package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/dushyant4342/crewai-email-automation/internal/agent"
	"github.com/dushyant4342/crewai-email-automation/internal/config"
	"github.com/dushyant4342/crewai-email-automation/internal/email"
	"github.com/dushyant4342/crewai-email-automation/internal/pipeline"
)

const inboxFolder = "INBOX"

var (
	version     = "dev"
	showVersion = flag.Bool("version", false, "Show version information")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("email-automation version %s\n", version)
		os.Exit(0)
	}

	// Set up logging
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	// Set log level
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.Info("Starting email draft generation run")

	client := email.NewClient(cfg, logger)
	defer client.Close()

	writer := email.NewDraftWriter(client, logger)
	runtime := agent.NewOpenAIRuntime(cfg.OpenAIAPIKey)
	crew := agent.NewCrew(runtime, logger)

	p := pipeline.New(client, crew, writer, inboxFolder, cfg.FetchLimit, logger)

	report, err := p.Run(context.Background())
	if err != nil {
		// Fetch-stage failures (bad credentials, unreachable server)
		// abort the run before any drafts are written.
		logger.WithError(err).Fatal("Run aborted")
	}

	for _, failure := range report.Failures {
		logger.WithFields(logrus.Fields{
			"message_id": failure.MessageID,
			"stage":      failure.Stage,
		}).WithError(failure.Err).Warn("Message not drafted")
	}

	logger.WithFields(logrus.Fields{
		"succeeded": report.Succeeded,
		"failed":    report.Failed,
	}).Info("Run complete")
}
