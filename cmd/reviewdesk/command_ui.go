package main

import (
	"github.com/spf13/cobra"

	"reviewdesk/internal/app"
	"reviewdesk/internal/config"
	"reviewdesk/internal/logging"
	"reviewdesk/internal/store"
)

func newUICommand(env *commandEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Run the terminal UI (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.runUI()
		},
	}
}

func (e *commandEnv) runUI() error {
	c, cfg, err := e.client()
	if err != nil {
		return err
	}
	return e.wiring.runUI(cfg, c)
}

func runUI(cfg config.CoreConfig, api commandClient) error {
	logger, closeLog := openUILogger(cfg)
	defer closeLog()

	prefs, err := store.OpenPreferences(cfg)
	if err != nil {
		logger.Warn("preferences unavailable", logging.Err(err))
	} else {
		defer prefs.Close()
	}
	logger.Info("ui starting", logging.F("base_url", cfg.BaseURL()), logging.F("bulk_policy", cfg.BulkPolicy()))

	return app.Run(app.Options{
		API:            api,
		Logger:         logger,
		Flags:          store.NewFlags(prefs, logger),
		BulkPolicy:     cfg.BulkPolicy(),
		ShowOnboarding: cfg.ShowOnboarding(),
	})
}

// openUILogger logs to ~/.reviewdesk/ui.log; the terminal belongs to the UI.
func openUILogger(cfg config.CoreConfig) (logging.Logger, func()) {
	path, err := config.UILogPath()
	if err != nil {
		return logging.Nop(), func() {}
	}
	logger, closer, err := logging.OpenFile(path, logging.ParseLevel(cfg.LogLevel()))
	if err != nil {
		return logging.Nop(), func() {}
	}
	return logger, func() { _ = closer.Close() }
}
