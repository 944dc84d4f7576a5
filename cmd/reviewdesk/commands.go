package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"reviewdesk/internal/config"
	"reviewdesk/internal/logging"
	"reviewdesk/internal/mutation"
)

type commandWiring struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig func(path string) (config.CoreConfig, error)
	newClient  clientFactory
	newGate    func() mutation.Gate
	runUI      func(cfg config.CoreConfig, api commandClient) error
	version    string
}

func defaultCommandWiring(stdout, stderr io.Writer) commandWiring {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdout:     stdout,
		stderr:     stderr,
		loadConfig: loadCoreConfig,
		newClient:  newReviewClient,
		newGate:    newPromptGate,
		runUI:      runUI,
		version:    buildVersion(),
	}
}

type globalFlags struct {
	configPath string
	baseURL    string
	verbose    bool
}

// commandEnv is what every subcommand shares: wiring plus the parsed
// persistent flags.
type commandEnv struct {
	wiring commandWiring
	flags  *globalFlags
}

func newRootCommand(wiring commandWiring) *cobra.Command {
	env := &commandEnv{wiring: wiring, flags: &globalFlags{}}
	root := &cobra.Command{
		Use:           "reviewdesk",
		Short:         "Review sitemap pages and manage notification emails",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       wiring.version,
		Example: strings.TrimSpace(`
  # Start the terminal UI
  reviewdesk

  # Scriptable commands
  reviewdesk sitemaps list
  reviewdesk pages mark 4 17 18
  reviewdesk pages unmark 4 --all
  reviewdesk emails add ops@example.com
  reviewdesk sitemaps delete 4 --yes
  reviewdesk config --format toml
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.runUI()
		},
	}
	root.SetOut(wiring.stdout)
	root.SetErr(wiring.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&env.flags.configPath, "config", "", "config file (default ~/.reviewdesk/config.toml)")
	flags.StringVar(&env.flags.baseURL, "base-url", "", "override [server] base_url")
	flags.BoolVarP(&env.flags.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newUICommand(env),
		newSitemapsCommand(env),
		newPagesCommand(env),
		newEmailsCommand(env),
		newStatusCommand(env),
		newFeedbackCommand(env),
		newConfigCommand(env),
	)
	return root
}

func loadCoreConfig(path string) (config.CoreConfig, error) {
	if strings.TrimSpace(path) == "" {
		return config.LoadCoreConfig()
	}
	return config.LoadCoreConfigFromPath(path)
}

func (e *commandEnv) config() (config.CoreConfig, error) {
	cfg, err := e.wiring.loadConfig(e.flags.configPath)
	if err != nil {
		return config.CoreConfig{}, fmt.Errorf("load config: %w", err)
	}
	if base := strings.TrimSpace(e.flags.baseURL); base != "" {
		cfg.Server.BaseURL = base
	}
	return cfg, nil
}

func (e *commandEnv) client() (commandClient, config.CoreConfig, error) {
	cfg, err := e.config()
	if err != nil {
		return nil, config.CoreConfig{}, err
	}
	c, err := e.wiring.newClient(cfg)
	if err != nil {
		return nil, config.CoreConfig{}, err
	}
	return c, cfg, nil
}

// logger writes to stderr and stays quiet below warn unless --verbose.
func (e *commandEnv) logger(cfg config.CoreConfig) logging.Logger {
	if e.flags.verbose {
		return logging.New(e.wiring.stderr, logging.Debug)
	}
	level := max(logging.ParseLevel(cfg.LogLevel()), logging.Warn)
	return logging.New(e.wiring.stderr, level)
}

func (e *commandEnv) notifier() mutation.Notifier {
	return newColorNotifier(e.wiring.stdout, e.wiring.stderr)
}

func (e *commandEnv) gate(yes bool) mutation.Gate {
	switch {
	case yes:
		return mutation.AlwaysConfirm
	case e.wiring.newGate == nil:
		return mutation.AlwaysDecline
	default:
		return e.wiring.newGate()
	}
}
