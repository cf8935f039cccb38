// Package main provides the likestats CLI entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gauthierbraillon/likestats/internal/config"
	"github.com/gauthierbraillon/likestats/internal/display"
	"github.com/gauthierbraillon/likestats/internal/logging"
	"github.com/gauthierbraillon/likestats/internal/stats"
	"github.com/gauthierbraillon/likestats/internal/youtube"
	"github.com/gauthierbraillon/likestats/pkg/browser"
	"github.com/gauthierbraillon/likestats/pkg/oauth"
)

const provider = "youtube"

var version = "dev"

// openBrowser is swapped out in tests.
var openBrowser = browser.Open

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &statsOptions{}

	rootCmd := &cobra.Command{
		Use:   "likestats",
		Short: "Statistics about your liked YouTube videos",
		Long: "Likestats downloads your liked YouTube videos and ranks them by category and\n" +
			"channel, over all time and over the last month.",
		Version:      resolveVersion(version, readBuildInfo()),
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, opts)
		},
	}

	rootCmd.SetVersionTemplate("likestats version {{.Version}}\n")
	opts.bind(rootCmd)

	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

type statsOptions struct {
	format string
	top    int
}

func (o *statsOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", string(display.FormatText), "Output format (text, json)")
	cmd.Flags().IntVarP(&o.top, "top", "n", 0, "Show at most N entries per ranking (0 shows all)")
}

func newStatsCmd() *cobra.Command {
	opts := &statsOptions{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show statistics about your liked videos",
		Long:  "Fetch every liked video, resolve its category and print the rankings.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, opts)
		},
	}
	opts.bind(cmd)

	return cmd
}

func runStats(cmd *cobra.Command, opts *statsOptions) error {
	format, err := display.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	cfg, logger, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := commandContext(cmd.Context(), cfg.Run.Timeout)
	defer cancel()

	storage := oauth.NewTokenStorage(cfg.Auth.ConfigDir)
	token, err := storage.Load(provider)
	if err != nil {
		if errors.Is(err, oauth.ErrTokenNotFound) {
			return fmt.Errorf("not authenticated (run 'likestats auth')")
		}
		return err
	}

	oauthConfig, err := oauth.LoadConfig(cfg.Auth.CredentialsFile, cfg.RedirectURL())
	if err != nil {
		return err
	}
	httpClient := oauth.NewFlow(oauthConfig).Client(ctx, token, storage, provider)

	client, err := youtube.NewClient(ctx,
		youtube.WithHTTPClient(httpClient),
		youtube.WithBaseURL(cfg.YouTube.APIURL),
		youtube.WithLogger(logger))
	if err != nil {
		return err
	}

	statistics, err := stats.New(ctx, client, stats.WithLogger(logger))
	if err != nil {
		return err
	}

	return display.NewTerminalFormatter(opts.top).Write(cmd.OutOrStdout(), statistics, format)
}

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize likestats to read your YouTube likes",
		Long: "Run the OAuth consent flow in your browser and save the resulting token.\n" +
			"The client secret is read from LIKESTATS_CREDENTIALS_FILE.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, closeLog, err := setup(cmd)
			if err != nil {
				return err
			}
			defer closeLog()

			ctx, cancel := commandContext(cmd.Context(), cfg.Run.Timeout)
			defer cancel()

			callbackServer := oauth.NewCallbackServer(cfg.Auth.CallbackPort)
			if err := callbackServer.Listen(); err != nil {
				return err
			}
			defer func() { _ = callbackServer.Close() }()

			oauthConfig, err := oauth.LoadConfig(cfg.Auth.CredentialsFile, callbackServer.RedirectURL())
			if err != nil {
				return err
			}
			flow := oauth.NewFlow(oauthConfig)
			authURL, state := flow.GenerateAuthURL()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Opening browser for authorization...\n")
			if err := openBrowser(authURL); err != nil {
				logger.Warn("Could not open browser", zap.Error(err))
				fmt.Fprintf(out, "Could not open browser. Please visit:\n%s\n", authURL)
			}

			fmt.Fprintf(out, "Waiting for authorization...\n")
			code, err := callbackServer.WaitForCallback(ctx, state, cfg.Run.Timeout)
			if err != nil {
				return fmt.Errorf("authorization failed: %w", err)
			}

			token, err := flow.ExchangeCode(ctx, code)
			if err != nil {
				return fmt.Errorf("token exchange failed: %w", err)
			}

			storage := oauth.NewTokenStorage(cfg.Auth.ConfigDir)
			if err := storage.Save(provider, token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}
			logger.Info("Saved YouTube token", zap.String("path", storage.Path(provider)))

			fmt.Fprintf(out, "Successfully authenticated with YouTube!\n")
			fmt.Fprintf(out, "Token saved to: %s\n", storage.Path(provider))
			return nil
		},
	}

	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long:  "Print the settings likestats resolved from LIKESTATS_* variables and .env.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			apiURL := cfg.YouTube.APIURL
			if apiURL == "" {
				apiURL = "(default)"
			}
			logFile := cfg.Logging.File
			if logFile == "" {
				logFile = "(stderr)"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config directory: %s\n", cfg.Auth.ConfigDir)
			fmt.Fprintf(out, "Token file:       %s\n", oauth.NewTokenStorage(cfg.Auth.ConfigDir).Path(provider))
			fmt.Fprintf(out, "Credentials file: %s\n", cfg.Auth.CredentialsFile)
			fmt.Fprintf(out, "Callback port:    %d\n", cfg.Auth.CallbackPort)
			fmt.Fprintf(out, "API URL:          %s\n", apiURL)
			fmt.Fprintf(out, "Log level:        %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "Log file:         %s\n", logFile)
			fmt.Fprintf(out, "Timeout:          %s\n", cfg.Run.Timeout)
			return nil
		},
	}

	return cmd
}

// setup loads the configuration and builds the logger. Without a log file
// the logger writes to the command's stderr. The caller defers closeLog.
func setup(cmd *cobra.Command) (cfg *config.Config, logger *zap.Logger, closeLog func(), err error) {
	cfg, err = config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	if cfg.Logging.File == "" {
		logger = logging.NewWithWriter(cfg.Logging.Level, cmd.ErrOrStderr())
		return cfg, logger, func() { _ = logger.Sync() }, nil
	}

	logger, closeLog, err = logging.New(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return cfg, logger, closeLog, nil
}

// commandContext bounds a run by timeout and cancels it on SIGINT or SIGTERM.
func commandContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}
