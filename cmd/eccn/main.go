package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ressKim-io/eccn-classifier/internal/adapter/client"
	"github.com/ressKim-io/eccn-classifier/internal/infrastructure/config"
	"github.com/ressKim-io/eccn-classifier/internal/infrastructure/logger"
)

// errReported means the failure was already shown to the user
var errReported = errors.New("reported")

// cli holds global flags and the state shared by subcommands
type cli struct {
	verbose   bool
	serverURL string
	timeout   time.Duration

	cfg    *config.Config
	logger *zap.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "eccn",
		Short: "Classify products into Export Control Classification Numbers",
		Long: `eccn talks to the ECCN classification service.

Run "eccn classify" for a one-shot answer or "eccn tui" for the interactive
screen. "eccn ingest" loads the ECCN catalog into the service database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			c.cfg = cfg

			level := "warn"
			if c.verbose {
				level = "debug"
			}
			c.logger = logger.NewCLILogger(level, c.stderr)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&c.serverURL, "server", "", "Classification service URL (default from ECCN_CLIENT_BASE_URL)")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 0, "Request timeout (default from ECCN_CLIENT_TIMEOUT)")

	root.AddCommand(
		newClassifyCmd(c),
		newTUICmd(c),
		newIngestCmd(c),
		newHealthCmd(c),
	)
	return root
}

// apiClient builds the service client; flags win over configuration
func (c *cli) apiClient() *client.ECCNClient {
	baseURL := c.cfg.Client.BaseURL
	if c.serverURL != "" {
		baseURL = c.serverURL
	}
	timeout := c.cfg.Client.Timeout
	if c.timeout > 0 {
		timeout = c.timeout
	}
	return client.NewECCNClient(baseURL, timeout)
}
