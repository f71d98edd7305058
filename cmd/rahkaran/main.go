package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/rahkaran-client/internal/app"
	"github.com/samvad-hq/rahkaran-client/internal/config"
	"github.com/samvad-hq/rahkaran-client/internal/logger"
	"github.com/spf13/cobra"
)

// rootFlags holds the persistent flags shared by every operation.
type rootFlags struct {
	endpointsFile string
	noPublish     bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "rahkaran",
		Short: "Call Rahkaran ERP web services",
		Long: `rahkaran runs one Rahkaran web service operation and prints the JSON result.

Connection settings come from the environment (and configs/.env):
RAHKARAN_BASE_URL plus either RAHKARAN_COOKIES or RAHKARAN_USERNAME,
RAHKARAN_PASSWORD and LOGIN_SERVICE_URL.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flags.endpointsFile, "endpoints", "", "endpoints override file (YAML or JSON)")
	root.PersistentFlags().BoolVar(&flags.noPublish, "no-publish", false, "do not send events to configured publishers")

	for _, op := range app.Operations() {
		op := op
		root.AddCommand(&cobra.Command{
			Use:   op.Usage,
			Short: "Run the " + op.Name + " operation",
			Args:  cobra.ExactArgs(op.Args),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd.Context(), flags, cmd.OutOrStdout(), op.Name, args)
			},
		})
	}
	return root
}

func run(parent context.Context, flags *rootFlags, out io.Writer, operation string, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flags.endpointsFile != "" {
		cfg.EndpointsFile = flags.endpointsFile
	}
	if flags.noPublish {
		cfg.PublishersFile = ""
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.DebugObj("rahkaran starting", "config", cfg.Redacted())

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner, err := app.NewRunner(ctx, cfg, log, app.WithOutput(out))
	if err != nil {
		logger.ErrorObj("failed to initialize runner", "error", err.Error())
		return err
	}
	defer runner.Close()

	_, err = runner.Run(ctx, operation, args)
	return err
}
