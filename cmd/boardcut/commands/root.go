package commands

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/piwi3910/BoardCut/internal/config"
)

var (
	configPath string
	logger     logr.Logger
)

// Execute builds the command tree and runs it until completion or SIGINT.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer klog.Flush()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "boardcut",
		Short:         "Pack a cut list onto stock boards and print the cutting plan",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = klog.Background()
		},
	}

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	root.PersistentFlags().AddGoFlagSet(klogFlags)
	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file (.json or .yaml)")

	root.AddCommand(optimizeCmd(), compareCmd(), renderCmd(), configCmd(), serveCmd())
	return root
}

// loadConfig reads the config file named by --config, falling back to defaults
// when it does not exist.
func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}
