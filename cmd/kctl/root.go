// Command kctl is the kernel's boot and inspection CLI.
//
// root.go is grounded on the teacher's cmd/root.go: a cobra root
// command with persistent --log/--log-format/--debug flags and a
// PersistentPreRunE that wires up structured logging before any
// subcommand runs.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvlevchenko/mini32k/kernel/klog"
)

// Global flags.
var (
	globalLog       string
	globalLogFormat string
	globalDebug     bool
)

// rootCmd is the base command for kctl.
var rootCmd = &cobra.Command{
	Use:   "kctl",
	Short: "Boot and inspect a mini32k kernel instance",
	Long: `kctl boots a simulated mini32k kernel (spec.md §4.8's kernel-init
sequence, with real protected-mode setup reduced to its narrow,
hosted-process equivalent) and inspects the result: the process table,
mounted schemes, a stat'd path, or the effect of injecting a tick or
IRQ.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalLog, "log", "", "set the log file path")
	rootCmd.PersistentFlags().StringVar(&globalLogFormat, "log-format", "text", "set the format for log output (text or json)")
	rootCmd.PersistentFlags().BoolVar(&globalDebug, "debug", false, "enable debug logging")
}

// loggerConfig builds the klog.Config shared by setupLogging (the
// pre-boot default logger) and newKernel (which rebuilds the same
// config with a Ring handler attached once an Environment exists).
func loggerConfig() klog.Config {
	logOutput := os.Stderr
	if globalLog != "" {
		f, err := os.OpenFile(globalLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err == nil {
			logOutput = f
		}
	}

	logLevel := slog.LevelInfo
	if globalDebug {
		logLevel = slog.LevelDebug
	}

	return klog.Config{
		Level:  logLevel,
		Format: globalLogFormat,
		Output: logOutput,
	}
}

func setupLogging() {
	klog.SetDefault(klog.NewLogger(loggerConfig()))
}
