package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/vvlevchenko/mini32k/kernel/builtin"
	"github.com/vvlevchenko/mini32k/kernel/environment"
	"github.com/vvlevchenko/mini32k/kernel/klog"
	"github.com/vvlevchenko/mini32k/kernel/trap"
)

// stdioConsole adapts os.Stdin/os.Stdout to the environment.Console
// interface (io.Reader + io.Writer), standing in for the physical
// serial/VGA console a real boot would attach (spec.md §1).
type stdioConsole struct {
	io.Reader
	io.Writer
}

func newStdioConsole() *stdioConsole {
	return &stdioConsole{Reader: os.Stdin, Writer: os.Stdout}
}

// newKernel builds a fresh Environment, installs the built-in schemes
// (kernel/builtin), and runs the spec.md §4.8 init sequence via
// trap.Dispatch(0xFF, ...) — the same entry point a real boot
// handoff would invoke, so kctl exercises the production code path
// rather than a test-only shortcut.
//
// It also rebuilds the default slog logger with a klog.RingHandler
// that feeds env.Log, so the structured log stream setupLogging set up
// and the "klog:" scheme's Environment.Logs snapshot (kernel/builtin's
// KlogScheme) become the same system rather than two disconnected logs.
func newKernel() (*environment.Environment, *trap.Dispatcher) {
	env := environment.New()
	console := newStdioConsole()

	cfg := loggerConfig()
	cfg.Ring = klog.NewRingHandler(func(level slog.Level, message string) {
		env.Log(envLogLevel(level), message)
	})
	klog.SetDefault(klog.NewLogger(cfg))

	disp := &trap.Dispatcher{
		Env: env,
		Boot: func(env *environment.Environment, tssPhysAddr uint32) {
			schemes := builtin.Install(env, builtin.Config{Term: os.Stdout})
			trap.Boot(env, tssPhysAddr, trap.BootConfig{
				Schemes: schemes,
				Console: console,
			})
		},
	}
	disp.Dispatch(0xFF, &trap.Regs{})
	return env, disp
}

// envLogLevel maps an slog.Level to the environment package's
// coarser LogLevel, the way environment.LogEntry expects.
func envLogLevel(level slog.Level) environment.LogLevel {
	switch {
	case level >= slog.LevelError:
		return environment.LogError
	case level >= slog.LevelWarn:
		return environment.LogWarn
	case level >= slog.LevelInfo:
		return environment.LogInfo
	default:
		return environment.LogDebug
	}
}

// logf writes a line to the default klog logger at info level, the
// CLI's equivalent of the kernel's own Environment.Log calls.
func logf(msg string, args ...any) {
	klog.Default().Info(msg, args...)
}
