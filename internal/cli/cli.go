package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/ghprofile/internal/config"
	"github.com/dmitrymomot/ghprofile/pkg/logger"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// ErrUsage marks bad flags or arguments.
var ErrUsage = errors.New("cli: invalid usage")

// errReported marks failures already printed for the user.
var errReported = errors.New("cli: reported")

const flushTimeout = 2 * time.Second

// Run executes the command in args (without the program name) and returns
// the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errReported):
		return ExitError
	case errors.Is(err, ErrUsage):
		fmt.Fprintln(stderr, "error:", err)
		fmt.Fprintln(stderr, "run 'ghprofile --help' for usage")
		return ExitUsage
	default:
		fmt.Fprintln(stderr, "error:", err)
		return ExitError
	}
}

type rootFlags struct {
	configPath string
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "ghprofile",
		Short: "Fetch and cache public GitHub profiles",
		Long: `ghprofile fetches GitHub users and their repositories and caches them.

Configuration is read from the optional YAML file given with --config
(or GHPROFILE_CONFIG) and from GHPROFILE_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", os.Getenv("GHPROFILE_CONFIG"), "path to a YAML config file")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Join(ErrUsage, err)
	})

	root.AddCommand(
		newServeCommand(flags),
		newLookupCommand(flags),
	)

	return root
}

func (f *rootFlags) load() (config.Config, error) {
	return config.Load(f.configPath)
}

func newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	return logger.NewWithWriter(w, cfg.Log, logger.RequestIDExtractor())
}
