package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/ghprofile/pkg/logger"
	"github.com/dmitrymomot/ghprofile/pkg/profile"
	"github.com/dmitrymomot/ghprofile/pkg/search"
)

type lookupFlags struct {
	refresh bool
	json    bool
}

func newLookupCommand(root *rootFlags) *cobra.Command {
	flags := &lookupFlags{}

	cmd := &cobra.Command{
		Use:   "lookup <username>",
		Short: "Print one GitHub profile",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, root, flags, args[0])
		},
	}
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "bypass the cache")
	cmd.Flags().BoolVar(&flags.json, "json", false, "print the profile as JSON")

	return cmd
}

func runLookup(cmd *cobra.Command, root *rootFlags, flags *lookupFlags, username string) error {
	cfg, err := root.load()
	if err != nil {
		return err
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	log := newLogger(cfg, stderr)
	defer logger.Flush(flushTimeout)

	ctx := cmd.Context()
	c, err := build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.close(context.WithoutCancel(ctx)); err != nil {
			log.Warn("cleanup failed", slog.String("error", err.Error()))
		}
	}()

	h := search.New(c.client,
		search.WithLogger(log),
		search.WithObserver(func(s search.State) {
			log.Debug("search state changed", slog.String("status", s.Status.String()))
		}),
	)

	if !h.CanSearch(username) {
		return errors.Join(ErrUsage, errors.New("username must not be blank"))
	}

	if flags.refresh {
		h.Refresh(ctx, username)
	} else {
		h.Search(ctx, username)
	}

	st := h.State()
	switch st.Status {
	case search.StatusLoaded:
		if flags.json {
			enc := json.NewEncoder(stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(st.Profile)
		}
		return printProfile(stdout, *st.Profile)
	case search.StatusErrored:
		fmt.Fprintf(stderr, "%s: %s\n", st.Alert.Title, st.Alert.Message)
		return errReported
	default:
		return ctx.Err()
	}
}

func printProfile(w io.Writer, p profile.Profile) error {
	fmt.Fprintf(w, "%s (@%s)\n", p.User.DisplayName, p.User.Username)
	if p.User.AvatarURL != "" {
		fmt.Fprintf(w, "avatar: %s\n", p.User.AvatarURL)
	}
	fmt.Fprintf(w, "repositories: %d\n", len(p.Repositories))

	if len(p.Repositories) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range p.Repositories {
		language := "-"
		if r.Language != nil {
			language = *r.Language
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", r.Name, language, r.HTMLURL)
	}
	return tw.Flush()
}
