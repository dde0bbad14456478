package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"prematch/internal/config"
	"prematch/internal/reconcile"
	"prematch/internal/runner"
	"prematch/internal/store"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	matchCmd := &cobra.Command{
		Use:   "match",
		Short: "Run the catalog matching batch",
	}

	matchCmd.AddCommand(newMatchRunCommand(ctx))

	return matchCmd
}

func newMatchRunCommand(ctx *commandContext) *cobra.Command {
	var hoursFlag int
	var showFlag bool
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "run [all|full|N]",
		Short: "Match unprocessed releases against the reference catalog",
		Long: `Selects candidate releases and resolves each one against the
reference catalog. The optional argument narrows the selection:

  all   every unmatched release (default)
  full  unrenamed releases with retryable statuses inside the window
  N     like full, limited to the N most recent releases`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				spec, err := parseFilterSpec(args, hoursFlag, cfg)
				if err != nil {
					return err
				}

				logger, err := ctx.newLogger()
				if err != nil {
					return err
				}

				var recorders reconcile.Recorders
				if cfg.Matching.AuditPath != "" {
					journal, err := reconcile.NewAuditSink(cfg.Matching.AuditPath)
					if err != nil {
						return err
					}
					defer journal.Close()
					recorders = append(recorders, journal)
				}
				if showFlag || cfg.Matching.ShowRenames {
					recorders = append(recorders, reconcile.NewAuditWriter(cmd.OutOrStdout()))
				}

				opts := []runner.Option{}
				if len(recorders) > 0 {
					opts = append(opts, runner.WithAuditSink(recorders))
				}

				r := runner.New(cfg, st, logger, opts...)
				summary, err := r.Run(cmd.Context(), spec)
				if err != nil {
					if errors.Is(err, runner.ErrRunInProgress) {
						return fmt.Errorf("a batch is already running; wait for it to finish")
					}
					return err
				}

				if jsonFlag {
					return writeJSON(cmd.OutOrStdout(), summary)
				}
				printSummary(cmd.OutOrStdout(), summary)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&hoursFlag, "hours", 0, "Post-date window in hours for full and recent modes (0 uses the configured default)")
	cmd.Flags().BoolVar(&showFlag, "show", false, "Print one JSON line per applied rename")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the run summary as JSON")
	return cmd
}

// parseFilterSpec maps the positional mode argument and the hours flag onto
// a candidate selection.
func parseFilterSpec(args []string, hoursFlag int, cfg *config.Config) (store.FilterSpec, error) {
	hours := hoursFlag
	if hours <= 0 {
		hours = cfg.Matching.DefaultHours
	}

	mode := "all"
	if len(args) == 1 {
		mode = strings.ToLower(strings.TrimSpace(args[0]))
	}

	switch mode {
	case "all", "":
		return store.FilterSpec{Mode: store.ModeAll}, nil
	case "full":
		return store.FilterSpec{Mode: store.ModeFull, Hours: hours}, nil
	default:
		limit, err := strconv.Atoi(mode)
		if err != nil || limit <= 0 {
			return store.FilterSpec{}, fmt.Errorf("invalid mode %q: expected all, full, or a positive count", mode)
		}
		return store.FilterSpec{Mode: store.ModeRecent, Hours: hours, Limit: limit}, nil
	}
}
