package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"prematch/internal/config"
	"prematch/internal/store"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect the matching backlog",
	}

	queueCmd.AddCommand(newQueueStatusCommand(ctx))

	return queueCmd
}

func newQueueStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show release counts per match status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				counts, err := st.StatusCounts(cmd.Context())
				if err != nil {
					return err
				}
				if len(counts) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No releases recorded")
					return nil
				}

				if jsonFlag {
					type jsonCount struct {
						Status string `json:"status"`
						Count  int64  `json:"count"`
					}
					out := make([]jsonCount, 0, len(counts))
					for _, count := range counts {
						out = append(out, jsonCount{Status: count.Status.String(), Count: count.Count})
					}
					return writeJSON(cmd.OutOrStdout(), out)
				}

				fmt.Fprintln(cmd.OutOrStdout(), renderStatusTable(counts))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the counts as JSON")
	return cmd
}

// renderStatusTable draws the two-column status summary with counts
// right-aligned.
func renderStatusTable(counts []store.StatusCount) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Status", "Count"})
	for _, count := range counts {
		tw.AppendRow(table.Row{
			statusLabel(count.Status),
			strconv.FormatInt(count.Count, 10),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func statusLabel(status store.MatchStatus) string {
	words := strings.ReplaceAll(status.String(), "_", " ")
	return cases.Title(language.Und).String(words)
}
