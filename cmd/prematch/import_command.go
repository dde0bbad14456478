package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"prematch/internal/config"
	"prematch/internal/store"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Load catalog entries and releases from JSON lines",
	}

	importCmd.AddCommand(newImportCatalogCommand(ctx))
	importCmd.AddCommand(newImportReleasesCommand(ctx))

	return importCmd
}

type catalogLine struct {
	RequestID int64  `json:"request_id"`
	Group     string `json:"group"`
	Title     string `json:"title"`
	Filename  string `json:"filename"`
}

type releaseLine struct {
	Name         string    `json:"name"`
	Group        string    `json:"group"`
	CategoryID   int64     `json:"category_id"`
	HasRequestID *bool     `json:"has_request_id"`
	PostDate     time.Time `json:"post_date"`
}

func newImportCatalogCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog <file>",
		Short: "Import reference catalog entries (one JSON object per line, - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				count, err := importLines(cmd, args[0], func(data []byte) error {
					var line catalogLine
					if err := json.Unmarshal(data, &line); err != nil {
						return err
					}
					_, err := st.InsertReference(cmd.Context(), store.NewReference{
						RequestID: line.RequestID,
						Group:     line.Group,
						Title:     line.Title,
						Filename:  line.Filename,
					})
					return err
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d catalog entries\n", count)
				return nil
			})
		},
	}
}

func newImportReleasesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "releases <file>",
		Short: "Import releases awaiting a match (one JSON object per line, - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				count, err := importLines(cmd, args[0], func(data []byte) error {
					var line releaseLine
					if err := json.Unmarshal(data, &line); err != nil {
						return err
					}
					hasRequestID := true
					if line.HasRequestID != nil {
						hasRequestID = *line.HasRequestID
					}
					_, err := st.InsertCandidate(cmd.Context(), store.NewCandidate{
						Name:         line.Name,
						Group:        line.Group,
						CategoryID:   line.CategoryID,
						HasRequestID: hasRequestID,
						PostDate:     line.PostDate,
					})
					return err
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d releases\n", count)
				return nil
			})
		},
	}
}

// importLines feeds each non-blank line of the named file (or stdin for
// "-") to handle. The returned count is the number of lines accepted.
func importLines(cmd *cobra.Command, path string, handle func([]byte) error) (int, error) {
	var reader io.Reader
	if path == "-" {
		reader = cmd.InOrStdin()
	} else {
		file, err := os.Open(path)
		if err != nil {
			return 0, fmt.Errorf("open import file: %w", err)
		}
		defer file.Close()
		reader = file
	}

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	count := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if err := handle([]byte(text)); err != nil {
			return count, fmt.Errorf("line %d: %w", lineNo, err)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("read import file: %w", err)
	}
	return count, nil
}
