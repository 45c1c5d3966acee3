// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/project-match/internal/persist"
	"github.com/pdiddy/project-match/pkg/types"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load every source and report per-collection counts",
	Long: `Load reads the configured sources the same way serve does and prints
how many records each collection accepted, how many header rows were
skipped and how many records were malformed. With the sqlite backend it
also reports when each mutable collection was last persisted.

Use --strict to fail when any record is malformed or any source unreadable.`,
	RunE: runLoad,
}

func runLoad(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	a.summary.Write(os.Stdout)

	if db, ok := a.saver.(*persist.SQLiteSaver); ok {
		fmt.Fprintln(os.Stdout)
		for _, c := range []string{types.CollectionDecisions, types.CollectionLogs, types.CollectionAnnouncements, types.CollectionMessages} {
			at, found, err := db.UpdatedAt(ctx, c)
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(os.Stdout, "snapshot %-13s none\n", c)
				continue
			}
			fmt.Fprintf(os.Stdout, "snapshot %-13s %s\n", c, at.Format(types.TimestampLayout))
		}
	}

	strict, _ := cmd.Flags().GetBool("strict")
	if strict && (a.summary.Malformed() > 0 || a.summary.FileErrors() > 0) {
		return fmt.Errorf("%d malformed record(s), %d unreadable source(s)", a.summary.Malformed(), a.summary.FileErrors())
	}
	return nil
}

func init() {
	loadCmd.Flags().Bool("strict", false, "exit non-zero when any record is malformed or any source unreadable")
	rootCmd.AddCommand(loadCmd)
}
