package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runger/trove/internal/selection"
	"github.com/runger/trove/internal/storage"
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Undo the last delete",
	Long: `Put back the threads removed by the most recent "trove rm",
at their original list positions. The undo batch is consumed; a second
restore is a no-op.`,
	Args: cobra.NoArgs,
	RunE: runRestore,
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}

func runRestore(cmd *cobra.Command, args []string) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	ctx := cmdContext(cmd)

	anchors, err := storage.LoadUndoAnchors(ctx, store)
	if err != nil {
		return err
	}
	if len(anchors) == 0 {
		fmt.Println("Nothing to restore.")
		return nil
	}

	threads, err := storage.LoadThreads(ctx, store)
	if err != nil {
		return err
	}

	restored := selection.RestoreDeletedAnchors(threads, anchors, threadID)
	if err := storage.SaveThreads(ctx, store, restored); err != nil {
		return err
	}
	if err := storage.ClearUndoAnchors(ctx, store); err != nil {
		return err
	}

	fmt.Printf("Restored %d thread(s).\n", len(restored)-len(threads))
	return nil
}
