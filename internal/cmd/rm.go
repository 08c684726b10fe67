package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runger/trove/internal/model"
	"github.com/runger/trove/internal/selection"
	"github.com/runger/trove/internal/storage"
)

var rmCmd = &cobra.Command{
	Use:   "rm <thread-id>...",
	Short: "Delete threads (undoable with restore)",
	Long: `Delete one or more threads by id.

The deleted threads and their list positions are kept until the next
delete, so a single "trove restore" puts them back where they were.

Examples:
  trove rm 2f1c...            # Delete one thread
  trove rm id1 id2 id3        # Bulk delete`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func threadID(t model.Thread) string { return t.ID }

func runRm(cmd *cobra.Command, args []string) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	ctx := cmdContext(cmd)

	threads, err := storage.LoadThreads(ctx, store)
	if err != nil {
		return err
	}

	activeIDs, missing := selection.ResolveActiveSelectedIDs(args, threads, threadID)
	if len(activeIDs) == 0 {
		return fmt.Errorf("no matching threads among %d id(s)", len(args))
	}

	anchors := selection.CaptureDeletedAnchors(threads, activeIDs, threadID)

	doomed := make(map[string]bool, len(activeIDs))
	for _, id := range activeIDs {
		doomed[id] = true
	}
	kept := make([]model.Thread, 0, len(threads)-len(activeIDs))
	for _, t := range threads {
		if !doomed[t.ID] {
			kept = append(kept, t)
		}
	}

	if err := storage.SaveThreads(ctx, store, kept); err != nil {
		return err
	}
	// Each delete replaces the previous undo batch.
	if err := storage.SaveUndoAnchors(ctx, store, anchors); err != nil {
		return err
	}

	fmt.Printf("Deleted %d thread(s).", len(activeIDs))
	if missing > 0 {
		fmt.Printf(" %d id(s) did not match.", missing)
	}
	fmt.Println(" Run 'trove restore' to undo.")
	return nil
}
