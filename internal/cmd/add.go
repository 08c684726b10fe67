package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/runger/trove/internal/model"
	"github.com/runger/trove/internal/storage"
)

var (
	addThreadTitle    string
	addThreadQuestion string
	addThreadAnswer   string
	addThreadTags     []string
	addThreadSpace    string
	addThreadPinned   bool

	addSpaceTags []string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add records to the corpus",
}

var addThreadCmd = &cobra.Command{
	Use:   "thread",
	Short: "Add a thread",
	Long: `Add a thread to the corpus.

Examples:
  trove add thread --title "Q3 Roadmap" --question "what ships in Q3?"
  trove add thread --question "..." --tag planning --tag roadmap --space Research`,
	Args: cobra.NoArgs,
	RunE: runAddThread,
}

var addSpaceCmd = &cobra.Command{
	Use:   "space <name>",
	Short: "Add a space",
	Args:  cobra.ExactArgs(1),
	RunE:  runAddSpace,
}

func init() {
	addThreadCmd.Flags().StringVar(&addThreadTitle, "title", "", "thread title")
	addThreadCmd.Flags().StringVar(&addThreadQuestion, "question", "", "the question asked")
	addThreadCmd.Flags().StringVar(&addThreadAnswer, "answer", "", "the answer body")
	addThreadCmd.Flags().StringArrayVar(&addThreadTags, "tag", nil, "tag (repeatable)")
	addThreadCmd.Flags().StringVar(&addThreadSpace, "space", "", "space name to file the thread under")
	addThreadCmd.Flags().BoolVar(&addThreadPinned, "pin", false, "pin the thread")

	addSpaceCmd.Flags().StringArrayVar(&addSpaceTags, "tag", nil, "tag (repeatable)")

	addCmd.AddCommand(addThreadCmd)
	addCmd.AddCommand(addSpaceCmd)
	rootCmd.AddCommand(addCmd)
}

func runAddThread(cmd *cobra.Command, args []string) error {
	if addThreadTitle == "" && addThreadQuestion == "" {
		return fmt.Errorf("at least one of --title or --question is required")
	}

	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	ctx := cmdContext(cmd)

	now := time.Now().UnixMilli()
	thread := model.Thread{
		ID:        uuid.NewString(),
		Title:     addThreadTitle,
		Question:  addThreadQuestion,
		Answer:    addThreadAnswer,
		Tags:      addThreadTags,
		Pinned:    addThreadPinned,
		Mode:      model.ModeQuick,
		Sources:   model.SourcesNone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if addThreadSpace != "" {
		spaces, err := storage.LoadSpaces(ctx, store)
		if err != nil {
			return err
		}
		sp, ok := findSpaceByName(spaces, addThreadSpace)
		if !ok {
			return fmt.Errorf("no space named %q; create it with 'trove add space'", addThreadSpace)
		}
		thread.SpaceID = sp.ID
		thread.SpaceName = sp.Name
	}

	threads, err := storage.LoadThreads(ctx, store)
	if err != nil {
		return err
	}
	// Newest first, matching the list order the picker shows.
	threads = append([]model.Thread{thread}, threads...)
	if err := storage.SaveThreads(ctx, store, threads); err != nil {
		return err
	}

	fmt.Println(thread.ID)
	return nil
}

func runAddSpace(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return fmt.Errorf("space name cannot be blank")
	}

	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	ctx := cmdContext(cmd)

	spaces, err := storage.LoadSpaces(ctx, store)
	if err != nil {
		return err
	}
	if _, ok := findSpaceByName(spaces, name); ok {
		return fmt.Errorf("space %q already exists", name)
	}

	now := time.Now().UnixMilli()
	sp := model.Space{
		ID:        uuid.NewString(),
		Name:      name,
		Tags:      addSpaceTags,
		CreatedAt: now,
	}
	spaces = append(spaces, sp)
	if err := storage.SaveSpaces(ctx, store, spaces); err != nil {
		return err
	}

	fmt.Println(sp.ID)
	return nil
}

func findSpaceByName(spaces []model.Space, name string) (model.Space, bool) {
	for _, sp := range spaces {
		if strings.EqualFold(sp.Name, name) {
			return sp, true
		}
	}
	return model.Space{}, false
}
