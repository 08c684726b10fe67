package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/runger/trove/internal/picker"
	"github.com/runger/trove/internal/search"
)

var pickJSON bool

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactively pick a record from the corpus",
	Long: `Open an interactive picker over the whole corpus.

Type to search (operators work here too), Tab to cycle entity tabs,
arrows to move, Enter to select. The selected record's id is printed
on stdout; with --json, the full result is printed instead.

Exit status is 0 on selection and 1 when cancelled.`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func init() {
	pickCmd.Flags().BoolVar(&pickJSON, "json", false, "print the selected result as JSON")
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	cfg, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("picker needs a terminal: %w", err)
	}
	defer tty.Close()

	// SetColorProfile modifies the existing default renderer in-place
	// so the package-level styles in the picker pick it up.
	lipgloss.SetColorProfile(termenv.NewOutput(tty).ColorProfile())

	provider := picker.NewCorpusProvider(
		store,
		search.TimelineWindow(cfg.Search.DefaultWindow),
		search.SortMode(cfg.Search.DefaultSort),
	)
	model := picker.NewModel(cfg.Picker.Tabs, provider, time.Duration(cfg.Picker.DebounceMs)*time.Millisecond)

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithInput(tty),
		tea.WithOutput(tty),
	)

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("picker failed: %w", err)
	}

	result, ok := finalModel.(picker.Model).Result()
	if !ok {
		os.Exit(1) // Cancelled; matches fuzzy-finder conventions.
	}

	if pickJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetEscapeHTML(false)
		return enc.Encode(result)
	}
	fmt.Println(result.ID)
	return nil
}
