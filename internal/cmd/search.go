package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/trove/internal/search"
	"github.com/runger/trove/internal/storage"
)

var (
	searchJSON   bool
	searchLimit  int
	searchWindow string
	searchSort   string
	searchType   string
	searchRecent bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the corpus",
	Long: `Search threads, spaces, collections, files and tasks.

The query supports quoted phrases and key:value operators:
  type:thread          restrict to one entity kind
  space:research       match by space name (substring)
  spaceid:<id>         match by exact space id
  tag:alpha -tag:done  require / exclude tags
  is:pinned is:starred filter thread state
  has:note has:cite    require attached note / citations
  verbatim:true        exact-phrase matching only

Examples:
  trove search "deep work"             # Phrase search
  trove search tag:planning roadmap    # Operator + free text
  trove search --type=file report      # Scope via flag
  trove search --window=7d --sort=newest
  trove search --recent                # Show recent queries`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (0 = config default)")
	searchCmd.Flags().StringVar(&searchWindow, "window", "", "recency window: all, 24h, 7d, 30d")
	searchCmd.Flags().StringVar(&searchSort, "sort", "", "result order: relevance, newest, oldest")
	searchCmd.Flags().StringVar(&searchType, "type", "", "restrict to one entity kind")
	searchCmd.Flags().BoolVar(&searchRecent, "recent", false, "list recent queries instead of searching")
	searchCmd.Flags().StringVar(&colorMode, "color", "auto", "color output: auto, always, or never")

	rootCmd.AddCommand(searchCmd)
}

type searchResponse struct {
	Results   []search.UnifiedResult `json:"results"`
	Total     int                    `json:"total"`
	Truncated bool                   `json:"truncated"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	applyColorMode()

	cfg, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmdContext(cmd)

	if searchRecent {
		return printRecentQueries(ctx, store, cfg.Search.RecentQueries)
	}

	rawQuery := strings.Join(args, " ")
	if searchType != "" {
		// The flag is sugar for a leading type: operator.
		rawQuery = "type:" + searchType + " " + rawQuery
	}

	corpus, err := storage.LoadCorpus(ctx, store)
	if err != nil {
		return err
	}

	window := search.TimelineWindow(cfg.Search.DefaultWindow)
	if searchWindow != "" {
		window = search.TimelineWindow(searchWindow)
	}
	sortBy := search.SortMode(cfg.Search.DefaultSort)
	if searchSort != "" {
		sortBy = search.SortMode(searchSort)
	}
	limit := cfg.Search.MaxResults
	if searchLimit > 0 {
		limit = searchLimit
	}

	results := search.UnifiedSearch(corpus, rawQuery, window, sortBy, limit, time.Now().UnixMilli())

	if trimmed := strings.TrimSpace(strings.Join(args, " ")); trimmed != "" {
		if err := storage.RecordRecentQuery(ctx, store, trimmed); err != nil {
			return err
		}
	}

	if searchJSON {
		resp := searchResponse{
			Results:   results,
			Total:     len(results),
			Truncated: limit > 0 && len(results) >= limit,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetEscapeHTML(false)
		return enc.Encode(resp)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	for _, r := range results {
		printResult(r)
	}
	return nil
}

func printResult(r search.UnifiedResult) {
	title := r.Title
	if title == "" {
		title = r.ID
	}
	line := fmt.Sprintf("%s%-10s%s %s%s%s", colorCyan, r.Kind, colorReset, colorBold, title, colorReset)
	if len(r.Badges) > 0 {
		badges := make([]string, len(r.Badges))
		for i, b := range r.Badges {
			badges[i] = string(b)
		}
		line += fmt.Sprintf(" %s[%s]%s", colorYellow, strings.Join(badges, ","), colorReset)
	}
	fmt.Println(line)
	if r.Snippet != "" {
		fmt.Printf("  %s%s%s\n", colorDim, firstLine(r.Snippet), colorReset)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func printRecentQueries(ctx context.Context, store storage.Store, limit int) error {
	recent, err := storage.LoadRecentQueries(ctx, store)
	if err != nil {
		return err
	}
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	if searchJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetEscapeHTML(false)
		return enc.Encode(recent)
	}
	if len(recent) == 0 {
		fmt.Println("No recent queries.")
		return nil
	}
	for _, q := range recent {
		fmt.Println(q)
	}
	return nil
}
