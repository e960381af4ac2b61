// Package main provides the CLI entrypoint for creatordesk.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/creatordesk/internal/collection"
	"github.com/verte-zerg/creatordesk/internal/config"
	"github.com/verte-zerg/creatordesk/internal/dataset"
	"github.com/verte-zerg/creatordesk/internal/deskui"
	"github.com/verte-zerg/creatordesk/internal/listing"
	"github.com/verte-zerg/creatordesk/internal/logging"
	"github.com/verte-zerg/creatordesk/internal/model"
	"github.com/verte-zerg/creatordesk/internal/pager"
	"github.com/verte-zerg/creatordesk/internal/store"
)

const (
	defaultLoadDelay   = 600 * time.Millisecond
	defaultSeed        = 42
	defaultMembers     = 240
	defaultSales       = 180
	defaultPosts       = 96
	defaultCollections = 18
	defaultDownloads   = 40
)

var (
	verbose bool
	logger  = zap.NewNop()
	fileCfg config.FileConfig

	uiPageSize  int
	uiLoadDelay time.Duration

	listSearch   string
	listFilters  []string
	listSort     string
	listDesc     bool
	listPage     int
	listPageSize int
	listAll      bool

	seedValue       int64
	seedMembers     int
	seedSales       int
	seedPosts       int
	seedCollections int
	seedDownloads   int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "creatordesk",
		Short:             "Browse creator members, sales and library in the terminal",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: initRuntime,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: runDeskCmd,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.Flags().IntVar(&uiPageSize, "page-size", 0, "rows per page for every collection (default: per collection)")
	rootCmd.Flags().DurationVar(&uiLoadDelay, "load-delay", defaultLoadDelay, "simulated latency of load-more and refresh")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// initRuntime loads the config file and opens the log. The config command
// skips it so a broken file can still be edited.
func initRuntime(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "config" {
		return nil
	}
	cfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	fileCfg = cfg

	level := ""
	if cfg.Log.Level != nil {
		level = *cfg.Log.Level
	}
	path := config.DefaultLogPath()
	if cfg.Log.File != nil && strings.TrimSpace(*cfg.Log.File) != "" {
		path = *cfg.Log.File
	}
	l, err := logging.New(logging.Options{Path: path, Level: level, Verbose: verbose})
	if err != nil {
		return err
	}
	logger = l
	logger.Debug("runtime initialized", zap.String("command", cmd.Name()), zap.String("log", path))
	return nil
}

func runDeskCmd(cmd *cobra.Command, _ []string) error {
	delayMs := int(uiLoadDelay / time.Millisecond)
	applyIntConfig(cmd, "load-delay", &delayMs, fileCfg.UI.LoadDelayMs)
	if delayMs < 0 {
		return fmt.Errorf("load delay must be >= 0")
	}
	cfg, err := buildConfig(cmd, "page-size", uiPageSize)
	if err != nil {
		return err
	}
	cfg.LoadDelay = time.Duration(delayMs) * time.Millisecond

	ctx := context.Background()
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	handles, err := collection.OpenAll(ctx, st, cfg)
	if err != nil {
		return err
	}
	logger.Info("dashboard started", zap.Int("collections", len(handles)), zap.Duration("load_delay", cfg.LoadDelay))

	m := deskui.NewModel(st, handles, logger, deskui.Options{LoadDelay: cfg.LoadDelay})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <collection>",
		Short: "Print one page of a collection",
		Long:  "Print one page of a collection. Collections: " + strings.Join(collection.Names(), ", "),
		Args:  cobra.ExactArgs(1),
		RunE:  runListCmd,
	}
	cmd.Flags().StringVar(&listSearch, "search", "", "case-insensitive search text")
	cmd.Flags().StringArrayVar(&listFilters, "filter", nil, "filter as key=value (repeatable; same key ORs, different keys AND)")
	cmd.Flags().StringVar(&listSort, "sort", "", "sort key")
	cmd.Flags().BoolVar(&listDesc, "desc", false, "sort descending")
	cmd.Flags().IntVar(&listPage, "page", 1, "page number")
	cmd.Flags().IntVar(&listPageSize, "page-size", 0, "rows per page (default: per collection)")
	cmd.Flags().BoolVar(&listAll, "all", false, "print every page")
	return cmd
}

func runListCmd(cmd *cobra.Command, args []string) error {
	if listPage < 1 {
		return fmt.Errorf("--page must be >= 1")
	}
	filters, err := parseFilters(listFilters)
	if err != nil {
		return err
	}
	cfg, err := buildConfig(cmd, "page-size", listPageSize)
	if err != nil {
		return err
	}

	ctx := context.Background()
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	h, err := collection.Open(ctx, st, args[0], cfg)
	if err != nil {
		return err
	}
	if err := applyQuery(h, listSearch, filters, listSort, listDesc); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	width := 0
	if f, ok := out.(*os.File); ok {
		width = listing.TerminalWidth(f)
	}
	logger.Debug("list",
		zap.String("collection", h.Name()),
		zap.String("search", listSearch),
		zap.Strings("filters", listFilters),
		zap.Int("page", listPage),
		zap.Bool("all", listAll))

	if h.Mode() == pager.ModeIncremental {
		target := listPage
		if listAll {
			target = h.Snapshot().TotalPages
		}
		if err := loadPages(h, target); err != nil {
			return err
		}
		return listing.Render(out, h, width)
	}

	if !listAll {
		if !h.GoToPage(listPage) {
			return fmt.Errorf("page %d out of range (1-%d)", listPage, h.Snapshot().TotalPages)
		}
		return listing.Render(out, h, width)
	}
	for page := 1; page <= h.Snapshot().TotalPages; page++ {
		h.GoToPage(page)
		if page > 1 {
			if _, err := fmt.Fprintln(out); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		if err := listing.Render(out, h, width); err != nil {
			return err
		}
	}
	return nil
}

type filterArg struct {
	key   string
	value string
}

func parseFilters(values []string) ([]filterArg, error) {
	out := make([]filterArg, 0, len(values))
	for _, raw := range values {
		key, value, ok := strings.Cut(raw, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if !ok || key == "" || value == "" {
			return nil, fmt.Errorf("invalid --filter %q (expected key=value)", raw)
		}
		out = append(out, filterArg{key: strings.ToLower(key), value: value})
	}
	return out, nil
}

// applyQuery sets search, filters and sort on h. Filter values match the
// declared values case-insensitively.
func applyQuery(h collection.Handle, search string, filters []filterArg, sortKey string, desc bool) error {
	h.SetSearchText(search)
	for _, f := range filters {
		value, err := resolveFilterValue(h, f)
		if err != nil {
			return err
		}
		if h.Snapshot().Filters.Has(f.key, value) {
			continue
		}
		h.ToggleFilter(f.key, value)
	}
	if sortKey != "" && !h.SetSort(strings.ToLower(sortKey), desc) {
		return fmt.Errorf("unknown sort key %q for %s (available: %s)", sortKey, h.Name(), strings.Join(h.SortKeys(), ", "))
	}
	return nil
}

func resolveFilterValue(h collection.Handle, f filterArg) (string, error) {
	cats := h.Categories()
	keys := make([]string, 0, len(cats))
	for _, cat := range cats {
		keys = append(keys, cat.Key)
		if cat.Key != f.key {
			continue
		}
		for _, v := range cat.Values {
			if strings.EqualFold(v, f.value) {
				return v, nil
			}
		}
		return "", fmt.Errorf("unknown value %q for filter %s (available: %s)", f.value, f.key, strings.Join(cat.Values, ", "))
	}
	return "", fmt.Errorf("unknown filter %q for %s (available: %s)", f.key, h.Name(), strings.Join(keys, ", "))
}

// loadPages grows an incremental collection until page target is shown.
func loadPages(h collection.Handle, target int) error {
	for h.Snapshot().Page < target {
		ticket, ok := h.BeginLoadMore()
		if !ok {
			snap := h.Snapshot()
			if !snap.HasMore {
				return fmt.Errorf("page %d out of range (1-%d)", target, snap.TotalPages)
			}
			return fmt.Errorf("load more refused at page %d", snap.Page)
		}
		h.CompleteLoadMore(ticket)
	}
	return nil
}

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Regenerate the mock dataset",
		Args:  cobra.NoArgs,
		RunE:  runSeedCmd,
	}
	cmd.Flags().Int64Var(&seedValue, "seed", defaultSeed, "random seed")
	cmd.Flags().IntVar(&seedMembers, "members", defaultMembers, "number of members")
	cmd.Flags().IntVar(&seedSales, "sales", defaultSales, "number of sales")
	cmd.Flags().IntVar(&seedPosts, "posts", defaultPosts, "number of posts")
	cmd.Flags().IntVar(&seedCollections, "collections", defaultCollections, "number of collections")
	cmd.Flags().IntVar(&seedDownloads, "downloads", defaultDownloads, "number of download groups")
	return cmd
}

func runSeedCmd(cmd *cobra.Command, _ []string) error {
	applyInt64Config(cmd, "seed", &seedValue, fileCfg.Data.Seed)
	applyIntConfig(cmd, "members", &seedMembers, fileCfg.Data.Members)
	applyIntConfig(cmd, "sales", &seedSales, fileCfg.Data.Sales)
	applyIntConfig(cmd, "posts", &seedPosts, fileCfg.Data.Posts)
	applyIntConfig(cmd, "collections", &seedCollections, fileCfg.Data.Collections)
	applyIntConfig(cmd, "downloads", &seedDownloads, fileCfg.Data.Downloads)

	data := model.DataConfig{
		Seed:        seedValue,
		Members:     seedMembers,
		Sales:       seedSales,
		Posts:       seedPosts,
		Collections: seedCollections,
		Downloads:   seedDownloads,
	}
	if err := validateDataConfig(data); err != nil {
		return err
	}

	ctx := context.Background()
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	counts, err := seedStore(ctx, st, data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s records (members %s, sales %s, posts %s, collections %s, downloads %s)\n",
		humanize.Comma(int64(counts.Total())),
		humanize.Comma(int64(counts.Members)),
		humanize.Comma(int64(counts.Sales)),
		humanize.Comma(int64(counts.Posts)),
		humanize.Comma(int64(counts.Collections)),
		humanize.Comma(int64(counts.Downloads)))
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// buildConfig resolves per-group pager settings. A changed flag wins over the
// group section, which wins over [ui].
func buildConfig(cmd *cobra.Command, flagName string, flagPageSize int) (model.Config, error) {
	var cfg model.Config
	groups := []struct {
		name string
		file config.PagerConfig
		dst  *model.PagerConfig
	}{
		{collection.GroupAudience, fileCfg.Audience, &cfg.Audience},
		{collection.GroupLibrary, fileCfg.Library, &cfg.Library},
		{collection.GroupDownloads, fileCfg.Downloads, &cfg.Downloads},
	}
	for _, g := range groups {
		size := 0
		if fileCfg.UI.PageSize != nil {
			size = *fileCfg.UI.PageSize
		}
		if g.file.PageSize != nil {
			size = *g.file.PageSize
		}
		if cmd.Flags().Changed(flagName) {
			size = flagPageSize
		}
		if size < 0 {
			return model.Config{}, fmt.Errorf("page size for %s must be >= 0", g.name)
		}
		g.dst.PageSize = size
		applyScopeConfig(g.dst, g.file.Scope)
		if _, err := collection.ParseScope(g.dst.Scope); err != nil {
			return model.Config{}, fmt.Errorf("[%s] %w", g.name, err)
		}
	}
	return cfg, nil
}

// openStore opens the database and seeds it on first use.
func openStore(ctx context.Context) (*store.Store, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	counts, err := st.Counts(ctx)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to count records: %w", err)
	}
	if counts.Total() > 0 {
		return st, nil
	}
	data := defaultDataConfig()
	if err := validateDataConfig(data); err != nil {
		_ = st.Close()
		return nil, err
	}
	if _, err := seedStore(ctx, st, data); err != nil {
		_ = st.Close()
		return nil, err
	}
	logErrln("Seeded an empty database with mock data. Regenerate with: creatordesk seed")
	return st, nil
}

func seedStore(ctx context.Context, st *store.Store, data model.DataConfig) (store.Counts, error) {
	ds := dataset.New(data.Seed, time.Now()).Build(data)
	if err := st.Seed(ctx, ds); err != nil {
		return store.Counts{}, fmt.Errorf("failed to seed db: %w", err)
	}
	counts, err := st.Counts(ctx)
	if err != nil {
		return store.Counts{}, fmt.Errorf("failed to count records: %w", err)
	}
	logger.Info("dataset seeded", zap.Int64("seed", data.Seed), zap.Int("records", counts.Total()))
	return counts, nil
}

func defaultDataConfig() model.DataConfig {
	data := model.DataConfig{
		Seed:        defaultSeed,
		Members:     defaultMembers,
		Sales:       defaultSales,
		Posts:       defaultPosts,
		Collections: defaultCollections,
		Downloads:   defaultDownloads,
	}
	d := fileCfg.Data
	if d.Seed != nil {
		data.Seed = *d.Seed
	}
	for _, v := range []struct {
		dst *int
		src *int
	}{
		{&data.Members, d.Members},
		{&data.Sales, d.Sales},
		{&data.Posts, d.Posts},
		{&data.Collections, d.Collections},
		{&data.Downloads, d.Downloads},
	} {
		if v.src != nil {
			*v.dst = *v.src
		}
	}
	return data
}

func validateDataConfig(data model.DataConfig) error {
	counts := map[string]int{
		"members":     data.Members,
		"sales":       data.Sales,
		"posts":       data.Posts,
		"collections": data.Collections,
		"downloads":   data.Downloads,
	}
	for _, name := range collection.Names() {
		if counts[name] < 0 {
			return fmt.Errorf("--%s must be >= 0", name)
		}
	}
	return nil
}

func applyScopeConfig(dst *model.PagerConfig, value *string) {
	if value == nil {
		return
	}
	dst.Scope = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# creatordesk configuration
# Uncomment a value to enable it. CLI flags override config values.

[ui]
# page-size = 10          # Rows per page for every collection
# load-delay-ms = %d     # Simulated latency of load-more and refresh

[audience]                # Members and sales
# page-size = 10
# selection-scope = "page"   # "page" or "filtered"

[library]                 # Posts and collections
# page-size = 12
# selection-scope = "page"

[downloads]
# page-size = 8
# selection-scope = "page"

[data]
# seed = %d
# members = %d
# sales = %d
# posts = %d
# collections = %d
# downloads = %d

[log]
# level = "info"          # debug, info, warn or error
# file = ""               # Default: $XDG_STATE_HOME/creatordesk/creatordesk.log
`,
		int(defaultLoadDelay/time.Millisecond),
		defaultSeed,
		defaultMembers,
		defaultSales,
		defaultPosts,
		defaultCollections,
		defaultDownloads,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
