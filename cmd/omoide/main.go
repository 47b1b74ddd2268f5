// Package main is the Omoide CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hyperjump/omoide/internal/cli"
	"github.com/hyperjump/omoide/internal/config"
	"github.com/hyperjump/omoide/internal/fuzzy"
	"github.com/hyperjump/omoide/internal/models"
	"github.com/hyperjump/omoide/internal/search"
	"github.com/hyperjump/omoide/internal/server"
	"github.com/hyperjump/omoide/internal/store"
	"github.com/hyperjump/omoide/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/omoide/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// serverURLDefault returns the default server URL, honoring OMOIDE_SERVER.
func serverURLDefault() string {
	if v := os.Getenv("OMOIDE_SERVER"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "add":
		runAdd()
	case "get":
		runGet()
	case "delete":
		runDelete()
	case "related":
		runRelated()
	case "tags":
		runTags()
	case "types":
		runTypes()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("omoide version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// components holds the initialized store and engine for direct-storage mode.
type components struct {
	Store   store.Store
	Matcher *fuzzy.BleveMatcher
	Engine  *search.Engine
}

func (c *components) Close() {
	if c.Matcher != nil {
		_ = c.Matcher.Close()
	}
	if c.Store != nil {
		_ = c.Store.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*components, error) {
	st, err := store.NewSQLiteStore(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	matcher := fuzzy.NewBleveMatcher(&cfg.Search.Fuzzy)
	suggester := fuzzy.NewSuggester()
	engine := search.NewEngine(matcher, suggester, &cfg.Search, logger)
	return &components{Store: st, Matcher: matcher, Engine: engine}, nil
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	comps, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer comps.Close()

	srv := server.NewServer(comps.Engine, comps.Store, cfg, logger)
	srvCtx, srvCancel := context.WithCancel(context.Background())
	defer srvCancel()
	go func() {
		if err := srv.Start(srvCtx); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	srvCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// buildQuery joins all positional args with spaces so multi-word queries work
// the same with or without shell quoting.
func buildQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// reorderArgs moves any flags (and their values) that appear after the query
// to the front of the slice so that flag.Parse() sees them. Go's flag package
// stops at the first non-flag argument.
func reorderArgs(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: omoide search [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  omoide search beach
  omoide search "family trip"                # same as: omoide search family trip
  omoide search --semantic summer holidays   # keyword-frequency scoring instead of fuzzy
  omoide search --type photo --tag family beach
  omoide search --from 2024-01-01 --to 2024-12-31 beach
  omoide search --sort date --type journal   # no query, filters only
`)
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (for direct storage mode)")
	serverURL := fs.String("server", serverURLDefault(), "server URL (empty = use direct storage)")
	memType := fs.String("type", "", "filter by memory type")
	tags := fs.String("tag", "", "filter by tags (comma-separated, all must match)")
	from := fs.String("from", "", "filter by date range start (YYYY-MM-DD)")
	to := fs.String("to", "", "filter by date range end (YYYY-MM-DD)")
	emotion := fs.String("emotion", "", "filter by emotion")
	semantic := fs.Bool("semantic", false, "use keyword-frequency scoring instead of fuzzy matching")
	sortBy := fs.String("sort", "", "sort order for filter-only searches: relevance, date, or title")
	outputFormat := fs.String("output", "text", "output format: text or json")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(reorderArgs(os.Args[2:]))

	filters := models.SearchFilters{
		Query:          buildQuery(fs.Args()),
		Type:           *memType,
		DateFrom:       *from,
		DateTo:         *to,
		Emotion:        *emotion,
		SemanticSearch: *semantic,
		SortBy:         models.SortMode(*sortBy),
	}
	if *tags != "" {
		for _, tag := range strings.Split(*tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				filters.Tags = append(filters.Tags, tag)
			}
		}
	}
	if filters.Query == "" && !filters.HasActiveFilters() {
		printSearchUsage(fs)
		os.Exit(1)
	}

	format, err := cli.ParseFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var response *models.SearchResponse
	if *serverURL != "" {
		response, err = searchViaHTTP(*serverURL, &filters)
	} else {
		response, err = searchDirect(*configPath, &filters)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func searchDirect(configPath string, filters *models.SearchFilters) (*models.SearchResponse, error) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		return nil, err
	}
	defer logger.Sync()

	comps, err := initializeComponents(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer comps.Close()

	memories, ver, err := comps.Store.ListMemories(context.Background())
	if err != nil {
		return nil, err
	}
	snap := search.Snapshot{Memories: memories, Version: ver}
	return comps.Engine.Search(snap, filters), nil
}

func searchViaHTTP(serverURL string, filters *models.SearchFilters) (*models.SearchResponse, error) {
	body, err := json.Marshal(map[string]interface{}{"filters": filters})
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runAdd() {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	serverURL := fs.String("server", serverURLDefault(), "server URL")
	id := fs.String("id", "", "memory id (generated when empty)")
	title := fs.String("title", "", "memory title")
	tags := fs.String("tag", "", "tags (comma-separated)")
	memType := fs.String("type", "", "memory type")
	date := fs.String("date", "", "memory date (YYYY-MM-DD)")
	_ = fs.Parse(reorderArgs(os.Args[2:]))

	content := buildQuery(fs.Args())
	if content == "" {
		fmt.Println("Usage: omoide add [flags] <content>")
		os.Exit(1)
	}
	input := models.MemoryInput{
		ID:      *id,
		Title:   *title,
		Content: content,
		Type:    *memType,
		Date:    *date,
	}
	if *tags != "" {
		for _, tag := range strings.Split(*tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				input.Tags = append(input.Tags, tag)
			}
		}
	}

	body, _ := json.Marshal(input)
	resp, err := http.Post(*serverURL+"/api/v1/memories", "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "Add failed (%d): %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	var out struct {
		ID string `json:"id"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	fmt.Printf("Memory added: %s\n", out.ID)
}

func runGet() {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	serverURL := fs.String("server", serverURLDefault(), "server URL")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: omoide get [flags] <memory-id>")
		os.Exit(1)
	}
	resp, err := http.Get(*serverURL + "/api/v1/memories/" + url.PathEscape(fs.Arg(0)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "Get failed (%d): %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	var pretty bytes.Buffer
	b, _ := io.ReadAll(resp.Body)
	if err := json.Indent(&pretty, b, "", "  "); err != nil {
		fmt.Println(string(b))
		return
	}
	fmt.Println(pretty.String())
}

func runDelete() {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	serverURL := fs.String("server", serverURLDefault(), "server URL")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: omoide delete [flags] <memory-id>")
		os.Exit(1)
	}
	id := fs.Arg(0)
	req, _ := http.NewRequest(http.MethodDelete, *serverURL+"/api/v1/memories/"+url.PathEscape(id), nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "Delete failed (%d): %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	fmt.Printf("Memory deleted: %s\n", id)
}

func runRelated() {
	fs := flag.NewFlagSet("related", flag.ExitOnError)
	serverURL := fs.String("server", serverURLDefault(), "server URL")
	limit := fs.Int("limit", 0, "number of related memories (0 = server default)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(reorderArgs(os.Args[2:]))

	if fs.NArg() < 1 {
		fmt.Println("Usage: omoide related [flags] <memory-id>")
		os.Exit(1)
	}
	format, err := cli.ParseFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	endpoint := *serverURL + "/api/v1/memories/" + url.PathEscape(fs.Arg(0)) + "/related"
	if *limit > 0 {
		endpoint += fmt.Sprintf("?limit=%d", *limit)
	}
	resp, err := http.Get(endpoint)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "Related failed (%d): %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	var out struct {
		Related []*models.RelatedResult `json:"related"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		fmt.Fprintf(os.Stderr, "Parse failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteRelated(os.Stdout, out.Related, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runTags()  { listFacet("tags") }
func runTypes() { listFacet("types") }

func listFacet(facet string) {
	fs := flag.NewFlagSet(facet, flag.ExitOnError)
	serverURL := fs.String("server", serverURLDefault(), "server URL")
	_ = fs.Parse(os.Args[2:])

	resp, err := http.Get(*serverURL + "/api/v1/" + facet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "List failed (%d): %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	var out map[string][]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		fmt.Fprintf(os.Stderr, "Parse failed: %v\n", err)
		os.Exit(1)
	}
	for _, v := range out[facet] {
		fmt.Println(v)
	}
}

// statusResponse is the shape of GET /api/v1/status.
type statusResponse struct {
	Memories       int64                  `json:"memories"`
	DiskUsageBytes *int64                 `json:"disk_usage_bytes,omitempty"`
	Config         map[string]interface{} `json:"config,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (for direct storage mode)")
	serverURL := fs.String("server", serverURLDefault(), "server URL (empty = use direct storage)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status statusResponse
	if *serverURL != "" {
		res, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = *res
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		st, err := store.NewSQLiteStore(cfg.Storage.DatabasePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open storage: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()
		count, err := st.CountMemories(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count memories failed: %v\n", err)
			os.Exit(1)
		}
		status = statusResponse{
			Memories: count,
			Config: map[string]interface{}{
				"database_path": cfg.Storage.DatabasePath,
				"import_dir":    cfg.Storage.ImportDir,
			},
		}
		if diskBytes, err := store.DiskUsageBytes(cfg.Storage.DatabasePath); err == nil {
			status.DiskUsageBytes = &diskBytes
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("memories:          %d\n", status.Memories)
		if status.DiskUsageBytes != nil {
			fmt.Printf("disk_usage_bytes:  %d\n", *status.DiskUsageBytes)
		}
		if len(status.Config) > 0 {
			fmt.Println()
			fmt.Println("# configuration")
			for _, key := range []string{"database_path", "import_dir", "related_limit", "snippet_length", "suggestions"} {
				if v, ok := status.Config[key]; ok && v != "" {
					fmt.Printf("%-18s %v\n", key+":", v)
				}
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*statusResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

func printUsage() {
	fmt.Println(`omoide - Local memory search engine

Usage:
  omoide server [flags]            Start the HTTP server
  omoide search [flags] <query>    Search memories (query and/or filters)
  omoide add [flags] <content>     Add a memory
  omoide get [flags] <id>          Show a memory
  omoide delete [flags] <id>       Delete a memory
  omoide related [flags] <id>      List memories related to one
  omoide tags [flags]              List all tags in use
  omoide types [flags]             List all memory types in use
  omoide status [flags]            Show storage status
  omoide version                   Show version
  omoide help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/omoide/config.yaml)
  --debug            Enable debug logging

Search Flags:
  --config string    Config file path (for direct storage mode)
  --server string    Server URL (default: http://localhost:8080, or $OMOIDE_SERVER).
                     Use empty (--server "") for direct storage when the server is not running.
  --type string      Filter by memory type
  --tag string       Filter by tags (comma-separated, all must match)
  --from string      Date range start (YYYY-MM-DD)
  --to string        Date range end (YYYY-MM-DD)
  --emotion string   Filter by emotion
  --semantic         Keyword-frequency scoring instead of fuzzy matching
  --sort string      Sort for filter-only searches: relevance, date, or title
  --output string    Output format: text or json

Examples:
  omoide server
  omoide add --title "Family Trip" --tag family,beach "We went to the beach"
  omoide search beach
  omoide search --semantic "summer holidays"
  omoide search --type photo --from 2024-01-01 --to 2024-12-31
  omoide related mem-123 --limit 3
  omoide status --output json`)
}
