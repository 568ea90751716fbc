// Command deckcheck validates a CSV deck list against Commander (EDH)
// deck-construction rules using the Scryfall API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"

	"github.com/ramonehamilton/deckcheck/internal/config"
	"github.com/ramonehamilton/deckcheck/internal/deck"
	"github.com/ramonehamilton/deckcheck/internal/report"
	"github.com/ramonehamilton/deckcheck/internal/scryfall"
	"github.com/ramonehamilton/deckcheck/internal/storage"
)

// Exit codes: 0 = no blocking issues, 1 = blocking issues or run failure,
// 2 = input/usage error.
const (
	exitOK     = 0
	exitIssues = 1
	exitInput  = 2
)

var (
	csvPath   = flag.String("csv", "", "Path to CSV deck list with required columns: Card name, Set code / Set name")
	outPrefix = flag.String("out-prefix", "", "Output file prefix (writes .txt and .json; default from config)")
	noCache   = flag.Bool("no-cache", false, "Disable the on-disk Scryfall response cache")
	cachePath = flag.String("cache-path", "", "Override the cache database path")
	watchMode = flag.Bool("watch", false, "Watch the CSV file and re-validate on change")

	debugMode      = flag.Bool("debug-mode", false, "Enable verbose debug logging")
	debugModeShort = flag.Bool("d", false, "Enable debug logging (shorthand for -debug-mode)")

	commanders stringList
)

func init() {
	flag.Var(&commanders, "commander", "Commander name. Repeat or comma-separate two names for partners.")
}

// stringList collects repeated or comma-separated flag values.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*s = append(*s, part)
		}
	}
	return nil
}

func debugf(format string, args ...interface{}) {
	if *debugMode {
		log.Printf("[debug] "+format, args...)
	}
}

func main() {
	flag.Parse()
	if *debugModeShort {
		*debugMode = true
	}

	if *csvPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -csv is required")
		flag.Usage()
		os.Exit(exitInput)
	}
	if _, err := os.Stat(*csvPath); err != nil {
		fmt.Fprintf(os.Stderr, "CSV not found: %s\n", *csvPath)
		os.Exit(exitInput)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Warning: failed to load config, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}

	prefix := cfg.Output.OutPrefix
	if *outPrefix != "" {
		prefix = *outPrefix
	}

	app := &app{cfg: cfg, outPrefix: prefix}

	code := app.run()
	if *watchMode {
		code = app.watch(code)
	}
	// os.Exit skips deferred calls; release the cache database explicitly.
	app.close()
	os.Exit(code)
}

// app carries the collaborators shared across validation runs.
type app struct {
	cfg       *config.Config
	outPrefix string

	db     *storage.DB
	opened bool
}

// close releases the cache database, if one was opened.
func (a *app) close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			log.Printf("Warning: failed to close cache database: %v", err)
		}
		a.db = nil
	}
}

// cacheDB lazily opens the cache database. Open failures disable caching
// for the rest of the process; the cache is advisory only.
func (a *app) cacheDB() *storage.DB {
	if a.opened {
		return a.db
	}
	a.opened = true

	if *noCache || !a.cfg.Cache.Enabled {
		return nil
	}

	path := a.cfg.Cache.Path
	if *cachePath != "" {
		path = *cachePath
	}
	if path == "" {
		var err error
		path, err = storage.DefaultPath()
		if err != nil {
			log.Printf("Warning: cache disabled: %v", err)
			return nil
		}
	}

	db, err := storage.Open(storage.DefaultConfig(path))
	if err != nil {
		log.Printf("Warning: cache disabled: %v", err)
		return nil
	}
	debugf("response cache at %s", path)
	a.db = db
	return db
}

// run performs one load-resolve-validate-report cycle and returns the
// process exit code for it.
func (a *app) run() int {
	rows, err := deck.LoadCSV(*csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse CSV: %v\n", err)
		return exitInput
	}
	debugf("loaded %d rows from %s", len(rows), *csvPath)

	if len(commanders) > 2 {
		fmt.Fprintln(os.Stderr, "Error: -commander accepts at most two names")
		return exitInput
	}
	for _, name := range deck.MarkCommanders(rows, commanders) {
		log.Printf("Warning: commander %q does not match any row in the deck list", name)
	}

	client := scryfall.NewClient()
	if a.cfg.Scryfall.BaseURL != "" {
		client.SetBaseURL(a.cfg.Scryfall.BaseURL)
	}
	client.SetUserAgent(a.cfg.Scryfall.UserAgent)
	source := scryfall.NewSource(client)

	var cache deck.Cache = deck.NopCache{}
	var sets deck.SetDirectory = source
	if db := a.cacheDB(); db != nil {
		ttl := a.cfg.CacheTTL()
		cache = storage.NewCache(db, ttl)
		sets = storage.NewCachedSetDirectory(db, source, ttl)
	}

	ctx := context.Background()
	resolver := deck.NewResolver(source, sets, cache)
	resolved, err := resolver.Resolve(ctx, rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Card resolution failed: %v\n", err)
		return exitIssues
	}
	debugf("resolved %d of %d rows", len(resolved), len(rows))

	result := deck.Validate(rows, resolved)

	if dir := filepath.Dir(a.outPrefix); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
			return exitIssues
		}
	}

	writer := report.NewWriter(report.Options{
		OutPrefix:  a.outPrefix,
		PrettyJSON: a.cfg.Output.PrettyJSON,
	})
	txtPath, err := writer.WriteText(rows, resolved)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write decklist: %v\n", err)
		return exitIssues
	}
	jsonPath, err := writer.WriteJSON(rows, resolved, result)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write JSON report: %v\n", err)
		return exitIssues
	}

	report.PrintSummary(os.Stdout, result, txtPath, jsonPath)

	if len(result.Issues) > 0 {
		return exitIssues
	}
	return exitOK
}

// watch re-runs validation whenever the CSV file changes, until
// interrupted. Returns the exit code of the most recent run.
func (a *app) watch(code int) int {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("Error: failed to create file watcher: %v", err)
		return code
	}
	defer func() { _ = watcher.Close() }()

	// Watch the containing directory: editors often replace the file on
	// save, which drops a watch placed on the file itself.
	dir := filepath.Dir(*csvPath)
	if err := watcher.Add(dir); err != nil {
		log.Printf("Error: failed to watch %s: %v", dir, err)
		return code
	}

	target, err := filepath.Abs(*csvPath)
	if err != nil {
		target = *csvPath
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Printf("Watching %s for changes (Ctrl-C to stop)", *csvPath)
	for {
		select {
		case <-sigChan:
			return code
		case event, ok := <-watcher.Events:
			if !ok {
				return code
			}
			path, err := filepath.Abs(event.Name)
			if err != nil || path != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			log.Printf("Deck list changed, re-validating")
			code = a.run()
		case err, ok := <-watcher.Errors:
			if !ok {
				return code
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}
