package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"hoard/internal/checker"
	"hoard/internal/config"
	"hoard/internal/exporter"
	"hoard/internal/httpd"
	"hoard/internal/importer"
	"hoard/internal/intake"
	"hoard/internal/kv"
	"hoard/internal/logger"
	"hoard/internal/model"
	"hoard/internal/picker"
	"hoard/internal/search"
	"hoard/internal/store"
	"hoard/internal/tui"
)

func main() {
	cfg := loadConfig()

	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "import":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: hoard import <file.html>\n")
				os.Exit(1)
			}
			runImport(cfg, os.Args[2])
			return
		case "export":
			var outputPath string
			if len(os.Args) >= 3 {
				outputPath = os.Args[2]
			}
			runExport(cfg, outputPath)
			return
		case "share":
			runShare(cfg, os.Args[2:])
			return
		case "serve":
			runServe(cfg)
			return
		case "check":
			runCheck(cfg)
			return
		case "deeplink":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: hoard deeplink <bookmark-id>\n")
				os.Exit(1)
			}
			runTUI(cfg, os.Args[2])
			return
		default:
			// Treat as search query (join all remaining args)
			query := strings.Join(os.Args[1:], " ")
			runQuickSearch(cfg, query)
			return
		}
	}

	// No args - run full TUI
	runTUI(cfg, "")
}

func printHelp() {
	help := `hoard - reactive bookmark manager

Usage:
  hoard                 Open interactive TUI
  hoard <query>         Quick search -> select -> open
  hoard share [text]    Save shared text (or stdin/clipboard) as a bookmark
  hoard deeplink <id>   Open the TUI on one bookmark's detail screen
  hoard serve           Run the HTTP intake endpoint
  hoard check           Probe all bookmark URLs for dead links
  hoard import <file>   Import bookmarks from Netscape HTML
  hoard export [path]   Export bookmarks to Netscape HTML
  hoard help            Show this help

TUI Keybindings:
  Navigation:
    j/k         Move down/up
    gg/G        Jump to top/bottom
    enter       Open detail view
    h/esc       Go back

  Actions:
    a           Add bookmark
    e           Edit notes (detail view)
    d           Delete (with confirmation)
    X           Clear all bookmarks
    /           Filter list
    Y           Copy URL to clipboard
    q           Quit

Configuration:
  ~/.config/hoard/config.json (backend: file, sqlite or redis)
`
	fmt.Print(help)
}

func loadConfig() *config.Config {
	path, err := config.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving config path: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// openRepo builds the repository for the configured backend.
func openRepo(cfg *config.Config, log logger.Logger) (store.Repository, func()) {
	switch cfg.Backend {
	case config.BackendSQLite:
		kvStore, err := kv.NewSQLiteStore(filepath.Join(cfg.DataDir, "hoard.db"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening sqlite store: %v\n", err)
			os.Exit(1)
		}
		return store.New(kvStore, log), func() { _ = kvStore.Close() }

	case config.BackendRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		kvStore, err := kv.NewRedisStore(ctx, kv.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error connecting to redis: %v\n", err)
			os.Exit(1)
		}
		return store.New(kvStore, log), func() { _ = kvStore.Close() }

	default:
		return store.New(kv.NewFileStore(cfg.DataDir), log), func() {}
	}
}

// runTUI runs the full interactive TUI. A non-empty deeplink id is
// published before startup so the list controller drains it and the app
// opens straight on that bookmark's detail screen.
func runTUI(cfg *config.Config, deeplink string) {
	log := logger.Nop() // stdout belongs to the TUI
	repo, closeRepo := openRepo(cfg, log)
	defer closeRepo()

	queue := intake.NewQueue(log)

	app := tui.NewApp(tui.AppParams{
		Repo:     repo,
		Queue:    queue,
		Log:      log,
		Debounce: time.Duration(cfg.SearchDebounceMS) * time.Millisecond,
	})

	// Published after NewApp so the app's event subscription is already in
	// place when the controller drains the slot; one-shot events are not
	// replayed to late subscribers.
	if deeplink != "" {
		queue.PublishDeeplink(deeplink)
	}
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// runQuickSearch performs a fuzzy search and opens the selected bookmark.
func runQuickSearch(cfg *config.Config, query string) {
	log := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = log.Sync() }()

	repo, closeRepo := openRepo(cfg, log)
	defer closeRepo()

	bookmarks, err := repo.List(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading bookmarks: %v\n", err)
		os.Exit(1)
	}

	results := search.Fuzzy(bookmarks, query)
	if len(results) == 0 {
		fmt.Printf("No bookmarks found for '%s'\n", query)
		os.Exit(0)
	}

	var selected *model.Bookmark

	if len(results) == 1 {
		// Single result - select it directly
		selected = &results[0].Bookmark
		fmt.Printf("Opening: %s\n", selected.Title)
	} else {
		// Multiple results - show picker
		p := picker.New(results, query)
		program := tea.NewProgram(p)
		finalModel, err := program.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
			os.Exit(1)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			os.Exit(0)
		}
		selected = finalPicker.SelectedBookmark()
	}

	if selected == nil {
		os.Exit(0)
	}

	openURL(selected.URL)
}

// openURL opens a URL in the default browser.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}

// runShare saves shared text as a bookmark: from the arguments, the
// clipboard with --clipboard, or stdin otherwise.
func runShare(cfg *config.Config, args []string) {
	log := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = log.Sync() }()

	var text string
	switch {
	case len(args) > 0 && args[0] == "--clipboard":
		var err error
		text, err = clipboard.ReadAll()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading clipboard: %v\n", err)
			os.Exit(1)
		}
	case len(args) > 0:
		text = strings.Join(args, " ")
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
		text = string(data)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		fmt.Fprintln(os.Stderr, "Nothing to share")
		os.Exit(1)
	}

	repo, closeRepo := openRepo(cfg, log)
	defer closeRepo()

	content := intake.ExtractShared(text)
	bookmark := model.NewBookmark(model.NewBookmarkParams{
		Title: content.Title,
		URL:   content.URL,
	})
	if err := repo.Add(context.Background(), bookmark); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving bookmark: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Saved: %s\n", bookmark.Title)
}

// runServe runs the HTTP intake endpoint until interrupted. Incoming
// shares are persisted as bookmarks; deep links are logged only, since no
// UI is attached.
func runServe(cfg *config.Config) {
	log := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = log.Sync() }()

	repo, closeRepo := openRepo(cfg, log)
	defer closeRepo()

	queue := intake.NewQueue(log)
	drainQueue(queue, repo, log)

	srv := httpd.NewServer(httpd.ServerParams{
		Addr:  cfg.ListenAddr,
		Queue: queue,
		Log:   log,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server failed", logger.Error(err))
			os.Exit(1)
		}
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Stop(ctx); err != nil {
			log.Error("shutdown failed", logger.Error(err))
		}
	}
}

// drainQueue persists every shared payload that lands in the queue.
func drainQueue(queue *intake.Queue, repo store.Repository, log logger.Logger) {
	ch, _ := queue.Share().Subscribe()
	go func() {
		for {
			if text := queue.Share().Get(); text != "" {
				queue.ConsumeShare()
				content := intake.ExtractShared(text)
				bookmark := model.NewBookmark(model.NewBookmarkParams{
					Title: content.Title,
					URL:   content.URL,
				})
				if err := repo.Add(context.Background(), bookmark); err != nil {
					log.Error("failed to save shared bookmark", logger.Error(err))
				} else {
					log.Info("saved shared bookmark", logger.String("title", bookmark.Title))
				}
				continue
			}
			if _, ok := <-ch; !ok {
				return
			}
		}
	}()

	deepCh, _ := queue.Deeplink().Subscribe()
	go func() {
		for {
			if id := queue.Deeplink().Get(); id != "" {
				queue.ConsumeDeeplink()
				log.Info("deep link received", logger.String("id", id))
				continue
			}
			if _, ok := <-deepCh; !ok {
				return
			}
		}
	}()
}

// runCheck probes every bookmark URL and reports dead or unreachable ones.
func runCheck(cfg *config.Config) {
	log := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = log.Sync() }()

	repo, closeRepo := openRepo(cfg, log)
	defer closeRepo()

	bookmarks, err := repo.List(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading bookmarks: %v\n", err)
		os.Exit(1)
	}
	if len(bookmarks) == 0 {
		fmt.Println("No bookmarks to check")
		return
	}

	results := checker.CheckURLs(bookmarks, checker.Params{
		Concurrency: 8,
		Timeout:     10 * time.Second,
		OnProgress: func(completed, total int) {
			fmt.Printf("\rChecking %d/%d", completed, total)
		},
	})
	fmt.Println()

	healthy := 0
	for _, result := range results {
		switch result.Status {
		case checker.Healthy:
			healthy++
		case checker.Dead:
			fmt.Printf("DEAD        %s (%d)\n  %s\n", result.Bookmark.Title, result.StatusCode, result.Bookmark.URL)
		case checker.Unreachable:
			fmt.Printf("UNREACHABLE %s (%s)\n  %s\n", result.Bookmark.Title, result.Error, result.Bookmark.URL)
		}
	}
	fmt.Printf("%d checked, %d healthy\n", len(results), healthy)
}

// runImport handles the import subcommand.
func runImport(cfg *config.Config, filePath string) {
	log := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = log.Sync() }()

	repo, closeRepo := openRepo(cfg, log)
	defer closeRepo()

	file, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	bookmarks, err := importer.ParseHTMLBookmarks(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing HTML: %v\n", err)
		os.Exit(1)
	}

	// Skip URLs that are already stored.
	existing, err := repo.List(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading bookmarks: %v\n", err)
		os.Exit(1)
	}
	known := make(map[string]bool, len(existing))
	for _, b := range existing {
		known[b.URL] = true
	}

	added, skipped := 0, 0
	for _, bookmark := range bookmarks {
		if known[bookmark.URL] {
			skipped++
			continue
		}
		if err := repo.Add(context.Background(), bookmark); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving bookmarks: %v\n", err)
			os.Exit(1)
		}
		known[bookmark.URL] = true
		added++
	}

	fmt.Printf("Imported %d bookmarks", added)
	if skipped > 0 {
		fmt.Printf(" (%d duplicates skipped)", skipped)
	}
	fmt.Println()
}

// runExport handles the export subcommand.
func runExport(cfg *config.Config, outputPath string) {
	log := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = log.Sync() }()

	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting default export path: %v\n", err)
			os.Exit(1)
		}
	}

	repo, closeRepo := openRepo(cfg, log)
	defer closeRepo()

	bookmarks, err := repo.List(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading bookmarks: %v\n", err)
		os.Exit(1)
	}

	html := exporter.ExportHTML(bookmarks)
	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d bookmarks to %s\n", len(bookmarks), outputPath)
}
