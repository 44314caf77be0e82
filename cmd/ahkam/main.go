package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/vanderheijden86/ahkam/internal/datasource"
	"github.com/vanderheijden86/ahkam/pkg/config"
	"github.com/vanderheijden86/ahkam/pkg/content"
	"github.com/vanderheijden86/ahkam/pkg/debug"
	"github.com/vanderheijden86/ahkam/pkg/export"
	"github.com/vanderheijden86/ahkam/pkg/hooks"
	"github.com/vanderheijden86/ahkam/pkg/metrics"
	"github.com/vanderheijden86/ahkam/pkg/ui"
	"github.com/vanderheijden86/ahkam/pkg/version"
	"github.com/vanderheijden86/ahkam/pkg/watcher"
)

const defaultPrintWidth = 80

func main() {
	contentPath := flag.String("content", "", "Read the notes from a YAML file instead of the built-in copy")
	watchFlag := flag.Bool("watch", false, "Reload when the content file changes")
	chapterFlag := flag.String("chapter", "", "Open at the chapter with this id")
	pickFlag := flag.Bool("pick", false, "Choose the starting chapter from a list")
	printFlag := flag.Bool("print", false, "Print the notes and exit")
	exportMD := flag.String("export-md", "", "Write the notes as Markdown to this file and exit")
	noHooks := flag.Bool("no-hooks", false, "Skip the export hooks in hooks.yaml")
	robotChapters := flag.Bool("robot-chapters", false, "Print the chapter index as JSON and exit")
	configPath := flag.String("config", "", "Config file (default $XDG_CONFIG_HOME/ahkam/config.yaml)")
	cpuProfile := flag.String("cpu-profile", "", "Write CPU profile to file")
	metricsFlag := flag.Bool("metrics", false, "Print timing metrics to stderr on exit")
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *help {
		fmt.Println("Usage: ahkam [options]")
		fmt.Println("\nReader for the bilingual notes on the rulings of Hajj.")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("ahkam %s\n", version.Version)
		os.Exit(0)
	}

	if *metricsFlag {
		defer metrics.WriteReport(os.Stderr)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		// Non-fatal: continue with defaults
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}

	doc, src, err := datasource.Load(datasource.DiscoveryOptions{
		FlagPath:   *contentPath,
		ConfigPath: cfg.Content.Path,
		Verbose:    debug.Enabled(),
		Logger:     func(msg string) { debug.Log("datasource: %s", msg) },
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading notes: %v\n", err)
		os.Exit(1)
	}

	switch {
	case *robotChapters:
		if err := export.WriteChapterIndex(os.Stdout, doc); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return

	case *exportMD != "":
		if err := exportMarkdown(os.Stdout, doc, *exportMD, hooksDir(*configPath), *noHooks); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
			os.Exit(1)
		}
		return

	case *printFlag:
		tty, width := stdoutTerminal()
		if err := printDocument(os.Stdout, doc, cfg.UI.GlamourStyle, tty, width); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	start, err := startChapter(doc, *chapterFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if *pickFlag {
		start, err = ui.PickChapter(doc, start)
		if errors.Is(err, huh.ErrUserAborted) {
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watchErrs := make(chan error, 4)
	var w *watcher.Watcher
	reloadPath := ""
	if src.Type != datasource.SourceTypeEmbedded {
		reloadPath = src.Path
	}
	if (*watchFlag || cfg.Content.Watch) && reloadPath != "" {
		w, err = startWatcher(ctx, reloadPath, watchErrs)
		if err != nil {
			// Non-fatal: the reader works without live reload
			fmt.Fprintf(os.Stderr, "Warning: live reload disabled: %v\n", err)
			w = nil
		}
	}

	closeLog, err := debug.ToFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		closeLog = func() error { return nil }
	}
	defer closeLog()

	m, err := ui.NewModel(doc, ui.Options{
		Config:       cfg,
		ContentPath:  reloadPath,
		Watcher:      w,
		StartChapter: start,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer m.Stop()

	if err := runTUIProgram(m, watchErrs); err != nil {
		fmt.Fprintf(os.Stderr, "Error running ahkam: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads path, or the default config location when path is empty.
func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// hooksDir is the directory holding hooks.yaml: next to --config when given.
func hooksDir(configPath string) string {
	if configPath != "" {
		return filepath.Dir(configPath)
	}
	return config.ConfigDir()
}

// exportMarkdown writes the document to path between the pre- and
// post-export hooks.
func exportMarkdown(out io.Writer, doc content.Document, path, dir string, noHooks bool) error {
	executor, err := hooks.RunHooks(dir, hooks.ExportContext{
		ExportPath:   path,
		ExportFormat: "markdown",
		ChapterCount: len(doc.Chapters),
		Timestamp:    time.Now(),
	}, noHooks)
	if err != nil {
		// Non-fatal: a broken hooks file should not block the export
		fmt.Fprintf(os.Stderr, "Warning: %v (hooks skipped)\n", err)
		executor = nil
	}

	if executor != nil {
		if err := executor.RunPreExport(); err != nil {
			return err
		}
	}
	if err := export.SaveMarkdownToFile(doc, path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %d chapters to %s\n", len(doc.Chapters), path)

	if executor != nil {
		if err := executor.RunPostExport(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		if s := executor.Summary(); s != "" {
			fmt.Fprintln(out, s)
		}
	}
	return nil
}

// startChapter validates the --chapter value. Empty means the first chapter.
func startChapter(doc content.Document, id string) (string, error) {
	if id == "" {
		return "", nil
	}
	if _, ok := doc.Chapter(id); !ok {
		ids := make([]string, len(doc.Chapters))
		for i, ch := range doc.Chapters {
			ids[i] = ch.ID
		}
		return "", fmt.Errorf("unknown chapter %q (have %v)", id, ids)
	}
	return id, nil
}

func stdoutTerminal() (bool, int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return false, defaultPrintWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		width = defaultPrintWidth
	}
	return true, width
}

// printDocument writes the notes as Markdown, rendered for the terminal when
// out is one.
func printDocument(out io.Writer, doc content.Document, style string, tty bool, width int) error {
	md := export.GenerateMarkdown(doc)
	if tty {
		if rendered, err := ui.RenderMarkdown(md, width, style); err == nil {
			md = rendered
		} else {
			debug.Log("print: glamour failed, writing raw markdown: %v", err)
		}
	}
	_, err := io.WriteString(out, md)
	return err
}

func startWatcher(ctx context.Context, path string, errs chan<- error) (*watcher.Watcher, error) {
	w, err := watcher.NewWatcher(path,
		watcher.WithOnError(func(err error) {
			select {
			case errs <- err:
			default:
			}
		}),
	)
	if err != nil {
		return nil, err
	}
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	debug.Log("watching %s (polling=%v, fs=%s)", path, w.IsPolling(), w.FilesystemType())
	return w, nil
}

func runTUIProgram(m ui.Model, watchErrs <-chan error) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Watcher failures show up in the footer.
	go func() {
		for {
			select {
			case <-runDone:
				return
			case err := <-watchErrs:
				p.Send(ui.WatchErrorMsg{Err: err})
			}
		}
	}()

	// Optional auto-quit for automated tests: set AHKAM_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("AHKAM_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}
