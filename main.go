package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/sadopc/studytrack/internal/absence"
	"github.com/sadopc/studytrack/internal/config"
	"github.com/sadopc/studytrack/internal/export"
	"github.com/sadopc/studytrack/internal/lib/logger/sl"
	"github.com/sadopc/studytrack/internal/lib/logger/slogpretty"
	"github.com/sadopc/studytrack/internal/store"
	"github.com/sadopc/studytrack/internal/tracker"
	"github.com/sadopc/studytrack/internal/tui"
)

const usage = `usage: studytrack [command]

commands:
  (none)                 open the tracker
  summary                print absence totals per lesson
  export csv|json [path] write an absence report or a full backup
`

func main() {
	cfg := config.MustLoad()

	logFile, err := openLogFile(cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	log := setupLogger(cfg.Env, logFile)
	log.Info("starting studytrack", slog.String("env", cfg.Env), slog.String("db", cfg.DBPath))

	s, err := store.New(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	tr := tracker.New(s, log, s.Thresholds())
	tr.DefaultSubRate = s.GetInt(store.SettingDefaultSubRate, tr.DefaultSubRate)
	if err := tr.Load(); err != nil {
		log.Error("failed to load data", sl.Err(err))
		fmt.Fprintf(os.Stderr, "error loading data: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) > 1 {
		if err := runCommand(os.Args[1:], tr, cfg.Export.Dir); err != nil {
			log.Error("command failed", slog.String("command", os.Args[1]), sl.Err(err))
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	app := tui.NewApp(tr, s, tui.Options{
		ExportDir:       cfg.Export.Dir,
		PhotoMaxSide:    cfg.PhotoMaxSide,
		ScheduleMaxSide: cfg.ScheduleMaxSide,
		Log:             log,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		log.Error("tui stopped", sl.Err(err))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runCommand(args []string, tr *tracker.Tracker, exportDir string) error {
	switch args[0] {
	case "summary":
		printSummary(os.Stdout, tr)
		return nil
	case "export":
		if len(args) < 2 {
			return fmt.Errorf("export needs a format\n%s", usage)
		}
		path := ""
		if len(args) > 2 {
			path = args[2]
		}
		out, err := runExport(tr, args[1], path, exportDir, time.Now())
		if err != nil {
			return err
		}
		fmt.Println("Exported to", out)
		return nil
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

// runExport writes the chosen format and returns the file it wrote. An empty
// path means a dated file name in dir.
func runExport(tr *tracker.Tracker, format, path, dir string, now time.Time) (string, error) {
	date := now.Format("2006-01-02")
	switch format {
	case "csv":
		if path == "" {
			path = filepath.Join(dir, fmt.Sprintf("studytrack-absences-%s.csv", date))
		}
		return path, export.ToCSV(tr.Units(), tr.Thresholds(), path)
	case "json":
		if path == "" {
			path = filepath.Join(dir, fmt.Sprintf("studytrack-backup-%s.json", date))
		}
		return path, export.ToJSON(tr.Snapshot(), path)
	default:
		return "", fmt.Errorf("unknown export format %q (want csv or json)", format)
	}
}

func printSummary(w io.Writer, tr *tracker.Tracker) {
	bold := color.New(color.Bold)
	p := tr.Profile()
	if p.Name != "" {
		bold.Fprintf(w, "%s\n", p.Name)
		if aff := p.Affiliation(); aff != "" {
			fmt.Fprintln(w, aff)
		}
		fmt.Fprintln(w)
	}

	units := tr.Units()
	if len(units) == 0 {
		fmt.Fprintln(w, "No lessons yet.")
		return
	}

	for _, u := range units {
		c := u.Counter
		pct := "-"
		if ratio, ok := absence.UsageRatio(c); ok {
			pct = fmt.Sprintf("%.0f%%", ratio*100)
		}
		line := fmt.Sprintf("%-32s %3d/%-3dh %5s  %dh left", u.Label(), c.Current, c.Max, pct, absence.Remaining(c))
		statusColor(tr.UnitStatus(u)).Fprintln(w, line)
	}

	st := tr.Stats()
	fmt.Fprintln(w)
	bold.Fprintf(w, "Total absence: %dh of %dh (%.0f%%)\n", st.TotalAbsence, st.TotalMax, st.AverageUsage())
	if st.Critical > 0 {
		color.New(color.FgRed, color.Bold).Fprintf(w, "Critical: %d\n", st.Critical)
	} else {
		color.New(color.FgGreen).Fprintln(w, "Critical: 0")
	}
}

func statusColor(s absence.Status) *color.Color {
	switch s {
	case absence.Danger:
		return color.New(color.FgRed)
	case absence.Warning:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

// openLogFile opens the log for appending. The TUI owns the terminal, so
// nothing is logged to stdout.
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// isTerminal reports whether out is a terminal. The log file is not, even
// while the TUI holds a terminal on stdout.
func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func setupLogger(env string, out io.Writer) *slog.Logger {
	var log *slog.Logger
	switch env {
	case config.EnvLocal:
		log = setupPrettySlog(out)
	case config.EnvDev:
		log = slog.New(
			slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

func setupPrettySlog(out io.Writer) *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
		NoColor: !isTerminal(out),
	}

	handler := opts.NewPrettyHandler(out)

	return slog.New(handler)
}
