// Command ls-orrery is a terminal orrery: a live, animated solar system
// with a flying camera and a scripted asteroid impact scenario.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/camera"
	"github.com/litescript/ls-orrery/internal/engine"
	"github.com/litescript/ls-orrery/internal/impact"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/sim"
	"github.com/litescript/ls-orrery/internal/telemetry"
	"github.com/litescript/ls-orrery/internal/ui"
)

// CLI flags for headless mode
var (
	ephemMode     bool
	watchInterval time.Duration
)

const (
	defaultFPS = 60
	minFPS     = 10
	maxFPS     = 120
)

func main() {
	fps := flag.Int("fps", defaultFPS, "Render/simulation frame rate")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "Append logs to this file instead of stderr")
	speedLabel := flag.String("speed", "", `Initial speed mode label (e.g. "+1 DAY/S", "STOPPED")`)
	dateStr := flag.String("date", "", "Initial simulated date (YYYY-MM-DD, default J2000 epoch)")
	metricsAddr := flag.String("metrics", "", "Serve telemetry/Prometheus on this address (e.g. :9090)")
	trackMode := flag.Bool("track", false, "Track the focused body after closing its info card instead of zooming out")
	impactDemo := flag.Bool("impact-demo", false, "Arm the demo asteroid on startup")
	flag.BoolVar(&ephemMode, "ephem", false, "Print an ephemeris table instead of the TUI")
	flag.DurationVar(&watchInterval, "watch", 0, "Repeat ephemeris output at interval (e.g. 1h)")
	flag.Parse()

	if *fps < minFPS {
		*fps = minFPS
	} else if *fps > maxFPS {
		*fps = maxFPS
	}

	logger := logging.New(logging.ParseLevel(*logLevel))
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot open -log-file %q: %v\n", *logFile, err)
			os.Exit(1)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	var startDate time.Time
	if *dateStr != "" {
		var err error
		startDate, err = time.Parse("2006-01-02", *dateStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid -date %q: %v\n", *dateStr, err)
			os.Exit(1)
		}
	}

	if ephemMode {
		if *impactDemo {
			runImpactTimeline(startDate)
			return
		}
		runEphemeris(ctx, startDate)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "stdout is not a terminal; try -ephem for headless output")
		os.Exit(1)
	}

	cfg := engine.DefaultConfig()
	cfg.StartDate = startDate
	cfg.Log = logger.Named("engine")
	if *trackMode {
		cfg.CloseBehavior = camera.CloseTrack
	}
	if *speedLabel != "" {
		idx := sim.SpeedIndexByLabel(*speedLabel)
		if idx < 0 {
			fmt.Fprintf(os.Stderr, "Unknown -speed %q\n", *speedLabel)
			os.Exit(1)
		}
		cfg.SpeedIndex = idx
	}

	eng := engine.New(cfg)

	if *impactDemo {
		date := eng.Snapshot().Sim.Date
		err := eng.ConfigureImpact(impact.Config{
			StartPosition: astro.Vec3{X: -4.2, Y: 2.8, Z: 1.6},
			ImpactDate:    date.AddDate(0, 0, 90),
		})
		if err != nil {
			logger.Warn("impact demo not armed: %v", err)
		}
	}

	if *metricsAddr != "" {
		tlog := logger.Named("telemetry")
		srv := telemetry.NewServer(*metricsAddr, eng, tlog)
		go func() {
			if err := srv.Run(ctx); err != nil {
				tlog.Error("server: %v", err)
			}
		}()
	}

	model := ui.New(eng, *fps)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Quit the TUI when a signal cancels the context.
	go func() {
		<-ctx.Done()
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// runImpactTimeline runs the demo impact scenario headless at a fixed
// frame step and prints the staged timeline: arming, flight milestones,
// detonation, and effect drain.
func runImpactTimeline(startDate time.Time) {
	cfg := engine.DefaultConfig()
	cfg.StartDate = startDate
	// Fastest forward mode so the 90-day flight finishes in seconds of
	// simulated wall time.
	cfg.SpeedIndex = len(sim.SpeedModes) - 1
	eng := engine.New(cfg)

	date := eng.Snapshot().Sim.Date
	err := eng.ConfigureImpact(impact.Config{
		StartPosition: astro.Vec3{X: -4.2, Y: 2.8, Z: 1.6},
		ImpactDate:    date.AddDate(0, 0, 90),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot arm impact demo: %v\n", err)
		os.Exit(1)
	}

	snap := eng.Snapshot()
	fmt.Printf("%-12s armed: start (%.1f, %.1f, %.1f) AU, impact %s\n",
		snap.Sim.Date.Format("2006-01-02"),
		-4.2, 2.8, 1.6, date.AddDate(0, 0, 90).Format("2006-01-02"))

	const dt = 1.0 / sim.TargetFrameRate
	nextMilestone := 0.25
	for i := 0; i < 100000; i++ {
		eng.Frame(dt)
		snap = eng.Snapshot()
		day := snap.Sim.Date.Format("2006-01-02")

		for snap.Impact.Active && snap.Impact.Progress >= nextMilestone {
			fmt.Printf("%-12s flight %3.0f%%  pos (%+.2f, %+.2f, %+.2f)  %.1f days out\n",
				day, nextMilestone*100,
				snap.Impact.Position.X, snap.Impact.Position.Y, snap.Impact.Position.Z,
				snap.Impact.DaysToImpact)
			nextMilestone += 0.25
		}
		if snap.Impact.Impacted && snap.Impact.ActiveEffects == 0 {
			fmt.Printf("%-12s all detonation effects expired\n", day)
			break
		}
	}

	for _, ev := range snap.Events {
		if ev.Type == engine.EventImpactDetonated {
			fmt.Printf("%-12s detonation at (%+.2f, %+.2f, %+.2f)\n",
				ev.Date.Format("2006-01-02"),
				snap.Impact.Position.X, snap.Impact.Position.Y, snap.Impact.Position.Z)
		}
	}
}

// runEphemeris prints body positions at the given date (or now), once or
// on a watch interval.
func runEphemeris(ctx context.Context, date time.Time) {
	printTable := func(at time.Time) {
		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintf(w, "EPHEMERIS\t%s\n", at.Format("2006-01-02"))
		fmt.Fprintln(w, "BODY\tX (AU)\tY (AU)\tR (AU)")
		for _, def := range scene.Bodies {
			pos := scene.PositionAt(def, at)
			fmt.Fprintf(w, "%s\t%+.3f\t%+.3f\t%.3f\n", def.Name, pos.X, pos.Y, pos.Norm())
		}
		w.Flush()
	}

	at := date
	if at.IsZero() {
		at = time.Now().UTC()
	}
	printTable(at)

	if watchInterval == 0 {
		return
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fmt.Println()
			printTable(time.Now().UTC())
		}
	}
}
