package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/san-kum/splitflap/internal/align"
	"github.com/san-kum/splitflap/internal/charset"
	"github.com/san-kum/splitflap/internal/config"
	"github.com/san-kum/splitflap/internal/export"
	"github.com/san-kum/splitflap/internal/flap"
	"github.com/san-kum/splitflap/internal/metrics"
	"github.com/san-kum/splitflap/internal/storage"
	"github.com/san-kum/splitflap/internal/tui"
	"github.com/san-kum/splitflap/internal/viz"
	"github.com/spf13/cobra"
)

// resolveConfig layers preset, config file and explicitly set flags, in that
// order of increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("charset") {
		cfg.Charset = charsetName
		cfg.Symbols = ""
	}
	if flags.Changed("symbols") {
		cfg.Symbols = symbols
	}
	if flags.Changed("width") {
		cfg.MinWidth = minWidth
	}
	if flags.Changed("pad") {
		cfg.PadDirection = padDir
	}
	if flags.Changed("step") {
		cfg.StepMs = stepMs
	}
	if flags.Changed("from") {
		cfg.InitialValue = fromValue
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	return cfg, nil
}

// newLogger builds the CLI logger. Interactive mode owns the terminal, so
// without --log-file it logs nowhere.
func newLogger(interactive bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return slog.New(slog.NewTextHandler(f, opts)), func() { f.Close() }, nil
	case interactive:
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}, nil
	default:
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), func() {}, nil
	}
}

// startMetrics serves prometheus metrics when --metrics-addr is set and
// returns the observer to attach to the engine.
func startMetrics(logger *slog.Logger) ([]flap.Option, func(), error) {
	if metricsAddr == "" {
		return nil, func() {}, nil
	}

	reg := prometheus.NewRegistry()
	exp, err := metrics.NewExporter(board, reg, reg)
	if err != nil {
		return nil, nil, err
	}

	srv := &http.Server{Addr: metricsAddr, Handler: exp.Handler()}
	go func() {
		logger.Info("metrics server listening", "addr", metricsAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
	return []flap.Option{flap.WithObserver(exp)}, stop, nil
}

func showBoard(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	engCfg, err := cfg.EngineConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	opts, stopMetrics, err := startMetrics(logger)
	if err != nil {
		return err
	}
	defer stopMetrics()

	opts = append(opts, flap.WithLogger(logger.With("board", board)))
	eng, err := flap.New(engCfg, opts...)
	if err != nil {
		return err
	}
	defer eng.Destroy()

	if len(args) > 0 {
		eng.SetTarget(args[0])
	}

	viz.SetTheme(cfg.Theme)
	return viz.Run(eng, board, cfg.FPS)
}

func rollBoard(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	engCfg, err := cfg.EngineConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	opts, stopMetrics, err := startMetrics(logger)
	if err != nil {
		return err
	}
	defer stopMetrics()

	renderer := tui.NewLiveRenderer(os.Stdout, board, cfg.FPS)
	result := &flap.Result{Metrics: make(map[string]float64)}
	start := time.Now()
	recorder := flap.ObserverFunc(func(f flap.Frame) {
		result.Frames = append(result.Frames, f)
		result.Times = append(result.Times, time.Since(start))
	})

	from := engCfg.InitialValue
	engCfg.InitialValue = ""
	opts = append(opts,
		flap.WithLogger(logger.With("board", board)),
		flap.WithDisplay(from),
		flap.WithObserver(renderer),
		flap.WithObserver(recorder),
	)
	standard := metrics.Standard()
	for _, m := range standard {
		opts = append(opts, flap.WithMetric(m))
	}

	eng, err := flap.New(engCfg, opts...)
	if err != nil {
		return err
	}
	defer eng.Destroy()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	renderer.Start()
	eng.SetTarget(args[0])
	if eng.Idle() {
		renderer.Finish()
	}

	select {
	case <-renderer.Done():
	case <-ctx.Done():
	}
	eng.Teardown()
	renderer.Stop()

	result.Ticks = eng.Ticks()
	result.Converged = eng.State().Current == eng.Goal()
	for _, m := range standard {
		result.Metrics[m.Name()] = m.Value()
	}
	logger.Debug("roll finished", "ticks", result.Ticks, "converged", result.Converged)

	if record {
		return saveRecording(engCfg, from, args[0], result)
	}
	return nil
}

func simulateBoard(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	engCfg, err := cfg.EngineConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := []flap.Option{flap.WithLogger(logger.With("board", board))}
	for _, m := range metrics.Standard() {
		opts = append(opts, flap.WithMetric(m))
	}

	result, err := flap.Run(cmd.Context(), engCfg, args[0], opts...)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TICK\tTIME\tPREVIOUS\tCURRENT\tMOVING")
	for i, f := range result.Frames {
		prev, curr := align.Pair(f.Previous, f.Current, engCfg.Charset, engCfg.MinWidth, engCfg.PadDirection)
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", f.Tick, result.Times[i], string(prev), string(curr), f.Moving)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nticks: %d  converged: %v  flips: %.0f  max moving: %.0f\n",
		result.Ticks, result.Converged, result.Metrics["flips"], result.Metrics["max_moving"])

	if record {
		return saveRecording(engCfg, cfg.InitialValue, args[0], result)
	}
	return nil
}

func saveRecording(cfg flap.Config, from, target string, result *flap.Result) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(board, cfg, from, target, result)
	if err != nil {
		return err
	}
	fmt.Printf("saved: %s\n", id)
	return nil
}

func listRecordings(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	recs, err := st.List()
	if err != nil {
		return err
	}

	if len(recs) == 0 {
		fmt.Println("no recordings found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBOARD\tTIME\tFROM\tTARGET\tTICKS\tSTEP")

	for _, rec := range recs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%q\t%q\t%d\t%dms\n",
			rec.ID,
			rec.Board,
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			rec.From,
			rec.Target,
			rec.Ticks,
			rec.StepMs,
		)
	}

	return w.Flush()
}

func plotRecording(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		fmt.Println("no frames recorded")
		return nil
	}

	graph := asciigraph.Plot(export.MovingSeries(frames),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("cells moving per tick (%q -> %q)", meta.From, meta.Target)),
	)
	fmt.Println(graph)
	return nil
}

func exportRecording(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if exportFormat == "json" {
		return st.ExportJSON(os.Stdout, args[0])
	}

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("recording %s has no frames", args[0])
	}

	t := viz.GetTheme(theme)
	switch exportFormat {
	case "board":
		cells, err := export.RecordedCells(meta, frames[len(frames)-1])
		if err != nil {
			return err
		}
		fmt.Println(export.BoardToSVG(cells, t, 1))
	case "chart":
		fmt.Println(export.SeriesToSVG(export.MovingSeries(frames), 600, 200, string(t.Accent)))
	default:
		return fmt.Errorf("unknown format: %s", exportFormat)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCHARSET\tWIDTH\tPAD\tSTEP\tTHEME")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		cs := p.Charset
		if p.Symbols != "" {
			cs = fmt.Sprintf("%q", p.Symbols)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%dms\t%s\n", name, cs, p.MinWidth, p.PadDirection, p.StepMs, p.Theme)
	}
	return w.Flush()
}

func listCharsets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tSYMBOLS")
	for _, name := range charset.Names() {
		set := charset.Lookup(name)
		fmt.Fprintf(w, "%s\t%d\t%s\n", name, set.Len(), strings.ReplaceAll(set.String(), " ", "␠"))
	}
	return w.Flush()
}
