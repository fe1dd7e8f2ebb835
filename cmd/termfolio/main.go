package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/termfolio/internal/backend"
	"github.com/san-kum/termfolio/internal/chat"
	"github.com/san-kum/termfolio/internal/config"
	"github.com/san-kum/termfolio/internal/content"
	"github.com/san-kum/termfolio/internal/export"
	"github.com/san-kum/termfolio/internal/glyphgrid"
	"github.com/san-kum/termfolio/internal/logging"
	"github.com/san-kum/termfolio/internal/metrics"
	"github.com/san-kum/termfolio/internal/storage"
	"github.com/san-kum/termfolio/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	configFile string
	dataDir    string
	verbose    bool
	// Portfolio and look
	contentFile string
	theme       string
	preset      string
	// Interactive app
	routePath string
	endpoint  string
	noLoader  bool
	// Backend
	addr     string
	database string
	resume   string
	model    string
	// Message export
	format string
	limit  int
	// Off-screen rendering
	gifPath string
	svgPath string
	frames  int
	width   float64
	height  float64
	seed    uint64
	runs    int
)

// main registers the termfolio commands and runs the interactive portfolio
// when no subcommand is given. It exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "termfolio",
		Short:        "terminal portfolio with a glyph-grid background and an AI chat",
		SilenceUsage: true,
		RunE:         runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&contentFile, "content", "", "portfolio file (yaml); embedded default when empty")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	pf.StringVar(&preset, "preset", "", "background preset")

	rootCmd.Flags().StringVar(&routePath, "route", "/", "initial route, e.g. /projects/<id>")
	rootCmd.Flags().StringVar(&endpoint, "endpoint", config.DefaultEndpoint, "chat endpoint")
	rootCmd.Flags().BoolVar(&noLoader, "no-loader", false, "skip the loading screen")

	chatCmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "send one message to the chat endpoint",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runChat,
	}
	chatCmd.Flags().StringVar(&endpoint, "endpoint", config.DefaultEndpoint, "chat endpoint")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run the reference chat backend",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	serveCmd.Flags().StringVar(&database, "db", config.DefaultDatabase, "sqlite database, relative to the data directory")
	serveCmd.Flags().StringVar(&resume, "resume", config.DefaultResume, "resume JSON used for the system prompt")
	serveCmd.Flags().StringVar(&model, "model", config.DefaultModel, "model name")

	messagesCmd := &cobra.Command{
		Use:   "messages",
		Short: "export stored chat messages",
		RunE:  listMessages,
	}
	messagesCmd.Flags().StringVar(&database, "db", config.DefaultDatabase, "sqlite database, relative to the data directory")
	messagesCmd.Flags().StringVar(&format, "format", "table", "output format (table, json, csv)")
	messagesCmd.Flags().IntVar(&limit, "limit", 0, "newest N messages (0 for all)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render the background off-screen to a GIF or SVG",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().StringVar(&gifPath, "gif", "", "animated GIF output path")
	snapshotCmd.Flags().StringVar(&svgPath, "svg", "", "SVG output path (last frame)")
	snapshotCmd.Flags().IntVar(&frames, "frames", 60, "frames to render")
	snapshotCmd.Flags().Float64Var(&width, "width", 480, "surface width in pixels")
	snapshotCmd.Flags().Float64Var(&height, "height", 270, "surface height in pixels")
	snapshotCmd.Flags().Uint64Var(&seed, "seed", 42, "random seed")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run the background headless and report activity metrics",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&frames, "frames", 240, "frames to render")
	benchCmd.Flags().Float64Var(&width, "width", 1120, "surface width in pixels")
	benchCmd.Flags().Float64Var(&height, "height", 560, "surface height in pixels")
	benchCmd.Flags().Uint64Var(&seed, "seed", 42, "random seed")
	benchCmd.Flags().StringVar(&svgPath, "svg", "", "write the mean-intensity series as SVG")
	benchCmd.Flags().IntVar(&runs, "runs", 1, "also average metrics over N seeds run in parallel")

	projectsCmd := &cobra.Command{
		Use:   "projects [id]",
		Short: "list projects, or print one as markdown",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listProjects,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list background presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCELL\tRADIUS\tDECAY\tSCRAMBLE\tCHARSET")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%.2f\t%.2f\t%s\n",
					name, p.CellSize, p.Radius, p.Decay, p.ScrambleChance, p.Charset)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(chatCmd, serveCmd, messagesCmd, snapshotCmd, benchCmd, projectsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func changed(cmd *cobra.Command, name string) bool {
	f := cmd.Flag(name)
	return f != nil && f.Changed
}

// loadConfig layers the config file, the environment, the preset and then
// explicitly set flags over the defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	cfg.ApplyEnv(os.Getenv)

	if preset != "" {
		if err := cfg.UsePreset(preset); err != nil {
			return nil, err
		}
	}
	if changed(cmd, "data") {
		cfg.DataDir = dataDir
	}
	if changed(cmd, "content") {
		cfg.Content = contentFile
	}
	if changed(cmd, "theme") {
		cfg.Theme = theme
	}
	if changed(cmd, "verbose") {
		cfg.Log.Verbose = verbose
	}
	if changed(cmd, "route") {
		cfg.Route = routePath
	}
	if changed(cmd, "endpoint") {
		cfg.Endpoint = endpoint
	}
	if noLoader {
		cfg.LoaderDelay = 0
	}
	if changed(cmd, "addr") {
		cfg.Backend.Addr = addr
	}
	if changed(cmd, "db") {
		cfg.Backend.Database = database
	}
	if changed(cmd, "resume") {
		cfg.Backend.Resume = resume
	}
	if changed(cmd, "model") {
		cfg.Backend.Model = model
	}
	return cfg, nil
}

func loadPortfolio(cfg *config.Config) (*content.Portfolio, error) {
	if cfg.Content == "" {
		return content.Default()
	}
	return content.Load(cfg.Content)
}

// gridParams resolves the background tuning: theme colors first, then the
// configured grid.
func gridParams(cfg *config.Config) (glyphgrid.Params, error) {
	p := cfg.Grid.Params(viz.GetTheme(cfg.Theme).Apply(glyphgrid.DefaultParams()))
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogPath(), cfg.Log.Verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	pf, err := loadPortfolio(cfg)
	if err != nil {
		return err
	}
	params, err := gridParams(cfg)
	if err != nil {
		return err
	}

	log.Info("starting termfolio",
		zap.String("theme", cfg.Theme),
		zap.String("preset", cfg.Preset),
		zap.String("endpoint", cfg.Endpoint),
		zap.String("route", cfg.Route),
	)
	client := chat.NewClient(cfg.Endpoint, cfg.Timeout, chat.WithLogger(log.Named("chat")))
	return viz.Run(viz.Options{
		Portfolio:   pf,
		Sender:      client,
		Params:      params,
		Theme:       cfg.Theme,
		FPS:         cfg.FPS,
		Route:       cfg.Route,
		LoaderDelay: cfg.LoaderDelay,
		Logger:      log,
	})
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := logging.Console(cfg.Log.Verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	client := chat.NewClient(cfg.Endpoint, cfg.Timeout, chat.WithLogger(log))
	reply, err := chat.Ask(cmd.Context(), client, strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("chat %s: %w", cfg.Endpoint, err)
	}
	fmt.Println(reply)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := logging.Console(cfg.Log.Verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := storage.Open(cfg.DatabasePath())
	if err != nil {
		return err
	}
	defer st.Close()

	prompt, err := backend.LoadPrompt(cfg.Backend.Resume)
	if err != nil {
		return fmt.Errorf("failed to load resume: %w", err)
	}
	responder, err := backend.NewGeminiResponder(ctx, cfg.Backend.APIKey, cfg.Backend.Model, prompt, log.Named("model"))
	if err != nil {
		return fmt.Errorf("%w (set %s)", err, config.EnvAPIKey)
	}

	srv := backend.NewServer(st, responder, log.Named("http"))
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(ctx, cfg.Backend.Addr) })
	g.Go(func() error { return backend.WatchPrompt(ctx, prompt, log.Named("watch")) })

	log.Info("serving",
		zap.String("addr", cfg.Backend.Addr),
		zap.String("database", st.Path()),
		zap.String("resume", prompt.Path()),
		zap.String("model", cfg.Backend.Model),
	)
	return g.Wait()
}

func listMessages(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := storage.Open(cfg.DatabasePath())
	if err != nil {
		return err
	}
	defer st.Close()

	msgs, err := st.Messages(cmd.Context(), limit)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		return storage.ExportJSON(os.Stdout, msgs)
	case "csv":
		return storage.ExportCSV(os.Stdout, msgs)
	case "table":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if len(msgs) == 0 {
		fmt.Println("no messages found")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tROLE\tTIME\tCONTENT")
	for _, m := range msgs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			m.ID,
			m.Role,
			m.Timestamp.Local().Format("2006-01-02 15:04:05"),
			truncate(m.Content, 60),
		)
	}
	return w.Flush()
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// headless mounts a renderer on surface and returns it with its queue and
// listeners.
func headless(params glyphgrid.Params, surface glyphgrid.Surface, log *zap.Logger) (*glyphgrid.Renderer, *glyphgrid.FrameQueue, *glyphgrid.Listeners, error) {
	q := &glyphgrid.FrameQueue{}
	l := &glyphgrid.Listeners{}
	r := glyphgrid.New(params, surface, q, l,
		glyphgrid.WithRand(rand.New(rand.NewPCG(seed, seed))),
		glyphgrid.WithLogger(log))
	r.Mount()
	if !r.Running() {
		return nil, nil, nil, glyphgrid.ErrNoContext
	}
	return r, q, l, nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	if gifPath == "" && svgPath == "" {
		return errors.New("nothing to write: pass --gif and/or --svg")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := logging.Console(cfg.Log.Verbose)
	if err != nil {
		return err
	}
	defer log.Sync()
	params, err := gridParams(cfg)
	if err != nil {
		return err
	}

	if gifPath != "" {
		surf := export.NewGIFSurface(width, height, 1, 50*time.Millisecond)
		r, q, l, err := headless(params, surf, log.Named("gif"))
		if err != nil {
			return err
		}
		n := export.Sweep(q, l, width, height, frames, func(int) { surf.Capture() })
		r.Teardown()
		if err := writeFile(gifPath, surf.Encode); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d frames, %dx%d)\n", gifPath, n, surf.Bounds().Dx(), surf.Bounds().Dy())
	}

	if svgPath != "" {
		surf := export.NewSVGSurface(width, height)
		r, q, l, err := headless(params, surf, log.Named("svg"))
		if err != nil {
			return err
		}
		export.Sweep(q, l, width, height, frames, nil)
		r.Teardown()
		if err := writeFile(svgPath, func(w io.Writer) error {
			_, err := surf.WriteTo(w)
			return err
		}); err != nil {
			return err
		}
		rects, texts := surf.Elements()
		fmt.Printf("wrote %s (%d rects, %d glyphs)\n", svgPath, rects, texts)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := logging.Console(cfg.Log.Verbose)
	if err != nil {
		return err
	}
	defer log.Sync()
	params, err := gridParams(cfg)
	if err != nil {
		return err
	}

	cols, rows := int(width/params.CellSize), int(height/params.CellSize)
	canvas := viz.NewCanvas(cols, rows, params.CellSize)
	r, q, l, err := headless(params, canvas, log.Named("bench"))
	if err != nil {
		return err
	}
	defer r.Teardown()

	series := metrics.NewSeries(params.Threshold, metrics.Standard()...)
	start := time.Now()
	n := export.Sweep(q, l, width, height, frames, func(int) { series.Record(r.Grid()) })
	elapsed := time.Since(start)

	g := r.Grid()
	fmt.Printf("benchmarking %s preset on a %dx%d grid\n\n", cfg.Preset, g.Cols, g.Rows)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRAMES\tTIME\tFRAMES/SEC\tCELLS/SEC")
	fps := float64(n) / elapsed.Seconds()
	fmt.Fprintf(w, "%d\t%v\t%.0f\t%.0f\n", n, elapsed.Round(time.Microsecond), fps, fps*float64(g.Cols*g.Rows))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, m := range series.Metrics() {
		fmt.Fprintf(w, "%s\t%.4f\n", m.Name(), m.Value())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if series.Len() > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(series.Mean(),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("mean intensity per frame"),
		))
		fmt.Println()
		fmt.Println(asciigraph.Plot(series.Lit(),
			asciigraph.Height(6),
			asciigraph.Width(80),
			asciigraph.Caption("lit fraction per frame"),
		))
	}

	if runs > 1 {
		results, err := metrics.NewEnsemble(params, width, height, frames, runs, seed).Run(cmd.Context())
		if err != nil {
			return err
		}
		mean := metrics.MeanValues(results)
		fmt.Printf("\nmean over %d seeds\n", runs)
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "METRIC\tMEAN")
		for _, m := range series.Metrics() {
			fmt.Fprintf(w, "%s\t%.4f\n", m.Name(), mean[m.Name()])
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if svgPath != "" {
		svg := export.SeriesToSVG(series.Mean(), 800, 200, viz.GetTheme(cfg.Theme).GridActive)
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgPath)
	}
	return nil
}

func listProjects(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pf, err := loadPortfolio(cfg)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		p, ok := pf.Project(args[0])
		if !ok {
			return fmt.Errorf("unknown project: %s", args[0])
		}
		fmt.Print(p.Markdown())
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTACK")
	for _, p := range pf.Projects {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Title, strings.Join(p.Stack, ", "))
	}
	return w.Flush()
}
