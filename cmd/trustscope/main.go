package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"trustscope/internal/cmdlog"
	"trustscope/internal/config"
	"trustscope/internal/ingest"
	"trustscope/internal/jobs"
	"trustscope/internal/logging"
	"trustscope/internal/metrics"
	"trustscope/internal/model"
	"trustscope/internal/pipeline"
	"trustscope/internal/server"
	"trustscope/internal/store/snapshots"
	"trustscope/internal/synth"
	"trustscope/internal/theme"
)

const defaultConfigPath = "./trustscope.yaml"

func main() {
	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	var run func([]string) error
	switch cmd {
	case "init":
		run = cmdInit
	case "analyze":
		run = cmdAnalyze
	case "import":
		run = cmdImport
	case "audit":
		run = cmdAudit
	case "batch":
		run = cmdBatch
	case "serve":
		run = cmdServe
	case "demo":
		run = cmdDemo
	default:
		printHelp()
		return
	}
	if err := cmdlog.Run(cmd, func() error { return run(os.Args[2:]) }); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func printHelp() {
	theme.PrintBanner(os.Stdout)
	fmt.Println("Usage: trustscope <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  init        Create a config file at ./trustscope.yaml")
	fmt.Println("  analyze     Score one or more accounts")
	fmt.Println("  import      Load exported account snapshots into the local store")
	fmt.Println("  audit       Flag bot-like accounts among an account's followings")
	fmt.Println("  batch       Score every handle in a file, concurrently")
	fmt.Println("  serve       Run the HTTP API")
	fmt.Println("  demo        List the built-in demo accounts")
}

// env is what every command needs after loading config.
type env struct {
	cfg      config.Config
	db       *snapshots.DB
	analyzer *pipeline.Analyzer
}

func (e *env) Close() {
	if e.db != nil {
		_ = e.db.Close()
	}
}

func load(cfgPath string, needStore bool) (*env, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
	metrics.StartServer(cfg.Metrics.Addr)

	e := &env{cfg: cfg}
	opts := []pipeline.Option{pipeline.WithDemos(cfg.Demo.Enabled), pipeline.WithPlatform(cfg.Platform)}
	if cfg.Storage.DBPath != "" {
		db, err := snapshots.Open(cfg.Storage.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		e.db = db
		opts = append(opts, pipeline.WithSource(db))
	} else if needStore {
		return nil, errors.New("storage.dbPath is empty")
	}
	e.analyzer = pipeline.NewAnalyzer(opts...)
	return e, nil
}

func cmdInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	path := fs.String("path", defaultConfigPath, "path to write config")
	_ = fs.Parse(args)
	if err := config.Save(*path, config.Default()); err != nil {
		return err
	}
	abs, _ := filepath.Abs(*path)
	theme.PrintBanner(os.Stdout)
	fmt.Println("Config written to:", abs)
	return nil
}

func cmdAnalyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	cfgPath := fs.String("config", defaultConfigPath, "config path")
	platform := fs.String("platform", "", "platform (defaults to config)")
	asJSON := fs.Bool("json", false, "print JSON instead of a report")
	_ = fs.Parse(args)
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: analyze needs at least one handle", model.ErrInvalidInput)
	}
	e, err := load(*cfgPath, false)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := context.Background()
	for _, h := range fs.Args() {
		res, err := e.analyzer.Analyze(ctx, h, *platform)
		if err != nil {
			return err
		}
		if *asJSON {
			if err := printJSON(res); err != nil {
				return err
			}
			continue
		}
		printReport(os.Stdout, res)
	}
	return nil
}

func cmdImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	cfgPath := fs.String("config", defaultConfigPath, "config path")
	platform := fs.String("platform", "", "platform for records without one (defaults to config)")
	dir := fs.String("dir", "", "import every .json/.jsonl file in this directory")
	watch := fs.Duration("watch", 0, "with -dir, re-scan on this interval until interrupted")
	_ = fs.Parse(args)
	e, err := load(*cfgPath, true)
	if err != nil {
		return err
	}
	defer e.Close()
	if *platform == "" {
		*platform = e.cfg.Platform
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *dir != "" {
		if *watch > 0 {
			if err := jobs.RunImportLoop(ctx, e.db, *dir, *platform, *watch); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		}
		n, err := jobs.RunImportOnce(ctx, e.db, *dir, *platform)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d records from %s\n", n, *dir)
		return nil
	}

	if fs.NArg() == 0 {
		return fmt.Errorf("%w: import needs files or -dir", model.ErrInvalidInput)
	}
	for _, path := range fs.Args() {
		res, err := ingest.ImportFile(ctx, e.db, path, *platform)
		if err != nil {
			return err
		}
		fmt.Printf("%s: imported=%d skipped=%d\n", path, res.Imported, res.Skipped)
	}
	return nil
}

func cmdAudit(args []string) error {
	fs := flag.NewFlagSet("audit", flag.ExitOnError)
	cfgPath := fs.String("config", defaultConfigPath, "config path")
	platform := fs.String("platform", "", "platform (defaults to config)")
	minRisk := fs.String("min-risk", string(model.RiskMedium), "lowest risk tier to report: low, medium or high")
	asJSON := fs.Bool("json", false, "print JSON instead of a report")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: audit needs exactly one handle", model.ErrInvalidInput)
	}
	risk := model.Risk(*minRisk)
	switch risk {
	case model.RiskLow, model.RiskMedium, model.RiskHigh:
	default:
		return fmt.Errorf("%w: unknown risk tier %q", model.ErrInvalidInput, *minRisk)
	}
	e, err := load(*cfgPath, true)
	if err != nil {
		return err
	}
	defer e.Close()
	if *platform == "" {
		*platform = e.cfg.Platform
	}

	rep, err := jobs.AuditAccount(context.Background(), e.analyzer, e.db, fs.Arg(0), *platform, risk)
	if err != nil {
		return err
	}
	if *asJSON {
		return printJSON(rep)
	}
	printAudit(os.Stdout, rep)
	return nil
}

func cmdBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	cfgPath := fs.String("config", defaultConfigPath, "config path")
	platform := fs.String("platform", "", "platform (defaults to config)")
	file := fs.String("file", "", "file with one handle per line (- for stdin)")
	stored := fs.Bool("stored", false, "analyze every stored handle for the platform")
	workers := fs.Int("workers", 0, "concurrent analyses (defaults to config)")
	_ = fs.Parse(args)
	e, err := load(*cfgPath, *stored)
	if err != nil {
		return err
	}
	defer e.Close()
	if *platform == "" {
		*platform = e.cfg.Platform
	}
	if *workers <= 0 {
		*workers = e.cfg.Batch.Workers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handles := fs.Args()
	if *file != "" {
		more, err := readHandles(*file)
		if err != nil {
			return err
		}
		handles = append(handles, more...)
	}
	if *stored {
		more, err := e.db.Handles(ctx, *platform)
		if err != nil {
			return err
		}
		handles = append(handles, more...)
	}
	if len(handles) == 0 {
		return fmt.Errorf("%w: batch needs handles", model.ErrInvalidInput)
	}

	items, err := jobs.AnalyzeBatch(ctx, e.analyzer, handles, *platform, *workers)
	if err != nil {
		return err
	}
	return printJSON(items)
}

func readHandles(path string) ([]string, error) {
	f := os.Stdin
	if path != "-" {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
	}
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

func cmdServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", defaultConfigPath, "config path")
	addr := fs.String("addr", "", "listen address (defaults to config)")
	_ = fs.Parse(args)
	e, err := load(*cfgPath, false)
	if err != nil {
		return err
	}
	defer e.Close()
	if *addr != "" {
		e.cfg.Server.Addr = *addr
	}

	var followings jobs.FollowingsLister
	if e.db != nil {
		followings = e.db
	}
	srv := server.NewServer(e.cfg, e.analyzer, followings)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logging.Info("serve_start", map[string]any{"addr": e.cfg.Server.Addr})

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logging.Info("serve_stop", nil)
	return srv.Shutdown(shutdownCtx)
}

func cmdDemo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	_ = fs.Parse(args)
	for _, h := range synth.DemoHandles() {
		m, _ := synth.Demo(h)
		fmt.Printf("@%-18s %-10s %s\n", h, m.Platform, m.Name)
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
