// Command streamvm runs, debugs, or serves StreamVM programs, grounded
// on the teacher's main.go: a flag-parsed entry point that dispatches
// between a plain run, an interactive debugger (CLI or TUI), and an
// HTTP API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"net/http"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/streamvm/streamvm/api"
	"github.com/streamvm/streamvm/config"
	"github.com/streamvm/streamvm/debugger"
	"github.com/streamvm/streamvm/service"
	"github.com/streamvm/streamvm/tools"
)

var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		debugMode   = flag.Bool("debug", false, "Start in line-oriented debugger mode")
		tuiMode     = flag.Bool("tui", false, "Start in TUI debugger mode")
		apiServer   = flag.Bool("api-server", false, "Start the HTTP API server")
		apiPort     = flag.Int("port", 0, "API server port (overrides config, used with -api-server)")
		maxSteps    = flag.Int("max-steps", 0, "Maximum instruction steps before halting (0 = use config)")
		configPath  = flag.String("config", "", "Path to a TOML config file")
		demo        = flag.String("demo", "", "Run a named built-in demo instead of a file (simple, conditional, arithmetic, decjz)")
		lintOnly    = flag.Bool("lint", false, "Lint the program and exit without running it")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("streamvm %s (%s)\n", Version, Commit)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}
	if *maxSteps > 0 {
		cfg.Execution.MaxSteps = *maxSteps
	}
	if *apiPort > 0 {
		cfg.API.Port = *apiPort
	}

	if *apiServer {
		runAPIServer(cfg)
		return
	}

	source, err := loadSource(*demo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		printUsage()
		os.Exit(1)
	}

	if *lintOnly {
		runLint(source)
		return
	}

	if *tuiMode {
		runTUI(cfg, source)
		return
	}

	if *debugMode {
		runDebuggerCLI(cfg, source)
		return
	}

	runOnce(cfg, source)
}

func loadSource(demoName string) (string, error) {
	if demoName != "" {
		src, ok := demos[demoName]
		if !ok {
			names := make([]string, 0, len(demos))
			for name := range demos {
				names = append(names, name)
			}
			sort.Strings(names)
			return "", fmt.Errorf("unknown demo %q (available: %s)", demoName, strings.Join(names, ", "))
		}
		return src, nil
	}

	if flag.NArg() == 0 {
		return "", fmt.Errorf("no program file or -demo given")
	}
	path := flag.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func runOnce(cfg *config.Config, source string) {
	svc := service.New(cfg)
	svc.OnOutputLine(func(line string) { fmt.Println(line) })

	if err := svc.LoadProgram(source); err != nil {
		fmt.Fprintf(os.Stderr, "load error: %v\n", err)
		os.Exit(1)
	}
	if err := svc.Run(0); err != nil {
		fmt.Fprintf(os.Stderr, "runtime error: %v\n", err)
		os.Exit(1)
	}
}

func runLint(source string) {
	issues := tools.Lint(source)
	for _, issue := range issues {
		fmt.Println(issue.String())
	}
	if len(issues) == 0 {
		fmt.Println("no issues found")
		return
	}
	for _, issue := range issues {
		if issue.Level == tools.LintError {
			os.Exit(1)
		}
	}
}

func runDebuggerCLI(cfg *config.Config, source string) {
	dbg := debugger.NewDebugger(cfg)
	if err := dbg.Service.LoadProgram(source); err != nil {
		fmt.Fprintf(os.Stderr, "load error: %v\n", err)
	}
	if err := debugger.RunCLI(dbg, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "debugger error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg *config.Config, source string) {
	dbg := debugger.NewDebugger(cfg)
	if err := dbg.Service.LoadProgram(source); err != nil {
		fmt.Fprintf(os.Stderr, "load error: %v\n", err)
		os.Exit(1)
	}
	tui := debugger.NewTUI(dbg)
	if err := tui.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tui error: %v\n", err)
		os.Exit(1)
	}
}

func runAPIServer(cfg *config.Config) {
	server := api.NewServer(cfg)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "API server error: %v\n", err)
			os.Exit(1)
		}
	}()

	<-sigChan
	fmt.Println("\nShutting down API server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error during shutdown: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: streamvm [flags] <file.svm>")
	flag.PrintDefaults()
}
