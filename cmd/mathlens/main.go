// Package main is the entry point for the mathlens preview tool.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/mathlens/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Stop a watch loop on interrupt.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() app.Options {
	var opts app.Options
	var showVersion bool

	flag.StringVar(&opts.OutputPath, "output", "", "HTML output path (default stdout)")
	flag.StringVar(&opts.OutputPath, "o", "", "HTML output path (shorthand)")
	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.Watch, "watch", false, "Re-render when the input file changes")
	flag.BoolVar(&opts.Watch, "w", false, "Re-render when the input file changes (shorthand)")
	flag.BoolVar(&opts.Live, "live", false, "Open the terminal preview")
	flag.BoolVar(&opts.Live, "l", false, "Open the terminal preview (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Mathlens - Markdown preview with tolerant math re-rendering\n\n")
		fmt.Fprintf(os.Stderr, "Usage: mathlens [options] file.md\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  mathlens notes.md               Render to stdout\n")
		fmt.Fprintf(os.Stderr, "  mathlens -o notes.html notes.md Render to a file\n")
		fmt.Fprintf(os.Stderr, "  mathlens -w -o out.html doc.md  Re-render on change\n")
		fmt.Fprintf(os.Stderr, "  mathlens -l doc.md              Terminal preview\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("mathlens %s (%s)\n", version, commit)
		os.Exit(0)
	}

	if opts.LogLevel != "" {
		switch opts.LogLevel {
		case "debug", "info", "warn", "error":
		default:
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
			os.Exit(1)
		}
	}

	if flag.NArg() > 0 {
		opts.InputPath = flag.Arg(0)
	}
	return opts
}
