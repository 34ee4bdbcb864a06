package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/pressproof/preflight"
	"github.com/pressproof/preflight/container"
	"github.com/pressproof/preflight/intake"
	"github.com/pressproof/preflight/observability"
	"github.com/pressproof/preflight/profile"
	"github.com/pressproof/preflight/report"
)

type options struct {
	profilePath string
	format      string
	jobs        int
	quiet       bool
	files       []string
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "preflight: %v\n", err)
		os.Exit(2)
	}
	os.Exit(run(opts))
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: preflight [flags] <pdf>...\n")
		flag.PrintDefaults()
	}
	flag.StringVar(&opts.profilePath, "profile", "", "YAML profile with check thresholds")
	flag.StringVar(&opts.format, "format", "text", "Output format: text, json, markdown or html")
	flag.IntVar(&opts.jobs, "jobs", 4, "Number of files analysed concurrently")
	flag.BoolVar(&opts.quiet, "q", false, "Suppress progress logging")
	flag.Parse()

	switch opts.format {
	case "text", "json", "markdown", "html":
	default:
		return options{}, fmt.Errorf("unknown format %q", opts.format)
	}
	if opts.jobs < 1 {
		opts.jobs = 1
	}
	if flag.NArg() == 0 {
		flag.Usage()
		return options{}, fmt.Errorf("missing pdf path")
	}
	opts.files = flag.Args()
	return opts, nil
}

// outcome carries one file's result to the ordered printing pass.
type outcome struct {
	file string
	rep  *report.Report
	err  error
}

func run(opts options) int {
	logger := observability.Logger(observability.NopLogger{})
	if !opts.quiet {
		logger = observability.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	prof := profile.Default()
	if opts.profilePath != "" {
		loaded, err := profile.Load(opts.profilePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "preflight: %v\n", err)
			return 2
		}
		prof = loaded
	}

	outcomes := make([]outcome, len(opts.files))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(opts.jobs)
	for i, file := range opts.files {
		g.Go(func() error {
			outcomes[i] = analyseFile(ctx, file, prof, logger)
			return nil
		})
	}
	g.Wait()

	status := 0
	for _, out := range outcomes {
		if out.err != nil {
			fmt.Fprintf(os.Stderr, "preflight: %s: %v\n", out.file, out.err)
			status = 2
			continue
		}
		if err := render(os.Stdout, out.rep, opts.format); err != nil {
			fmt.Fprintf(os.Stderr, "preflight: %s: %v\n", out.file, err)
			status = 2
			continue
		}
		if status == 0 && !out.rep.Ready() {
			status = 1
		}
	}
	return status
}

func analyseFile(ctx context.Context, file string, prof *profile.Profile, logger observability.Logger) outcome {
	data, err := os.ReadFile(file)
	if err != nil {
		return outcome{file: file, err: err}
	}
	if err := intake.Sniff(data, file, 0); err != nil {
		return outcome{file: file, err: err}
	}

	eng := &preflight.Engine{
		Load:    container.Load,
		Profile: prof,
		Logger:  logger,
	}
	rep, err := eng.Analyse(ctx, data, file).Report()
	return outcome{file: file, rep: rep, err: err}
}

func render(w io.Writer, rep *report.Report, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case "markdown":
		_, err := io.WriteString(w, report.Markdown(rep)+"\n")
		return err
	case "html":
		out, err := report.HTML(rep)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		return report.WriteText(w, rep)
	}
}
