package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/reoring/webmanifest"
	"github.com/reoring/webmanifest/internal/config"
	"github.com/reoring/webmanifest/internal/report"
	"github.com/reoring/webmanifest/jsonschema"
)

// stdinName is the file argument that reads the manifest from standard input.
const stdinName = "-"

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Validate one or more manifest files",
		ArgsUsage: "FILE...",
		Description: `Validates each manifest and prints the findings. The input syntax is
picked from the file extension (.json and .webmanifest are JSON, .jsonc is
JSON with comments, .yaml and .yml are YAML) unless --input-format is given.
Use "-" to read a manifest from standard input. Arguments containing glob
characters are expanded, including "**" (for example "public/**/*.webmanifest").

Settings are read from .webmanifest.yaml in the working directory, or from
the file named by --config. Flags override the file.

Exit status is 0 when every manifest is valid, 1 when any manifest has
issues, and 2 when a file cannot be read or parsed.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the configuration file (default: " + config.DefaultFile + " if present)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"o"},
				Usage:   "Report format: text, json or yaml",
			},
			&cli.StringFlag{
				Name:  "input-format",
				Value: "auto",
				Usage: "Manifest syntax: auto, json, jsonc or yaml",
			},
			&cli.BoolFlag{
				Name:  "hints",
				Usage: "Include \"did you mean\" suggestions",
			},
			&cli.BoolFlag{
				Name:  "schema",
				Usage: "Also validate against the exported JSON Schema",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "Number of files checked in parallel",
			},
			&cli.StringFlag{
				Name:  "duplicate-keys",
				Usage: "Duplicate member handling: ignore, warn or error",
			},
			&cli.IntFlag{
				Name:  "max-depth",
				Usage: "Maximum nesting depth (0 = unlimited)",
			},
			&cli.Int64Flag{
				Name:  "max-bytes",
				Usage: "Maximum document size in bytes (0 = unlimited)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			files, err := expandArgs(cmd.Args().Slice())
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return errors.New("check: no manifest files given")
			}

			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return err
			}
			applyFlags(cmd, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			opt := checkOptions{auto: true, parse: cfg.ParseOpt(), schema: cfg.Schema}
			if s := cmd.String("input-format"); s != "auto" {
				if opt.format, err = webmanifest.ParseFormat(s); err != nil {
					return fmt.Errorf("invalid --input-format: %w", err)
				}
				opt.auto = false
			}

			slog.Debug("checking manifests",
				slog.Int("files", len(files)),
				slog.Int("concurrency", cfg.Concurrency),
				slog.Bool("schema", cfg.Schema),
			)
			results, err := checkFiles(ctx, files, cfg.Concurrency, opt)
			if err != nil {
				return err
			}

			out := report.NewWriter(report.Format(cfg.Format), cmd.Root().Writer, cfg.Hints)
			if err := out.Write(results); err != nil {
				return err
			}
			return outcome(results)
		},
	}
}

// expandArgs expands glob arguments. A pattern without matches is kept as is
// so it is reported as an unreadable file.
func expandArgs(args []string) ([]string, error) {
	files := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == stdinName || !strings.ContainsAny(arg, "*?[{") {
			files = append(files, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			files = append(files, arg)
			continue
		}
		files = append(files, matches...)
	}
	return files, nil
}

func applyFlags(cmd *cli.Command, cfg *config.Config) {
	if cmd.IsSet("format") {
		cfg.Format = cmd.String("format")
	}
	if cmd.IsSet("hints") {
		cfg.Hints = cmd.Bool("hints")
	}
	if cmd.IsSet("schema") {
		cfg.Schema = cmd.Bool("schema")
	}
	if cmd.IsSet("concurrency") {
		cfg.Concurrency = cmd.Int("concurrency")
	}
	if cmd.IsSet("duplicate-keys") {
		cfg.Parse.DuplicateKeys = cmd.String("duplicate-keys")
	}
	if cmd.IsSet("max-depth") {
		cfg.Parse.MaxDepth = cmd.Int("max-depth")
	}
	if cmd.IsSet("max-bytes") {
		cfg.Parse.MaxBytes = cmd.Int64("max-bytes")
	}
}

// outcome maps results to the command error: unreadable files win over
// validation issues.
func outcome(results []report.Result) error {
	failed, broken := 0, 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			broken++
		case r.Failed():
			failed++
		}
	}
	if broken > 0 {
		return fmt.Errorf("%d of %d files could not be checked", broken, len(results))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files: %w", failed, len(results), errIssuesFound)
	}
	return nil
}

type checkOptions struct {
	format webmanifest.Format
	auto   bool
	parse  webmanifest.ParseOpt
	schema bool
}

// checkFiles checks files concurrently. Results keep argument order.
func checkFiles(ctx context.Context, files []string, limit int, opt checkOptions) ([]report.Result, error) {
	results := make([]report.Result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = checkFile(path, opt)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("check: %w", err)
	}
	return results, nil
}

func checkFile(path string, opt checkOptions) report.Result {
	res := report.Result{File: path}

	var r io.Reader = os.Stdin
	if path != stdinName {
		f, err := os.Open(path)
		if err != nil {
			res.Err = err
			return res
		}
		defer f.Close()
		r = f
	}

	format := opt.format
	if opt.auto {
		format = webmanifest.FormatFromPath(path)
	}
	v, warnings, err := webmanifest.Load(r, format, opt.parse)
	res.Warnings = warnings
	if err != nil {
		slog.Debug("manifest could not be parsed", "file", path, "error", err)
		res.Err = err
		return res
	}

	iss, err := webmanifest.CheckValue(v)
	if err != nil {
		res.Err = err
		return res
	}
	res.Issues = iss

	if opt.schema {
		if err := jsonschema.Validate(v.Interface()); err != nil {
			si, ok := jsonschema.Issues(err)
			if !ok {
				res.Err = err
				return res
			}
			res.Issues = webmanifest.AppendIssues(res.Issues, si...)
		}
	}

	slog.Debug("manifest checked", "file", path, "issues", len(res.Issues), "warnings", len(res.Warnings))
	return res
}
