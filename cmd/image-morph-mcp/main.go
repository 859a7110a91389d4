package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/ironsheep/image-morph-mcp/internal/config"
	"github.com/ironsheep/image-morph-mcp/internal/imaging"
	"github.com/ironsheep/image-morph-mcp/internal/morph"
	"github.com/ironsheep/image-morph-mcp/internal/ocr"
	"github.com/ironsheep/image-morph-mcp/internal/server"
	"github.com/ironsheep/image-morph-mcp/internal/session"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const (
	// Flags.
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
	flagWorkers   = "workers"
	flagInput     = "input"
	flagOutput    = "output"
	flagKernel    = "kernel"
	flagOp        = "op"
	flagThreshold = "threshold"
)

func main() {
	var (
		cfg    config.Config
		logger *logrus.Logger
	)

	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Printf("%s %s\n", server.ServerName, Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		fmt.Printf("  Tesseract:  %s\n", ocr.Version())
	}

	app := &cli.App{
		Name:    server.ServerName,
		Usage:   "MCP server for interactive binary morphology",
		Version: Version,
		Description: "Without a command the server speaks MCP over stdin/stdout; configure it in your MCP client.\n" +
			"Logs are written to stderr.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagLogLevel,
				Value:   config.Default().LogLevel,
				Usage:   "log level: trace, debug, info, warn or error",
				EnvVars: []string{"IMAGE_MORPH_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    flagLogFormat,
				Value:   config.Default().LogFormat,
				Usage:   "log format: auto (text when debugging, JSON otherwise), text or json",
				EnvVars: []string{"IMAGE_MORPH_LOG_FORMAT"},
			},
			&cli.IntFlag{
				Name:    flagWorkers,
				Usage:   "goroutines per morphology operation (0 = one per CPU)",
				EnvVars: []string{"IMAGE_MORPH_WORKERS"},
			},
		},
		Before: func(c *cli.Context) error {
			cfg = config.Config{
				LogLevel:  c.String(flagLogLevel),
				LogFormat: c.String(flagLogFormat),
				Workers:   c.Int(flagWorkers),
			}
			var err error
			logger, err = config.NewLogger(cfg, os.Stderr)
			return err
		},
		Action: func(c *cli.Context) error {
			return serve(cfg, logger)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the MCP server on stdin/stdout (default)",
				Action: func(c *cli.Context) error {
					return serve(cfg, logger)
				},
			},
			{
				Name:      "apply",
				Usage:     "binarize an image file, apply operations and write the result",
				UsageText: "image-morph-mcp apply --input in.png --output out.png --kernel 010,111,010 --op erode --op dilate",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     flagInput,
						Aliases:  []string{"i"},
						Required: true,
						Usage:    "image file to read",
					},
					&cli.StringFlag{
						Name:     flagOutput,
						Aliases:  []string{"o"},
						Required: true,
						Usage:    "image file to write; the extension picks the format",
					},
					&cli.StringSliceFlag{
						Name:  flagKernel,
						Value: cli.NewStringSlice("111", "111", "111"),
						Usage: "kernel rows of 1 (foreground), 0 (background) and x (don't care)",
					},
					&cli.StringSliceFlag{
						Name:     flagOp,
						Required: true,
						Usage:    "operation to apply, repeatable; applied in order",
					},
					&cli.Float64Flag{
						Name:  flagThreshold,
						Value: morph.DefaultThreshold,
						Usage: "luma at or above which a pixel becomes white",
					},
				},
				Action: func(c *cli.Context) error {
					return applyFile(cfg.Engine(), logger, applyOptions{
						Input:     c.String(flagInput),
						Output:    c.String(flagOutput),
						Kernel:    c.StringSlice(flagKernel),
						Ops:       c.StringSlice(flagOp),
						Threshold: c.Float64(flagThreshold),
					})
				},
			},
			{
				Name:  "operations",
				Usage: "list the available operations",
				Action: func(c *cli.Context) error {
					for _, op := range session.Operations() {
						fmt.Printf("%-14s %s\n", op.Name, op.Description)
					}
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", server.ServerName, err)
		os.Exit(1)
	}
}

func serve(cfg config.Config, logger *logrus.Logger) error {
	logger.WithFields(logrus.Fields{
		"version": Version,
		"built":   BuildTime,
		"commit":  GitCommit,
		"workers": cfg.EffectiveWorkers(),
	}).Debug("Starting MCP server")

	srv := server.New(cfg.Engine(), logger, Version)
	if err := srv.Run(); err != nil {
		return errors.Wrap(err, "server error")
	}
	return nil
}

type applyOptions struct {
	Input     string
	Output    string
	Kernel    []string
	Ops       []string
	Threshold float64
}

// applyFile runs the operations over one image file without a session.
func applyFile(engine morph.Engine, logger logrus.FieldLogger, opts applyOptions) error {
	kernel, err := morph.ParseKernel(opts.Kernel)
	if err != nil {
		return errors.Wrap(err, "invalid kernel")
	}
	if opts.Threshold < 0 || opts.Threshold > 255 {
		return errors.Wrapf(morph.ErrInvalidArgument, "threshold %v outside 0..255", opts.Threshold)
	}

	ops := make([]session.Operation, 0, len(opts.Ops))
	for _, name := range opts.Ops {
		op, ok := session.Lookup(name)
		if !ok {
			return errors.Wrapf(session.ErrUnknownOperation, "%q", name)
		}
		ops = append(ops, op)
	}

	f, err := os.Open(opts.Input)
	if err != nil {
		return errors.Wrap(err, "failed to open input")
	}
	defer f.Close()

	r, err := imaging.Decode(f)
	if err != nil {
		return err
	}
	r = engine.Binarize(r, opts.Threshold)

	for _, op := range ops {
		start := time.Now()
		if r, err = op.Apply(engine, r, kernel); err != nil {
			return errors.Wrapf(err, "%s failed", op.Name)
		}
		logger.WithFields(logrus.Fields{
			"operation": op.Name,
			"duration":  time.Since(start).String(),
		}).Debug("Operation applied")
	}

	if err := imaging.Save(r, opts.Output); err != nil {
		return err
	}

	stats := imaging.Stats(r)
	logger.WithFields(logrus.Fields{
		"output":        opts.Output,
		"operations":    len(ops),
		"white_percent": stats.WhitePercent,
	}).Info("Image written")
	return nil
}
