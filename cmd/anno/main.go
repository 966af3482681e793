package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/anno/internal/config"
	"github.com/standardbeagle/anno/internal/debug"
	"github.com/standardbeagle/anno/internal/encoding"
	"github.com/standardbeagle/anno/internal/engine"
	apperrors "github.com/standardbeagle/anno/internal/errors"
	"github.com/standardbeagle/anno/internal/types"
	"github.com/standardbeagle/anno/internal/version"
)

// nodeDump is the input document for the annotate commands: the nodes of
// one parsed file plus the path to its source text.
type nodeDump struct {
	FilePath string              `json:"file_path"`
	Source   string              `json:"source,omitempty"`
	Nodes    []*types.SyntaxNode `json:"nodes"`
}

// annotateOutput is the document written by the annotate command.
type annotateOutput struct {
	Annotations []*types.Annotation `json:"annotations"`
	Summary     *types.FileSummary  `json:"summary,omitempty"`
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, apperrors.NewConfigError("load", err).WithFile(c.String("config"))
	}
	if concurrency := c.Int("concurrency"); concurrency > 0 {
		cfg.Engine.MaxConcurrency = concurrency
	}
	return cfg, nil
}

func main() {
	app := &cli.App{
		Name:                   "anno",
		Usage:                  "Generate structured annotations from parsed syntax-tree nodes",
		Version:                version.Info(),
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   ".anno.toml",
				Usage:   "path to configuration file",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "override max concurrent annotation tasks",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug output on stderr",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				os.Setenv("ANNO_DEBUG", "1")
				debug.SetOutput(os.Stderr)
				debug.Log("MAIN", "%s (build %s)", version.FullInfo(), version.BuildID())
			}
			return nil
		},
		Commands: []*cli.Command{
			annotateCommand(),
			watchCommand(),
			validateCommand(),
			languagesCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func annotateCommand() *cli.Command {
	return &cli.Command{
		Name:      "annotate",
		Usage:     "Annotate the nodes in a JSON node dump",
		ArgsUsage: "<nodes.json>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write results to a file instead of stdout",
			},
			&cli.BoolFlag{
				Name:  "summary",
				Usage: "include a per-file rollup summary",
			},
			&cli.BoolFlag{
				Name:  "progress",
				Usage: "print batch progress on stderr",
			},
			&cli.IntFlag{
				Name:  "min-lines",
				Usage: "skip nodes spanning fewer lines",
			},
			&cli.IntFlag{
				Name:  "max-lines",
				Usage: "skip nodes spanning more lines",
			},
			&cli.StringSliceFlag{
				Name:  "include-type",
				Usage: "only annotate nodes whose type contains this substring",
			},
			&cli.StringSliceFlag{
				Name:  "exclude-type",
				Usage: "skip nodes whose type contains this substring",
			},
		},
		Action: runAnnotate,
	}
}

func runAnnotate(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one node dump path, got %d", c.NArg())
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if issues := cfg.Validate(); len(issues) > 0 {
		return fmt.Errorf("invalid configuration: %v", issues)
	}

	eng := engine.New(cfg, nil)
	output, err := annotateDump(c.Context, eng, c.Args().First(), batchOptions(c))
	if err != nil {
		return err
	}
	if !c.Bool("summary") {
		output.Summary = nil
	}
	return writeJSON(c.String("output"), output)
}

func batchOptions(c *cli.Context) engine.BatchOptions {
	opts := engine.BatchOptions{
		MinLines:     c.Int("min-lines"),
		MaxLines:     c.Int("max-lines"),
		IncludeTypes: c.StringSlice("include-type"),
		ExcludeTypes: c.StringSlice("exclude-type"),
	}
	if c.Bool("progress") {
		opts.OnProgress = func(completed, total int) {
			fmt.Fprintf(os.Stderr, "\rannotated %d/%d nodes", completed, total)
			if completed == total {
				fmt.Fprintln(os.Stderr)
			}
		}
	}
	return opts
}

// annotateDump reads one node dump, resolves its source text, and runs
// the batch pipeline over it.
func annotateDump(ctx context.Context, eng *engine.Engine, dumpPath string, opts engine.BatchOptions) (*annotateOutput, error) {
	data, err := os.ReadFile(dumpPath)
	if err != nil {
		return nil, apperrors.NewInputError("read node dump", err).WithFile(dumpPath)
	}

	var dump nodeDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, apperrors.NewParseError("decode node dump", err).WithFile(dumpPath)
	}

	// Parsers are not required to assign node IDs; synthesize stable ones
	// so output records stay addressable across runs.
	for _, node := range dump.Nodes {
		if node != nil && node.ID == "" {
			node.ID = encoding.NodeID(dump.FilePath, node.Type, node.Start.Line, node.Start.Column)
		}
	}

	sourceText := dump.Source
	if sourceText == "" && dump.FilePath != "" {
		if raw, err := os.ReadFile(dump.FilePath); err == nil {
			sourceText = string(raw)
		}
		// A missing source file degrades annotations, it does not abort.
	}

	annotations := eng.GenerateBatch(ctx, dump.Nodes, sourceText, dump.FilePath, opts)
	return &annotateOutput{
		Annotations: annotations,
		Summary:     engine.SummarizeFile(dump.FilePath, annotations),
	}, nil
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Re-annotate a node dump whenever it changes",
		ArgsUsage: "<nodes.json>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write results to a file on every run",
			},
			&cli.BoolFlag{
				Name:  "summary",
				Usage: "include a per-file rollup summary",
			},
		},
		Action: runWatch,
	}
}

func runWatch(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one node dump path, got %d", c.NArg())
	}
	dumpPath := c.Args().First()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	eng := engine.New(cfg, nil)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dumpPath); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dumpPath, err)
	}

	run := func() {
		output, err := annotateDump(c.Context, eng, dumpPath, engine.BatchOptions{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
		if !c.Bool("summary") {
			output.Summary = nil
		}
		if err := writeJSON(c.String("output"), output); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
	run()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	fmt.Fprintf(os.Stderr, "watching %s\n", dumpPath)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				debug.Log("WATCH", "change detected: %s", event.Name)
				run()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		case <-sigCh:
			return nil
		}
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate-config",
		Usage: "Check the configuration file and report issues",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			issues := cfg.Validate()
			if len(issues) == 0 {
				fmt.Println("configuration is valid")
				return nil
			}
			for _, issue := range issues {
				fmt.Printf("- %s\n", issue)
			}
			return fmt.Errorf("%d configuration issue(s)", len(issues))
		},
	}
}

func languagesCommand() *cli.Command {
	return &cli.Command{
		Name:  "languages",
		Usage: "List languages with a registered extraction strategy",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			eng := engine.New(cfg, nil)
			for _, lang := range eng.Languages() {
				fmt.Println(lang)
			}
			return nil
		},
	}
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return apperrors.NewOutputError("encode output", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperrors.NewOutputError("write output", err).WithFile(path)
	}
	return nil
}
