// Command solstat scans a directory of Solidity contracts and writes a
// Markdown report of the vulnerabilities, gas optimizations, and QA issues
// its detectors find.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/urfave/cli/v2"

	"github.com/0xkitsune/solstat/pkg/analyzer"
	"github.com/0xkitsune/solstat/pkg/config"
	"github.com/0xkitsune/solstat/pkg/detect"
	"github.com/0xkitsune/solstat/pkg/report"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "solstat",
		Usage:   "Static analysis for Solidity contracts",
		Version: version,
		Description: `solstat walks a directory of .sol files, parses each with its own
Solidity front end, and runs a catalogue of vulnerability, gas-optimization,
and quality-assurance detectors over the parsed trees.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"SOLSTAT_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Directory to write solstat_report.md into",
			},
			&cli.StringFlag{
				Name:  "detectors",
				Usage: "Comma-separated detector names to run, overriding the config file",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored terminal output",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Print a per-detector summary table before writing the report",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("no-color") {
				color.NoColor = true
			}
			return nil
		},
		Commands: []*cli.Command{
			initCmd(),
		},
		Action: runAnalyze,
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.String("config")
	if path == "" {
		path = config.FindConfigFile()
	}
	if path == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func runAnalyze(c *cli.Context) error {
	target := "./contracts"
	if c.Args().Len() > 0 {
		target = c.Args().First()
	}

	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("target directory %s: %w", target, err)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if outDir := c.String("output"); outDir != "" {
		cfg.Output.Dir = outDir
	}
	if c.Bool("no-color") {
		cfg.Output.Color = false
	}
	if c.Bool("verbose") {
		cfg.Output.Verbose = true
	}

	ids := cfg.ActiveIDs()
	if names := c.String("detectors"); names != "" {
		ids, err = parseDetectorNames(names)
		if err != nil {
			return err
		}
	}
	if len(ids) == 0 {
		return fmt.Errorf("no detectors are enabled")
	}

	color.Cyan("Analyzing %s with %d detectors...", target, len(ids))

	result, warnings, err := analyzer.Run(context.Background(), target, analyzer.Options{
		Config:       cfg,
		Detectors:    ids,
		ShowProgress: true,
	})
	if err != nil {
		return err
	}
	for _, w := range warnings {
		color.Yellow("skipped %s: %v", w.Path, w.Err)
	}

	if cfg.Output.Verbose {
		printSummaryTable(result)
	}

	doc := report.Generate(result)
	if doc == "" {
		color.Green("No findings.")
		return nil
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", cfg.Output.Dir, err)
	}
	outPath := filepath.Join(cfg.Output.Dir, "solstat_report.md")
	if err := os.WriteFile(outPath, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	color.Green("Report written to %s", outPath)
	return nil
}

func parseDetectorNames(csv string) ([]detect.ID, error) {
	var ids []detect.ID
	for _, name := range strings.Split(csv, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		id, ok := detect.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown detector %q", name)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func printSummaryTable(result analyzer.Result) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignLeft}},
			Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignLeft}},
		}),
	)
	table.Header([]string{"Detector", "Category", "Findings"})
	for _, info := range detect.All() {
		files := result[info.ID]
		if len(files) == 0 {
			continue
		}
		total := 0
		for _, fl := range files {
			total += len(fl.Lines)
		}
		table.Append([]string{info.Name, info.Category.String(), fmt.Sprintf("%d", total)})
	}
	table.Render()
	fmt.Println()
}
