package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/0xkitsune/solstat/pkg/detect"
)

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a starter solstat.toml with every detector listed",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "solstat.toml",
				Usage:   "Output file path",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing config file",
			},
		},
		Action: runInit,
	}
}

func runInit(c *cli.Context) error {
	outPath := c.String("output")
	if _, err := os.Stat(outPath); err == nil && !c.Bool("force") {
		return fmt.Errorf("config file %q already exists (use --force to overwrite)", outPath)
	}

	if dir := filepath.Dir(outPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %q: %w", dir, err)
		}
	}

	if err := os.WriteFile(outPath, []byte(defaultConfigTOML()), 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	color.Green("Created %s", outPath)
	fmt.Println("Every detector runs by default; set a line below to false to disable it.")
	return nil
}

func defaultConfigTOML() string {
	var b strings.Builder
	b.WriteString("# solstat configuration\n")
	b.WriteString("# A detector absent from this table runs; set it to false to disable it.\n\n")
	b.WriteString("[detectors]\n")
	for _, info := range detect.All() {
		fmt.Fprintf(&b, "%s = true\n", info.Name)
	}
	b.WriteString("\n[output]\n")
	b.WriteString("dir = \".\"\n")
	b.WriteString("color = true\n")
	b.WriteString("verbose = false\n")
	b.WriteString("\n[exclude]\n")
	b.WriteString("patterns = []\n")
	return b.String()
}
