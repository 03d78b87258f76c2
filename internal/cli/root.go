// Package cli implements the command-line interface for atlaspacker.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/larkspur/atlaspacker/internal/vars"
)

// Root defines global CLI flags.
type Root struct{}

// CmdVersion prints build metadata.
type CmdVersion struct{}

// Execute runs the version command.
func (c *CmdVersion) Execute(args []string) error {
	vars.Print()
	return nil
}

// Run parses arguments and executes the selected command.
func Run(args []string) error {
	var root Root

	parser := flags.NewParser(&root, flags.Default)
	parser.Name = filepath.Base(os.Args[0])
	prog := parser.Name

	if _, err := parser.AddCommand(
		"pack",
		"Pack a directory of images into atlases and a manifest",
		fmt.Sprintf(
			`Pack a directory of source images into one or more texture atlases.

Examples:
  %s pack --input ./sprites --output ./dist
  %s pack -i ./sprites -o ./dist --max_atlas_size 1024 --padding 4`,
			prog, prog,
		),
		&CmdPack{},
	); err != nil {
		return err
	}

	if _, err := parser.AddCommand(
		"build",
		"Run multiple pack projects from .atlaspacker.yaml",
		fmt.Sprintf(
			`Run multiple pack jobs from a config file.

Examples:
  %s build ./my-atlaspacker-config.yaml
  %s build --project ui --project icons`,
			prog, prog,
		),
		&CmdBuild{},
	); err != nil {
		return err
	}

	if _, err := parser.AddCommand(
		"publish",
		"Compress a packed manifest for HTTP delivery",
		fmt.Sprintf(
			`Renumber atlases and images and write a compressed atlas.json.

Examples:
  %s publish --input ./dist --output ./public`,
			prog,
		),
		&CmdPublish{},
	); err != nil {
		return err
	}

	if _, err := parser.AddCommand(
		"version",
		"Print build metadata",
		fmt.Sprintf("Show build information.\n\nExamples:\n  %s version", prog),
		&CmdVersion{},
	); err != nil {
		return err
	}

	_, err := parser.ParseArgs(args)
	if err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			return nil
		}
		return err
	}

	return nil
}
