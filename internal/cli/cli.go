// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses command-line arguments for stagediff.
package cli

import (
	"flag"
	"fmt"
	"os"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Args holds parsed CLI arguments.
type Args struct {
	// Repo is the repository directory to review (default: cwd).
	Repo string
	// Context overrides the configured fold context window (-1 = keep config).
	Context int
	// NoWatch disables the filesystem watcher.
	NoWatch bool
	// ShowVersion prints version info and exits.
	ShowVersion bool
	// Paths limits the diff to the given pathspecs.
	Paths []string
}

// Parse reads os.Args into Args. It exits on -h/--help (flag's default
// behavior) and on malformed flags.
func Parse() *Args {
	return parse(flag.CommandLine, os.Args[1:])
}

func parse(fs *flag.FlagSet, argv []string) *Args {
	args := &Args{}

	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintln(out, "stagediff - interactive change review for git repositories")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Usage: stagediff [flags] [path ...]")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Reads a diff from stdin when piped; otherwise runs git against")
		fmt.Fprintln(out, "the repository. Paths limit the diff to matching files.")
		fmt.Fprintln(out)
		fs.PrintDefaults()
	}

	fs.StringVar(&args.Repo, "repo", ".", "repository directory")
	fs.IntVar(&args.Context, "context", -1, "fold context window (overrides config)")
	fs.BoolVar(&args.NoWatch, "no-watch", false, "disable filesystem watching")
	fs.BoolVar(&args.ShowVersion, "version", false, "print version and exit")

	fs.Parse(argv)
	args.Paths = fs.Args()
	return args
}

// PrintVersion writes build information to stdout.
func PrintVersion() {
	fmt.Printf("stagediff %s (%s, built %s)\n", Version, GitCommit, BuildDate)
}
