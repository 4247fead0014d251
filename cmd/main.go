package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/blang/semver"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/jaxxstorm/bump"
	log "github.com/sirupsen/logrus"
)

// Version will be set by build process
var Version = "dev"

type CLI struct {
	LogLevel   string           `default:"warn" enum:"trace,debug,info,warn,error" help:"Diagnostic log level, written to stderr"`
	Debug      bool             `help:"Shorthand for --log-level=debug"`
	FromGit    bool             `help:"Read the current version from the newest reachable Git tag instead of stdin"`
	Repo       string           `short:"r" help:"Repository path for --from-git (default: current directory)"`
	Commitish  string           `default:"HEAD" help:"Commit to start the tag search from"`
	TagPattern string           `help:"Regex pattern to filter tags (e.g., '^sdk/')"`
	Version    kong.VersionFlag `help:"Show version information"`

	Major      MajorCmd      `cmd:"" help:"Bump the major version number for a breaking change."`
	Minor      MinorCmd      `cmd:"" help:"Bump the minor version number for a new feature."`
	Patch      PatchCmd      `cmd:"" help:"Bump the patch version number for a bug fix."`
	Prerelease PrereleaseCmd `cmd:"" help:"Bump any version number at the end of a pre-release identifier."`
	Build      BuildCmd      `cmd:"" help:"Bump any version number at the end of a build identifier."`
}

type MajorCmd struct{}

func (c *MajorCmd) Run(rc *runContext) error {
	return rc.apply(bump.Major, "")
}

type MinorCmd struct{}

func (c *MinorCmd) Run(rc *runContext) error {
	return rc.apply(bump.Minor, "")
}

type PatchCmd struct{}

func (c *PatchCmd) Run(rc *runContext) error {
	return rc.apply(bump.Patch, "")
}

type PrereleaseCmd struct {
	Identifier string `arg:"" optional:"" help:"Pre-release identifier to use; optional when re-using the existing one. Alphanumerics plus '.' and '-' only."`
}

func (c *PrereleaseCmd) Run(rc *runContext) error {
	return rc.apply(bump.Prerelease, c.Identifier)
}

type BuildCmd struct {
	Identifier string `arg:"" optional:"" help:"Build identifier to add or replace; optional when re-using the existing one."`
}

func (c *BuildCmd) Run(rc *runContext) error {
	return rc.apply(bump.Build, c.Identifier)
}

// runContext carries the parsed flags and the streams a command works on
type runContext struct {
	cli    *CLI
	stdin  io.Reader
	stdout io.Writer
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("semver-bump"),
		kong.Description("Read a semver-compliant version number from stdin and bump the number as requested, writing the result to stdout."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": Version,
		},
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	var cli CLI

	parser, err := newParser(&cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = configureLogging(&cli, os.Stderr)
	if err == nil {
		err = kctx.Run(&runContext{cli: &cli, stdin: os.Stdin, stdout: os.Stdout})
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func configureLogging(cli *CLI, w io.Writer) error {
	level := cli.LogLevel
	if cli.Debug {
		level = "debug"
	}

	parsed, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}

	log.SetOutput(w)
	log.SetLevel(parsed)
	return nil
}

func (rc *runContext) apply(kind bump.Kind, tag string) error {
	current, err := rc.currentVersion()
	if err != nil {
		return err
	}

	next, err := bump.Bump(current, kind, tag)
	if err != nil {
		return fmt.Errorf("%s bump of %s: %w", kind, current, err)
	}

	_, err = fmt.Fprintln(rc.stdout, next.String())
	return err
}

func (rc *runContext) currentVersion() (semver.Version, error) {
	if !rc.cli.FromGit {
		return bump.ReadVersion(rc.stdin)
	}

	repoPath := rc.cli.Repo
	if repoPath == "" {
		var err error
		repoPath, err = os.Getwd()
		if err != nil {
			return semver.Version{}, fmt.Errorf("getting current directory: %w", err)
		}
	}

	repo, err := bump.OpenRepository(repoPath)
	if err != nil {
		return semver.Version{}, fmt.Errorf("opening repository %s: %w", repoPath, err)
	}

	version, err := bump.LatestTag(bump.TagOptions{
		Repository: repo,
		Commitish:  plumbing.Revision(rc.cli.Commitish),
		TagPattern: rc.cli.TagPattern,
	})
	if err != nil {
		return semver.Version{}, fmt.Errorf("reading version from git: %w", err)
	}
	return version, nil
}
