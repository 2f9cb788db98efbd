// Package main implements a CLI tool to list and bump the versions declared in
// plugin main files, package the plugins and commit the change with git.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	boo "github.com/bcomnes/boo/pkg"
	"github.com/bcomnes/boo/pkg/config"
	"github.com/bcomnes/boo/pkg/logging"
	"github.com/bcomnes/boo/pkg/report"
)

const name = "boo"

// app carries the state shared by the commands once the root command has
// loaded the configuration.
type app struct {
	cfg    *config.Config
	codec  boo.Codec
	stdout io.Writer
	stderr io.Writer
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		cfg:    config.Default(),
		codec:  boo.NewCodec(boo.StandardWeights()),
		stdout: stdout,
		stderr: stderr,
	}
}

func (a *app) engine() *boo.Engine {
	return boo.NewEngine(a.codec, boo.WithMainFiles(a.cfg.MainFiles))
}

// setting returns the flag value when the flag was given, else fallback.
func setting(cmd *cli.Command, flag, fallback string) string {
	if cmd.IsSet(flag) {
		return cmd.String(flag)
	}
	return fallback
}

func (a *app) command() *cli.Command {
	pathFlag := &cli.StringFlag{
		Name:    "path",
		Aliases: []string{"p"},
		Value:   "./",
		Usage:   "Plugins directory path",
	}
	styleFlag := &cli.StringFlag{
		Name:    "style",
		Aliases: []string{"s"},
		Usage:   "Table style: outline, rounded, thick, double, ascii, markdown, plain (default: from config, outline)",
	}
	outputFlag := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output format: table, json, yaml (default: from config, table)",
	}
	updateFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "increase",
			Aliases: []string{"i"},
			Value:   "0.0.0",
			Usage:   "Increase version of plugins",
		},
		&cli.StringFlag{
			Name:    "decrease",
			Aliases: []string{"d"},
			Value:   "0.0.0",
			Usage:   "Decrease version of plugins",
		},
		&cli.BoolFlag{
			Name:    "commit",
			Aliases: []string{"c"},
			Usage:   "Commit changes to Git after updating",
		},
		&cli.StringFlag{
			Name:    "zip",
			Aliases: []string{"z"},
			Usage:   "Path to save the zip files of updated plugins",
		},
		&cli.BoolFlag{
			Name:  "dry",
			Usage: "Show the new versions without modifying any files or the git repository",
		},
		outputFlag,
	}

	return &cli.Command{
		Name:    name,
		Usage:   "List and bump plugin versions",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Config file (default: .boo.toml or .boo.yaml in the working directory)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
			},
		},
		Before: a.before,
		Commands: []*cli.Command{
			{
				Name:   "versions",
				Usage:  "List the plugins of a directory with their versions",
				Flags:  []cli.Flag{pathFlag, styleFlag, outputFlag, &cli.StringFlag{Name: "sort", Value: "name", Usage: "Sort by name or version"}},
				Action: a.versions,
			},
			{
				Name:   "update",
				Usage:  "Update the version of a single plugin",
				Flags:  append([]cli.Flag{pathFlag}, updateFlags...),
				Action: a.update,
			},
			{
				Name:  "multi-update",
				Usage: "Update the versions of every plugin in a directory",
				Flags: append([]cli.Flag{
					pathFlag,
					styleFlag,
					&cli.StringSliceFlag{Name: "include", Usage: "Only update these plugins. May be repeated."},
					&cli.StringSliceFlag{Name: "exclude", Aliases: []string{"e"}, Usage: "Skip these plugins. May be repeated."},
				}, updateFlags...),
				Action: a.multiUpdate,
			},
			{
				Name:  "self-upgrade",
				Usage: "Pull the latest boo sources into its checkout",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "repo", Usage: "Path of the boo checkout (default: from config, /opt/boo)"},
				},
				Action: a.selfUpgrade,
			},
		},
	}
}

func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
		if err := cfg.Validate(); err != nil {
			return ctx, err
		}
	}
	a.cfg = cfg

	logging.SetDefaultStructuredLoggerWithLevel(name, Version, cfg.LogLevel)
	slog.Debug("starting", "name", name, "version", Version, "mainFiles", cfg.MainFiles)
	return ctx, nil
}

func (a *app) versions(_ context.Context, cmd *cli.Command) error {
	plugins, err := boo.Discover(cmd.String("path"), a.cfg.MainFiles)
	if err != nil {
		return err
	}

	engine := a.engine()
	pvs := make([]*boo.PluginVersion, 0, len(plugins))
	for _, p := range plugins {
		pvs = append(pvs, engine.PluginVersion(p))
	}

	rows := report.CollectVersions(pvs)
	if err := report.SortVersionRows(rows, cmd.String("sort")); err != nil {
		return err
	}

	style := setting(cmd, "style", a.cfg.Style)
	return report.Write(a.stdout, setting(cmd, "output", a.cfg.Output), rows, func() string {
		return report.VersionsTable(rows, style)
	})
}

func (a *app) update(_ context.Context, cmd *cli.Command) error {
	p, err := boo.NewPlugin(cmd.String("path"), a.cfg.MainFiles)
	if err != nil {
		return err
	}

	engine := a.engine()
	pv := engine.PluginVersion(p)
	increase, decrease := cmd.String("increase"), cmd.String("decrease")

	var rec boo.Record
	dryRun := cmd.Bool("dry")
	if dryRun {
		rec, err = engine.Plan(pv, increase, decrease)
	} else {
		rec, err = engine.Apply(pv, increase, decrease)
	}
	if err != nil {
		return err
	}

	if !dryRun {
		if err := a.finish(cmd, p.Dir, []boo.Plugin{p}, []boo.Record{rec}); err != nil {
			return err
		}
	}

	rows := report.RecordRows(rec)
	return report.Write(a.stdout, setting(cmd, "output", a.cfg.Output), rows, func() string {
		return rows[0].Message()
	})
}

func (a *app) multiUpdate(_ context.Context, cmd *cli.Command) error {
	root := cmd.String("path")
	dirs, err := boo.ListDirs(root)
	if err != nil {
		return err
	}
	dirs = boo.Filter(dirs, cmd.StringSlice("include"), cmd.StringSlice("exclude"))

	dryRun := cmd.Bool("dry")
	outcomes := a.engine().ApplyAll(dirs, cmd.String("increase"), cmd.String("decrease"), dryRun)

	rows := report.UpdateRows(outcomes)
	style := setting(cmd, "style", a.cfg.Style)
	if err := report.Write(a.stdout, setting(cmd, "output", a.cfg.Output), rows, func() string {
		return report.UpdatesTable(rows, style)
	}); err != nil {
		return err
	}

	if !dryRun {
		var plugins []boo.Plugin
		for _, o := range outcomes {
			if o.Err == nil {
				plugins = append(plugins, o.Plugin)
			}
		}
		if err := a.finish(cmd, root, plugins, boo.Succeeded(outcomes)); err != nil {
			return err
		}
	}

	if failed := boo.Failures(outcomes); failed > 0 {
		return fmt.Errorf("%d of %d plugins failed to update", failed, len(outcomes))
	}
	return nil
}

// finish packages and commits updated plugins. A packaging failure stops
// before the commit.
func (a *app) finish(cmd *cli.Command, gitDir string, plugins []boo.Plugin, recs []boo.Record) error {
	if len(recs) == 0 {
		return nil
	}

	if zipDir := setting(cmd, "zip", a.cfg.ZipDir); zipDir != "" {
		if err := os.MkdirAll(zipDir, 0755); err != nil {
			return fmt.Errorf("failed to create zip directory %q: %w", zipDir, err)
		}
		for i, p := range plugins {
			n, err := a.codec.ToInt(recs[i].NewVersion)
			if err != nil {
				return err
			}
			dest := filepath.Join(zipDir, boo.ArchiveName(p, n))
			if err := boo.Zip(p.Dir, dest); err != nil {
				return err
			}
			slog.Info("plugin packaged", "plugin", p.Name(), "path", dest)
		}
	}

	commit := a.cfg.Commit
	if cmd.IsSet("commit") {
		commit = cmd.Bool("commit")
	}
	if commit {
		git := boo.Git{Dir: gitDir}
		if err := git.Check(); err != nil {
			return err
		}
		files := make([]string, 0, len(plugins))
		for _, p := range plugins {
			files = append(files, p.Dir)
		}
		if err := git.Commit(files, boo.CommitMessage(recs)); err != nil {
			return err
		}
		slog.Info("changes committed", "plugins", len(plugins))
	}
	return nil
}

func (a *app) selfUpgrade(_ context.Context, cmd *cli.Command) error {
	repo := setting(cmd, "repo", a.cfg.UpgradeRepo)
	if info, err := os.Stat(repo); err != nil || !info.IsDir() {
		return fmt.Errorf("repository path %q does not exist", repo)
	}

	git := boo.Git{Dir: repo}
	if err := git.Check(); err != nil {
		return err
	}

	fmt.Fprintln(a.stdout, "Checking for updates...")
	if err := git.Fetch(); err != nil {
		return upgradeError(repo, err)
	}
	changed, err := git.HasNewCommits()
	if err != nil {
		return upgradeError(repo, err)
	}
	if !changed {
		fmt.Fprintln(a.stdout, "Already up to date.")
		return nil
	}

	fmt.Fprintln(a.stdout, "New updates found! Pulling the latest changes...")
	if err := git.Pull(); err != nil {
		return upgradeError(repo, err)
	}
	fmt.Fprintln(a.stdout, "Update complete!")
	return nil
}

func upgradeError(repo string, err error) error {
	msg := fmt.Sprintf("an error occurred while executing a git command: %v", err)
	if strings.Contains(strings.ToLower(err.Error()), "permission denied") {
		msg += fmt.Sprintf("\nPlease check the permissions of %s, e.g. sudo chown -R $USER %s", repo, repo)
	}
	return errors.New(msg)
}

func main() {
	a := newApp(os.Stdout, os.Stderr)
	if err := a.command().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(a.stderr, "Error:", err)
		os.Exit(1)
	}
}
