package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expressapi-labs/express-api/internal/branding"
	"github.com/expressapi-labs/express-api/internal/config"
	"github.com/expressapi-labs/express-api/internal/console"
	"github.com/expressapi-labs/express-api/internal/manifest"
	"github.com/expressapi-labs/express-api/internal/platform"
	"github.com/expressapi-labs/express-api/internal/plog"
	"github.com/expressapi-labs/express-api/internal/prompt"
	"github.com/expressapi-labs/express-api/internal/scaffold"
	"github.com/spf13/cobra"
)

const viewDeprecation = "the default view engine will not be jade in future releases\n" +
	"use `--view=jade' or `--help' for additional options"

// NewRootCommand builds the root command for app.
func NewRootCommand(app *App) *cobra.Command {
	var showVersion bool

	cmd := &cobra.Command{
		Use:   branding.CLIName() + " [options] [dir]",
		Short: branding.Description(),
		Long: branding.DisplayName() + ` generates an Express + MongoDB API skeleton in dir
(default: the current directory). It asks before writing into a non-empty
directory unless --force is given.

Defaults for --view and --git can be kept in ` + "~/" + branding.HomeDir() + `/config.yaml or set
with ` + branding.EnvVar(config.KeyView) + ` / ` + branding.EnvVar(config.KeyGit) + `.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !showVersion {
				return
			}
			verbose, _ := cmd.Flags().GetBool(config.KeyVerbose)
			plog.SetVerbose(verbose)
			if plog.IsVerbose() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (commit: %s, built: %s)\n", branding.CLIName(), app.Version, app.Commit, app.Date)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), app.Version)
			}
			app.Exit.RequestExit(0)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Help or version already ended the run.
			if app.Exit.Exited() {
				return nil
			}
			return runGenerate(cmd, app, args)
		},
	}

	cmd.SetOut(app.Console.Out)
	cmd.SetErr(app.Console.Err)

	defaultHelp := cmd.HelpFunc()
	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		defaultHelp(c, args)
		app.Exit.RequestExit(0)
	})

	flags := cmd.Flags()
	flags.BoolP(config.KeyForce, "f", false, "force on non-empty directory")
	flags.Bool(config.KeyGit, false, "add .gitignore")
	flags.String(config.KeyView, "", "view engine support ("+strings.Join(manifest.ViewEngines(), "|")+") (defaults to "+branding.DefaultView()+")")
	flags.Bool(config.KeyVerbose, false, "log diagnostic output")
	flags.BoolVar(&showVersion, "version", false, "output the version number")

	return cmd
}

func runGenerate(cmd *cobra.Command, app *App, args []string) error {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return err
	}
	if err := cfg.BindFlags(cmd.Flags()); err != nil {
		return err
	}
	plog.SetVerbose(cfg.Verbose())

	dest := "."
	if len(args) > 0 {
		dest = args[0]
	}
	appName := scaffold.AppName(dest)

	view, explicit := cfg.View()
	if !manifest.IsViewEngine(view) {
		if plog.IsVerbose() {
			plog.Error("rejecting view engine", "view", view, "explicit", explicit)
		}
		return fmt.Errorf("unsupported view engine %q (choose one of: %s)", view, strings.Join(manifest.ViewEngines(), ", "))
	}
	if !explicit {
		app.Console.Warning(viewDeprecation)
	}

	force, err := cmd.Flags().GetBool(config.KeyForce)
	if err != nil {
		return err
	}
	gate := &prompt.Gate{Input: app.Input, Output: app.Console.Out, Force: force}
	if err := gate.Run(cmd.Context(), dest); err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			app.Console.Errorf("aborting")
			app.Exit.RequestExit(1)
			return nil
		}
		return err
	}
	plog.Debug("destination confirmed", "dest", dest, "app", appName, "view", view)

	features := map[string]bool{config.KeyGit: cfg.Git()}
	fromCmd := platform.LaunchedFromCmd()

	app.Console.Println()
	result, err := scaffold.Generate(scaffold.Options{
		Dest:     dest,
		AppName:  appName,
		View:     view,
		Features: features,
		Reporter: app.Console,
		OnComplete: func() {
			app.Console.NextSteps(appName, dest, fromCmd)
		},
	})
	if err != nil {
		if result != nil {
			reportPartial(app.Console, result)
		}
		return err
	}
	return nil
}

// reportPartial lists what a failed run left on disk and what it did not get to.
func reportPartial(con *console.Console, result *scaffold.Result) {
	missing := result.Missing()
	if len(missing) == 0 {
		return
	}
	plog.Warn("scaffold incomplete", "dest", result.Dest, "created", len(result.Created), "missing", len(missing))
	var b strings.Builder
	fmt.Fprintf(&b, "scaffold of %s is incomplete\n", result.Dest)
	b.WriteString("created:")
	for _, p := range result.Created {
		fmt.Fprintf(&b, "\n  %s", p)
	}
	if len(result.Created) == 0 {
		b.WriteString(" nothing")
	}
	b.WriteString("\nnot created:")
	for _, p := range missing {
		fmt.Fprintf(&b, "\n  %s", p)
	}
	con.Warning(b.String())
}
