package cli

import (
	"context"
	"os"

	"github.com/expressapi-labs/express-api/internal/config"
	"github.com/expressapi-labs/express-api/internal/console"
	"github.com/expressapi-labs/express-api/internal/exit"
	"github.com/expressapi-labs/express-api/internal/plog"
	"github.com/expressapi-labs/express-api/internal/prompt"
)

// App bundles the process-level collaborators of one run.
type App struct {
	Console    *console.Console
	Input      prompt.LineReader
	Exit       *exit.Coordinator
	ConfigPath string

	Version string
	Commit  string
	Date    string
}

// Execute runs the CLI against the real process streams with build info
// injected via ldflags. It ends the process.
func Execute(version, commit, date string) {
	con := console.New(os.Stdout, os.Stderr)
	plog.SetOutput(con.Out, con.Err)

	app := &App{
		Console:    con,
		Input:      prompt.NewTerminalReader(os.Stdin),
		Exit:       exit.New(os.Exit, con.Out, con.Err),
		ConfigPath: config.FilePath(),
		Version:    version,
		Commit:     commit,
		Date:       date,
	}
	Run(context.Background(), app, os.Args[1:])
}

// Run executes the root command with args and then requests exit: 0 on
// success, 1 on error. If the command already requested exit (abort, help,
// version) that request stands.
func Run(ctx context.Context, app *App, args []string) {
	cmd := NewRootCommand(app)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if app.Exit.Exited() {
		return
	}
	if err != nil {
		app.Console.Errorf("error: %v", err)
		app.Exit.RequestExit(1)
		return
	}
	app.Exit.RequestExit(0)
}
