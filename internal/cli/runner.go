package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	applog "github.com/idilsaglam/expense-tracker/internal/log"
	"github.com/idilsaglam/expense-tracker/internal/model"
	"github.com/idilsaglam/expense-tracker/internal/store/jsonstore"
	"github.com/idilsaglam/expense-tracker/internal/tracker"
	"github.com/idilsaglam/expense-tracker/internal/ui"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Options carries everything a command needs; zero writers mean os.Stdout/os.Stderr.
type Options struct {
	Tracker   *tracker.Tracker
	ExportDir string
	Stdout    io.Writer
	Stderr    io.Writer
	Log       *applog.Logger

	// Browse runs the interactive list and returns the ids deleted in it.
	Browse func(expenses []model.Expense) ([]int, error)
}

func (o *Options) defaults() {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Log == nil {
		o.Log = applog.Discard()
	}
	if o.ExportDir == "" {
		o.ExportDir = "."
	}
	if o.Browse == nil {
		o.Browse = runBrowser
	}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
// A panic inside a command is logged and reported as exit code 1.
func Run(args []string, opt Options) (code int) {
	opt.defaults()
	if len(args) == 0 {
		PrintHelp(opt.Stderr)
		return ExitUsage
	}
	cmd, a := args[0], args[1:]
	log := opt.Log.WithComponent(applog.ComponentCLI).With(applog.FieldCommand, cmd)

	defer func() {
		if r := recover(); r != nil {
			log.Error("command panicked", applog.FieldError, fmt.Sprint(r))
			ui.Fail(opt.Stderr, fmt.Sprintf("%s: unexpected error: %v", cmd, r))
			code = ExitError
		}
	}()

	c := &command{name: cmd, opt: opt, log: log}
	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Stdout)
		return ExitOK
	case "add":
		return c.add(a)
	case "list":
		return c.list(a)
	case "summary":
		return c.summary(a)
	case "update":
		return c.update(a)
	case "delete":
		return c.delete(a)
	case "set-budget":
		return c.setBudget(a)
	case "view-budget":
		return c.viewBudget(a)
	case "export-to-csv":
		return c.exportCSV(a)
	case "browse":
		return c.browse(a)
	}

	ui.Fail(opt.Stderr, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Stderr)
	PrintHelp(opt.Stderr)
	return ExitUsage
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `expense-tracker - track expenses and monthly budgets

Usage:
  expense-tracker [--theme classic|neon|mono] [--data-dir <dir>] <subcommand> [flags]

Subcommands:
  add --description <s> --amount <n> [--category <c>]   Add an expense
  list [--category <c>]                                 List expenses
  summary [--month <1-12>]                              Total expenses, optionally for a month
  update --id <id> [--description <s>] [--amount <n>]   Change an expense
  delete --id <id>                                      Remove an expense
  set-budget --month <1-12> --amount <n>                Set the budget for a month
  view-budget                                           Show all budgets
  export-to-csv                                         Write expenses to expenses_<ms>.csv
  browse                                                Interactive list (d delete, u undo, q quit)

Categories: Bills, Education, Groceries, Miscellaneous (default)

Examples:
  expense-tracker add --description "Lunch" --amount 20 --category Groceries
  expense-tracker summary --month 8
  expense-tracker set-budget --month 8 --amount 500
`)
}

type command struct {
	name string
	opt  Options
	log  *applog.Logger
}

// flags builds a FlagSet whose errors go to stderr instead of exiting.
func (c *command) flags() *flag.FlagSet {
	fs := flag.NewFlagSet(c.name, flag.ContinueOnError)
	fs.SetOutput(c.opt.Stderr)
	return fs
}

// parse returns ok=false with a usage exit code when args do not fit fs.
func (c *command) parse(fs *flag.FlagSet, args []string, required ...string) bool {
	if err := fs.Parse(args); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			ui.Fail(c.opt.Stderr, c.name+": "+err.Error())
		}
		return false
	}
	if fs.NArg() > 0 {
		ui.Fail(c.opt.Stderr, fmt.Sprintf("%s: unexpected argument %q", c.name, fs.Arg(0)))
		return false
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	var missing []string
	for _, name := range required {
		if !set[name] {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		ui.Fail(c.opt.Stderr, fmt.Sprintf("%s: required option(s) %s not specified", c.name, strings.Join(missing, ", ")))
		return false
	}
	return true
}

func (c *command) ok(msg string) { ui.OK(c.opt.Stdout, msg) }

func (c *command) fail(msg string) { ui.Fail(c.opt.Stderr, msg) }

// report prints err in user terms and picks the exit code for it.
func (c *command) report(err error) int {
	var perr *jsonstore.ParseError
	switch {
	case errors.As(err, &perr):
		c.fail(perr.Error())
		fmt.Fprintln(c.opt.Stderr, ui.Current().Muted.Render("Hint: fix or move "+perr.Path+" aside; nothing was written"))
		return ExitError
	case errors.Is(err, model.ErrInvalidAmount):
		c.fail("Invalid amount. Please enter a positive number.")
		return ExitUsage
	case errors.Is(err, model.ErrInvalidMonth):
		c.fail("Month value must be between 1 and 12 (inclusive)")
		return ExitUsage
	case errors.Is(err, model.ErrInvalidID):
		c.fail("Expense id must be a positive integer.")
		return ExitUsage
	case errors.Is(err, model.ErrEmptyDescription):
		c.fail("Description cannot be empty.")
		return ExitUsage
	case errors.Is(err, model.ErrUnknownCategory):
		c.fail(err.Error())
		return ExitUsage
	case errors.Is(err, tracker.ErrNothingToUpdate):
		c.fail("Nothing to update: pass --description and/or --amount.")
		return ExitUsage
	}
	c.log.Error("command failed", applog.FieldError, err)
	c.fail(c.name + ": " + err.Error())
	return ExitError
}
