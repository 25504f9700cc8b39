package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/config"
	"github.com/zephyrtronium/calc/internal/display"
	"github.com/zephyrtronium/calc/internal/logging"
	"github.com/zephyrtronium/calc/internal/shell"
)

var (
	cfgFile  string
	input    string
	inname   string
	verb     string
	logLevel string
	last     float64
	echo     bool
	debug    bool
	noColor  bool
)

var rootCmd = &cobra.Command{
	Use:   "calc [expression...]",
	Short: "Evaluate arithmetic expressions",
	Long: `calc evaluates arithmetic expressions in double precision.

Each expression is evaluated against one session, so an expression that
starts with an operator, like "* 2", continues from the previous result,
and a function with no argument, like "sqrt", applies to it.

With no expressions, calc starts an interactive session, or reads
expressions from standard input when it is not a terminal. Put -- before
expressions that begin with "-".

Examples:
  calc -i "3 + 5 * 2"
  calc -- "10 - 5" "- 2" sqrt
  calc -f exprs.txt
  echo "1000 log 10" | calc -f -`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute runs the command line.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./calc.toml or ~/.config/calc/config.toml)")
	pf.StringVar(&verb, "fmt", "", "result formatting verb for non-integers (default %g)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.Float64Var(&last, "last", 0, "seed the last result")
	pf.BoolVar(&debug, "debug", false, "log tokens and parse trees")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")

	f := rootCmd.Flags()
	f.StringVarP(&input, "input", "i", "", "evaluate one expression and exit")
	f.StringVarP(&inname, "file", "f", "", "evaluate each line of a file (- for stdin)")
	f.BoolVar(&echo, "echo", false, "print parse trees")
}

// ExitError carries the status the process should exit with. Its message has
// already been reported.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// app is the state shared by every mode of the command.
type app struct {
	cfg    *config.Config
	log    *logging.Logger
	shell  *shell.Shell
	styles display.Styles
	out    io.Writer
	errOut io.Writer
}

// setup loads the config, applies flags over it, and starts the session.
func setup(cmd *cobra.Command) (*app, error) {
	cfg, path, err := config.Discover(cfgFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("fmt") {
		cfg.Format = verb
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if debug {
		cfg.Debug = true
		cfg.LogLevel = "debug"
	}
	if noColor {
		cfg.Color = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	errOut := cmd.ErrOrStderr()
	log := logging.New(errOut, level, cfg.Color).WithField("session", uuid.New().String())
	log.Debug("session started", logging.Fields{"config": path, "mode": cfg.Mode})

	var opts []calc.SessionOption
	if flags.Changed("last") {
		opts = append(opts, calc.WithLast(last))
	}
	sess := calc.NewSession(opts...)

	return &app{
		cfg:    cfg,
		log:    log,
		shell:  shell.New(sess, log, cfg.Format, cfg.Debug),
		styles: display.NewStyles(cfg.Color),
		out:    cmd.OutOrStdout(),
		errOut: errOut,
	}, nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("input") {
		return a.oneShot(input)
	}

	var srcs []source
	if inname != "" {
		in, err := infile(inname, cmd.InOrStdin())
		if err != nil {
			return err
		}
		defer in.Close()
		lines, err := readLines(inname, in)
		if err != nil {
			return err
		}
		srcs = append(srcs, lines...)
	}
	for i, arg := range args {
		srcs = append(srcs, source{where: fmt.Sprintf("arg %d", i+1), text: arg})
	}
	if len(srcs) == 0 {
		if !isTerminal(cmd.InOrStdin()) {
			lines, err := readLines("-", cmd.InOrStdin())
			if err != nil {
				return err
			}
			return a.batch(lines)
		}
		return a.interactive()
	}
	return a.batch(srcs)
}

// oneShot evaluates a single expression, printing its result or error.
func (a *app) oneShot(src string) error {
	if echo {
		a.echo(src)
	}
	v, err := a.shell.Eval(src)
	if err != nil {
		a.printError(err)
		return &ExitError{Code: 1, Err: err}
	}
	fmt.Fprintln(a.out, a.styles.Result.Render(a.shell.Format(v)))
	return nil
}

// source is one expression and where it came from.
type source struct {
	where string
	text  string
}

// batch evaluates expressions in order. Failures are reported and evaluation
// continues with the session unchanged.
func (a *app) batch(srcs []source) error {
	var failed error
	for _, src := range srcs {
		if echo {
			a.echo(src.text)
		}
		v, err := a.shell.Eval(src.text)
		if err != nil {
			err = fmt.Errorf("%s: %w", src.where, err)
			a.printError(err)
			failed = err
			continue
		}
		fmt.Fprintln(a.out, a.styles.Result.Render(a.shell.Format(v)))
	}
	if failed != nil {
		return &ExitError{Code: 1, Err: failed}
	}
	return nil
}

// echo prints the parse tree of src ahead of its result.
func (a *app) echo(src string) {
	e, err := calc.ParseString(src)
	if err != nil {
		return
	}
	fmt.Fprint(a.out, a.styles.Expr.Render(e.String())+" : ")
}

func (a *app) printError(err error) {
	fmt.Fprintln(a.errOut, a.styles.Error.Render("Error: "+err.Error()))
}

func (a *app) interactive() error {
	if a.cfg.Mode == "tui" {
		return runTUI(a)
	}
	return runRepl(a)
}

// infile opens the named input file, or stdin for "-".
func infile(name string, stdin io.Reader) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(stdin), nil
	}
	return os.Open(name)
}

// readLines collects the expressions of a file, one per line. Blank lines
// and lines starting with # are skipped.
func readLines(name string, in io.Reader) ([]source, error) {
	if name == "-" {
		name = "stdin"
	}
	var srcs []source
	sc := bufio.NewScanner(in)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		srcs = append(srcs, source{where: fmt.Sprintf("%s:%d", name, n), text: line})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return srcs, nil
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ExitCode maps an error from Execute to a process status: the code of an
// ExitError, or 2 for usage and configuration errors.
func ExitCode(err error) int {
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return 2
}
