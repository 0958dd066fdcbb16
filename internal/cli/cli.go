package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/vk/wpreg/internal/app"
	"github.com/vk/wpreg/internal/hcl_adapter"
	"github.com/vk/wpreg/internal/render"
	"github.com/vk/wpreg/internal/selection"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const (
	flagPath      = "path"
	flagBuiltin   = "builtin"
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
	flagFormat    = "format"
	flagScore     = "score"
	flagCategory  = "category"
)

// globalFlags are created per command tree; urfave flags keep parse state.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    flagPath,
			Aliases: []string{"p"},
			Usage:   "Working point file or directory of .hcl files (repeatable)",
		},
		&cli.BoolFlag{
			Name:  flagBuiltin,
			Usage: "Include the compiled-in working points",
			Value: true,
		},
		&cli.StringFlag{
			Name:  flagLogLevel,
			Usage: "Logging level: debug, info, warn, error",
			Value: "warn",
		},
		&cli.StringFlag{
			Name:  flagLogFormat,
			Usage: "Log output format: text or json",
			Value: "text",
		},
	}
}

// NewCommand builds the wpctl command tree. Results go to outW and logs to
// logW. opts are passed to every App the commands create.
func NewCommand(outW, logW io.Writer, opts ...app.Option) *cli.Command {
	return &cli.Command{
		Name:      "wpctl",
		Usage:     "Assemble, fingerprint and register classification working points",
		Writer:    outW,
		ErrWriter: logW,
		Flags:     globalFlags(),
		// Errors are returned to main; never let the library exit the process.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Commands: []*cli.Command{
			{
				Name:  "validate",
				Usage: "Assemble every working point and fail on any inconsistency",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					res, err := assemble(ctx, cmd, logW, opts)
					if err != nil {
						return err
					}
					fmt.Fprintf(outW, "ok: %d producer(s), %d working point(s) registered\n", len(res.Producers), len(res.Selections))
					return nil
				},
			},
			{
				Name:  "render",
				Usage: "Print producer configs, cut records and registry entries",
				Flags: []cli.Flag{&cli.StringFlag{
					Name:    flagFormat,
					Aliases: []string{"f"},
					Usage:   "Output format: json, yaml or hcl",
					Value:   string(render.FormatYAML),
				}},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					format, err := render.ParseFormat(cmd.String(flagFormat))
					if err != nil {
						return &ExitError{Code: 2, Message: err.Error()}
					}
					res, err := assemble(ctx, cmd, logW, opts)
					if err != nil {
						return err
					}
					return render.Write(outW, format, res)
				},
			},
			{
				Name:  "fingerprint",
				Usage: "Print the fingerprint of every working point",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					res, err := assemble(ctx, cmd, logW, opts)
					if err != nil {
						return err
					}
					for _, s := range res.Selections {
						fmt.Fprintf(outW, "%s %s\n", s.Name, s.Fingerprint)
					}
					return nil
				},
			},
			{
				Name:      "lookup",
				Usage:     "Print the registered fingerprint of one working point",
				ArgsUsage: "NAME",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					name := cmd.Args().First()
					if name == "" {
						return &ExitError{Code: 2, Message: "lookup requires a working point NAME"}
					}
					a, err := newApp(cmd, logW, opts)
					if err != nil {
						return err
					}
					if _, err := a.Assemble(ctx); err != nil {
						return err
					}
					fp, err := a.Registry().Lookup(name)
					if err != nil {
						return &ExitError{Code: 1, Message: err.Error()}
					}
					fmt.Fprintln(outW, fp)
					return nil
				},
			},
			{
				Name:      "evaluate",
				Usage:     "Apply one working point's cuts to a score in a category",
				ArgsUsage: "NAME",
				Flags: []cli.Flag{
					&cli.FloatFlag{Name: flagScore, Usage: "Classifier score", Required: true},
					&cli.IntFlag{Name: flagCategory, Usage: "Category index of the object", Required: true},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					name := cmd.Args().First()
					if name == "" {
						return &ExitError{Code: 2, Message: "evaluate requires a working point NAME"}
					}
					res, err := assemble(ctx, cmd, logW, opts)
					if err != nil {
						return err
					}
					sel, err := res.Selection(name)
					if err != nil {
						return &ExitError{Code: 1, Message: err.Error()}
					}
					ev, err := selection.NewEvaluator(sel.Cuts)
					if err != nil {
						return err
					}
					pass, err := ev.Pass(cmd.Float(flagScore), cmd.Int(flagCategory))
					if err != nil {
						return &ExitError{Code: 1, Message: err.Error()}
					}
					if pass {
						fmt.Fprintln(outW, "pass")
					} else {
						fmt.Fprintln(outW, "fail")
					}
					return nil
				},
			},
		},
	}
}

func newApp(cmd *cli.Command, logW io.Writer, opts []app.Option) (*app.App, error) {
	cfg, err := app.NewConfig(app.Config{
		Paths:           cmd.StringSlice(flagPath),
		IncludeBuiltins: cmd.Bool(flagBuiltin),
		LogLevel:        strings.ToLower(cmd.String(flagLogLevel)),
		LogFormat:       strings.ToLower(cmd.String(flagLogFormat)),
	})
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("CLI configuration resolved.", "config", cfg)
	return app.NewApp(logW, cfg, hcl_adapter.NewLoader(), opts...), nil
}

func assemble(ctx context.Context, cmd *cli.Command, logW io.Writer, opts []app.Option) (*app.Result, error) {
	a, err := newApp(cmd, logW, opts)
	if err != nil {
		return nil, err
	}
	return a.Assemble(ctx)
}
