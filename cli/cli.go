package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tmplgen/cli/cmd"
	"github.com/ardnew/tmplgen/gen"
	"github.com/ardnew/tmplgen/log"
	"github.com/ardnew/tmplgen/pkg"
)

// CLI is the top-level command-line interface for tmplgen.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit."`
	Dataset string           `help:"YAML file replacing built-in reference tables." placeholder:"FILE" type:"existingfile"`

	Render cmd.Render `cmd:"" default:"withargs" help:"Populate a template with generated data"`
	Check  cmd.Check  `cmd:""                    help:"Report placeholder problems without generating data"`
	Types  cmd.Types  `cmd:""                    help:"List supported placeholder types"`
	Init   cmd.Init   `cmd:""                    help:"Initialize configuration file"`
	Repl   cmd.Repl   `cmd:""                    help:"Preview templates interactively"`
}

// Run executes the tmplgen CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
		"version":            pkg.Version,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(resolve(ctx), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	ctx, err = cli.dataset(ctx)
	if err != nil {
		return err
	}

	defer cli.Log.start(ctx)()

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}

// dataset loads the --dataset file, if any, into ctx.
func (c *CLI) dataset(ctx context.Context) (context.Context, error) {
	if c.Dataset == "" {
		return ctx, nil
	}

	f, err := os.Open(c.Dataset)
	if err != nil {
		return ctx, cmd.ErrLoadDataset.
			With(slog.String("file", c.Dataset)).
			Wrap(err)
	}
	defer f.Close()

	data, err := gen.LoadDataset(f)
	if err != nil {
		return ctx, cmd.ErrLoadDataset.
			With(slog.String("file", c.Dataset)).
			Wrap(err)
	}

	log.DebugContext(ctx, "dataset loaded", slog.String("file", c.Dataset))

	return cmd.WithDataset(ctx, data), nil
}
