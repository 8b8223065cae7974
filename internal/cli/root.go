package cli

import (
	"fmt"
	"io"
	stdlog "log"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/miruken-go/mixin"
	"github.com/miruken-go/mixin/config"
	koanfp "github.com/miruken-go/mixin/config/koanf"
	"github.com/miruken-go/mixin/log"
	"github.com/spf13/cobra"
)

// EnvPrefix selects the environment variables read as configuration.
const EnvPrefix = "MIXIN_"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Configs   []string
	Verbosity int
	Trace     bool

	logger  logr.Logger
	applier *mixin.Applier
}

// NewRootCommand creates the root command for the mixin CLI.
func NewRootCommand(out io.Writer) *cobra.Command {
	opts := &RootOptions{logger: logr.Discard()}

	cmd := &cobra.Command{
		Use:           "mixin",
		Short:         "Compose objects from independent behaviors",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd.ErrOrStderr())
		},
	}
	cmd.SetOut(out)

	cmd.PersistentFlags().StringSliceVarP(&opts.Configs, "config", "c", nil, "config files (json|yaml)")
	cmd.PersistentFlags().IntVarP(&opts.Verbosity, "verbosity", "v", 0, "log verbosity")
	cmd.PersistentFlags().BoolVar(&opts.Trace, "trace", false, "log every method invocation")

	cmd.AddCommand(NewDescribeCommand(opts))
	cmd.AddCommand(NewModulesCommand(opts))

	return cmd
}

func (o *RootOptions) setup(errOut io.Writer) error {
	if o.Verbosity < 0 {
		return fmt.Errorf("invalid verbosity %d: must not be negative", o.Verbosity)
	}
	stdr.SetVerbosity(o.Verbosity)
	o.logger = stdr.New(stdlog.New(errOut, "", stdlog.LstdFlags))

	k, err := koanfp.Load(EnvPrefix, o.Configs...)
	if err != nil {
		return err
	}
	applier, err := mixin.Setup(
		log.Feature(o.logger),
		config.Feature(koanfp.P(k), config.Path("mixin")),
	)
	if err != nil {
		return err
	}
	o.applier = applier
	return nil
}

func (o *RootOptions) modules(modules []*mixin.Module) []*mixin.Module {
	if !o.Trace {
		return modules
	}
	traced := make([]*mixin.Module, len(modules))
	for i, module := range modules {
		traced[i] = log.Emit(o.logger, module, 0)
	}
	return traced
}
