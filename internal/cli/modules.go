package cli

import (
	"fmt"
	"strings"

	"github.com/miruken-go/mixin"
	"github.com/miruken-go/mixin/examples/persona"
	"github.com/spf13/cobra"
)

// NewModulesCommand creates the modules command.
func NewModulesCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "List the behaviors applied to the person prototype",
		RunE: func(cmd *cobra.Command, args []string) error {
			proto, err := root.applier.Mixin(mixin.NewObject(nil), persona.Modules()...)
			if err != nil {
				return err
			}
			for _, app := range proto.Applied() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n",
					app.Module, app.Key, strings.Join(app.Methods, ","))
			}
			return nil
		},
	}
}
