package cli

import (
	"fmt"
	"strings"

	"github.com/miruken-go/mixin"
	"github.com/miruken-go/mixin/examples/persona"
	"github.com/spf13/cobra"
)

// NewDescribeCommand creates the describe command.
func NewDescribeCommand(root *RootOptions) *cobra.Command {
	var people []string

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Describe people sharing one composed prototype",
		Example: `  mixin describe --person "Michael Sam=Athlete" --person "Samantha Stephens=Thaumaturge"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			proto, err := root.applier.Mixin(mixin.NewObject(nil), root.modules(persona.Modules())...)
			if err != nil {
				return err
			}
			for _, person := range people {
				name, career, ok := strings.Cut(person, "=")
				if !ok {
					return fmt.Errorf("invalid person %q: expected name=career", person)
				}
				description, err := persona.Describe(proto, name, career)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), description)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&people, "person", "p", nil, "person as name=career")
	_ = cmd.MarkFlagRequired("person")

	return cmd
}
