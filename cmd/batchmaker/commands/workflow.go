package commands

import (
	"batch-maker/internal/core/recipe/parser"
	"batch-maker/internal/core/workflow"
	"batch-maker/internal/pkg/common"

	"github.com/spf13/cobra"
)

func newWorkflowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "workflow [file|url]",
		Short: "Parse a recipe and convert it into a workflow",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				recipe *parser.ParsedRecipe
				err    error
			)

			if len(args) == 1 && isURL(args[0]) {
				importer, ierr := newImporter()
				if ierr != nil {
					return ierr
				}
				defer importer.Close()
				recipe, err = importer.ImportURL(cmd.Context(), args[0])
			} else {
				var input string
				input, err = readInput(cmd, args)
				if err != nil {
					return err
				}
				recipe, err = parser.ParseText(input)
			}
			if err != nil {
				return err
			}
			if len(recipe.Steps) == 0 {
				return common.ErrNoSteps
			}

			return writeOutput(cmd, workflow.NewConverter(nil).Convert(recipe))
		},
	}
}
