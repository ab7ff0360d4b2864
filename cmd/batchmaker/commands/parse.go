package commands

import (
	"batch-maker/internal/core/recipe/parser"

	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a recipe from a text or HTML file (stdin when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			asHTML, _ := cmd.Flags().GetBool("html")
			source, _ := cmd.Flags().GetString("source")

			var recipe *parser.ParsedRecipe
			if asHTML {
				recipe, err = parser.ParseHTML(input, source)
			} else {
				recipe, err = parser.ParseText(input)
			}
			if err != nil {
				return err
			}
			return writeOutput(cmd, recipe)
		},
	}

	cmd.Flags().Bool("html", false, "Treat input as an HTML page (JSON-LD first, visible text fallback)")
	cmd.Flags().String("source", "", "Source URL recorded on HTML input")
	return cmd
}
