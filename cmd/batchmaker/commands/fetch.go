package commands

import (
	"batch-maker/internal/core/fetch"
	recipeService "batch-maker/internal/core/recipe"
	"batch-maker/internal/infrastructure/config"

	"github.com/spf13/cobra"
)

// newImporter 建立不帶快取的匯入服務，命令列每次只處理少量網址
func newImporter() (*recipeService.ImportService, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	return recipeService.NewImportService(fetch.NewClient(cfg.Fetch), nil, cfg.Queue), nil
}

func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <url>",
		Short: "Fetch a recipe page and parse it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			importer, err := newImporter()
			if err != nil {
				return err
			}
			defer importer.Close()

			recipe, err := importer.ImportURL(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeOutput(cmd, recipe)
		},
	}
}
