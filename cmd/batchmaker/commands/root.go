package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"batch-maker/internal/pkg/common"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// NewRootCmd 建立 batch-maker 命令列
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "batch-maker",
		Short: "Import recipes and turn them into step-by-step workflows",
		Long: `batch-maker parses recipes from pasted text or recipe web pages and
converts them into workflows with timers, target temperatures and
ingredient checklists.

Examples:
  batch-maker parse recipe.txt            # Parse a plain-text recipe
  pbpaste | batch-maker parse              # Parse from stdin
  batch-maker fetch https://example.com/r  # Import a recipe page
  batch-maker workflow recipe.txt -f yaml  # Parse and convert to a workflow`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			if format != formatJSON && format != formatYAML {
				return fmt.Errorf("unsupported format %q (use json or yaml)", format)
			}

			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				if err := common.InitLogger(common.LoggerOptions{
					Level:  "debug",
					Output: cmd.ErrOrStderr(),
				}); err != nil {
					return fmt.Errorf("failed to initialize logger: %w", err)
				}
			}
			return nil
		},
	}

	root.PersistentFlags().StringP("format", "f", formatJSON, "Output format: json or yaml")
	root.PersistentFlags().BoolP("verbose", "v", false, "Log progress to stderr")

	root.AddCommand(newParseCmd())
	root.AddCommand(newFetchCmd())
	root.AddCommand(newWorkflowCmd())

	return root
}

// readInput 讀取檔案內容，沒有參數或參數為 "-" 時讀 stdin
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}

// isURL 判斷參數是否為網址
func isURL(arg string) bool {
	return strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://")
}

// writeOutput 依 --format 輸出結果
func writeOutput(cmd *cobra.Command, v interface{}) error {
	format, _ := cmd.Flags().GetString("format")
	out := cmd.OutOrStdout()

	if format == formatYAML {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}

	data, err := common.ToJSONIndent(v)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(out, data)
	return err
}
