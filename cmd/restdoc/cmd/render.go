package cmd

import (
	"github.com/cubahno/restdoc/internal/files"
	"github.com/cubahno/restdoc/internal/preprocess"
	"github.com/spf13/cobra"
)

var renderOut string

var renderCmd = &cobra.Command{
	Use:   "render <file|directory>...",
	Short: "Expand tags in documentation sources",
	Long: `Expands every tag in the given files and directories.

Files with a configured extension are expanded, other files are copied.
The output mirrors the source layout below --out. With --out - the
expanded files are written to stdout and other files are skipped.

Examples:
  restdoc render --out build/docs ./api ./docs
  restdoc render --rest-uri http://localhost:8080/rest/ README.md`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", preprocess.Stdout, "output directory, - for stdout")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	registry, err := loadRegistry()
	if err != nil {
		return err
	}

	sources, err := files.CollectSources(args...)
	if err != nil {
		return err
	}

	p := preprocess.NewProcessor(newRestlet(registry), newValuelet(registry),
		preprocess.WithExtensions(cfg.Extensions...),
		preprocess.WithOutput(cmd.OutOrStdout()),
	)

	_, err = p.Run(cmd.Context(), sources, renderOut)
	return err
}
