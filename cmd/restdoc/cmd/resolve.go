package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/cubahno/restdoc/internal/preprocess"
	"github.com/cubahno/restdoc/pkg/taglet"
	"github.com/spf13/cobra"
)

// commandLine is the file name reported for tags given as arguments.
const commandLine = "<command-line>"

var resolveRaw bool

var resolveCmd = &cobra.Command{
	Use:   "resolve <tag text>",
	Short: "Render a single REST example tag",
	Long: `Renders the text of one REST example tag and prints the result.

Examples:
  restdoc resolve 'service="ts" method="list" type="GET" query="limit=2"'
  restdoc resolve --raw 'service="ts" method="submit" type="POST" body_uri="/ts/sample"'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveRaw, "raw", false, "print the pretty-printed XML without HTML escaping")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	registry, err := loadRegistry()
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	restlet := newRestlet(registry)

	if resolveRaw {
		content, err := restlet.Retrieve(cmd.Context(), text)
		if err != nil {
			return err
		}
		if content == "" {
			slog.Warn("Failed to retrieve content", "tag", restlet.Name(), "position", commandLine)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), content)
		return err
	}

	html, ok := restlet.Render(cmd.Context(), argumentTag(restlet.Name(), text))
	if !ok {
		return nil
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
	return err
}

func argumentTag(name, text string) preprocess.Occurrence {
	return preprocess.Occurrence{
		TagName: name,
		Body:    text,
		Pos:     taglet.Position{File: commandLine, Line: 1, Column: 1},
	}
}
