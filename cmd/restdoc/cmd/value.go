package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	valueRaw  bool
	valueList bool
)

var valueCmd = &cobra.Command{
	Use:   "value <type-path>#<member>",
	Short: "Render a constant value tag",
	Long: `Renders one constant value tag and prints the result.

Examples:
  restdoc value --constants constants.yml 'com.x.Svc#NAME'
  restdoc value --raw 'github.com/acme/api#DefaultLimit'
  restdoc value --list`,
	Args: func(cmd *cobra.Command, args []string) error {
		if valueList {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: runValue,
}

func init() {
	valueCmd.Flags().BoolVar(&valueRaw, "raw", false, "print the plain constant value")
	valueCmd.Flags().BoolVar(&valueList, "list", false, "list the registered constants")
	rootCmd.AddCommand(valueCmd)
}

func runValue(cmd *cobra.Command, args []string) error {
	registry, err := loadRegistry()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if valueList {
		for _, path := range registry.Paths() {
			if _, err := fmt.Fprintln(out, path); err != nil {
				return err
			}
		}
		return nil
	}

	path := strings.TrimSpace(args[0])

	if valueRaw {
		value, err := registry.Resolve(path)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, value)
		return err
	}

	valuelet := newValuelet(registry)
	html, ok := valuelet.Render(argumentTag(valuelet.Name(), path))
	if !ok {
		return nil
	}
	_, err = fmt.Fprintln(out, html)
	return err
}
