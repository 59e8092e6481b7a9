package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/intl"
)

func newFormatCmd(flags *globalFlags) *cobra.Command {
	var (
		locale     string
		pattern    string
		valuesFile string
		sets       []string
	)

	cmd := &cobra.Command{
		Use:   "format",
		Short: "Format a pattern with named values",
		Example: `  intlfmt format --locale en --pattern 'Hello {name}' --set name=Ana
  intlfmt format --locale de --pattern '{n,number}' --set n=1234.5
  intlfmt format --locale en --pattern 'Tags: {tags}' --set 'tags=[go, icu]'
  intlfmt format --locale en --pattern 'Hi {name}' --values values.yaml
  echo 'name: Ana' | intlfmt format --locale en --pattern 'Hi {name}' --values -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			values, err := loadValues(cmd.InOrStdin(), valuesFile)
			if err != nil {
				return err
			}
			if err := applySets(values, sets); err != nil {
				return err
			}

			log := flags.cliLogger(cmd.ErrOrStderr())
			f, err := intl.New(flags.formatterOptions(log)...)
			if err != nil {
				return err
			}

			out, err := f.Format(locale, pattern, values)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVarP(&locale, "locale", "l", "", "Locale identifier, e.g. en-US")
	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "Message pattern")
	cmd.Flags().StringVar(&valuesFile, "values", "", "YAML or JSON file with values, - for stdin")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Set a value as name=value (repeatable)")
	_ = cmd.MarkFlagRequired("pattern")

	return cmd
}
