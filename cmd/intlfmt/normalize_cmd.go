package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/intl"
)

func newNormalizeCmd() *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Show how a pattern is rewritten to positional placeholders",
		Long: `Prints the rewritten pattern on the first line, followed by one
"index<TAB>name" line per unique placeholder.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n := intl.Normalize(pattern)
			w := cmd.OutOrStdout()
			if _, err := fmt.Fprintln(w, n.Pattern); err != nil {
				return err
			}
			for i, name := range n.Tokens.Names() {
				if _, err := fmt.Fprintf(w, "%d\t%s\n", i, name); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "Message pattern")
	_ = cmd.MarkFlagRequired("pattern")

	return cmd
}
