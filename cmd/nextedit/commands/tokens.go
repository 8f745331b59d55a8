package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jholhewres/nextedit/pkg/nextedit/prompt"
)

// newTokensCmd creates the `nextedit tokens` command.
func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Estimate the token count of a text",
		Long: `Estimate how many tokens a text costs against the prompt budget.
Reads the given file, or stdin when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTokens,
	}
}

func runTokens(cmd *cobra.Command, args []string) error {
	data, err := readInputBytes(args)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d bytes, ~%d tokens\n", len(data), prompt.EstimateTokens(len(data)))
	return nil
}
