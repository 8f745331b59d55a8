package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jholhewres/nextedit/pkg/nextedit/prompt"
)

// newFormatsCmd creates the `nextedit formats` command.
func newFormatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List the available prompt formats",
		Long: `List every prompt format with its special-token vocabulary.
Any unique substring of a name is accepted by --format (e.g. "180", "seed").`,
		Args: cobra.NoArgs,
		RunE: runFormats,
	}

	cmd.Flags().Bool("tokens", false, "also print each format's special tokens")
	return cmd
}

func runFormats(cmd *cobra.Command, _ []string) error {
	withTokens, _ := cmd.Flags().GetBool("tokens")
	out := cmd.OutOrStdout()

	for _, format := range prompt.Formats() {
		marker := " "
		if format == prompt.DefaultFormat {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s\n", marker, format)

		if withTokens {
			for _, token := range format.SpecialTokens() {
				fmt.Fprintf(out, "    %s\n", strings.TrimSuffix(token, "\n"))
			}
		}
	}
	fmt.Fprintln(out, "\n* default")
	return nil
}
