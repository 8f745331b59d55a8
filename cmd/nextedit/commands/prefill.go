package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jholhewres/nextedit/pkg/nextedit/prompt"
)

// newPrefillCmd creates the `nextedit prefill` command.
func newPrefillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prefill [input.json]",
		Short: "Compute the assistant prefill for a request",
		Long: `Compute the partial-answer prefill seeded into the assistant turn
for prefill-style formats. Reads the JSON request from the given file, or from
stdin when no file is given. Formats without prefill produce no output.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPrefill,
	}
}

func runPrefill(cmd *cobra.Command, args []string) error {
	input, err := readPromptInput(args)
	if err != nil {
		return err
	}

	prefill, err := prompt.Prefill(input, prompt.FormatV0211Prefill)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), prefill)
	return nil
}
