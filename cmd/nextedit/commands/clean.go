package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jholhewres/nextedit/pkg/nextedit/prompt"
)

// newCleanCmd creates the `nextedit clean` command.
func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [file]",
		Short: "Strip format markers from model output",
		Long: `Strip the trailing wire-format markers a model echoes back in its
output. Reads the given file, or stdin when no file is given, and writes the
cleaned text to stdout.

With --legacy, the first-generation marker vocabulary is cleaned instead: the
editable region is extracted and the cursor marker is normalized.

Examples:
  nextedit clean --format 0120 output.txt
  nextedit clean --legacy output.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: runClean,
	}

	cmd.Flags().StringP("format", "f", "", "prompt format the output was produced for")
	cmd.Flags().Bool("legacy", false, "clean first-generation model output")
	return cmd
}

func runClean(cmd *cobra.Command, args []string) error {
	data, err := readInputBytes(args)
	if err != nil {
		return err
	}

	legacy, _ := cmd.Flags().GetBool("legacy")
	if legacy {
		fmt.Fprint(cmd.OutOrStdout(), prompt.CleanLegacyOutput(string(data)))
		return nil
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	format, err := resolveFormat(cmd, cfg)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), prompt.CleanOutput(string(data), format))
	return nil
}
