package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jholhewres/nextedit/pkg/nextedit/capture"
	"github.com/jholhewres/nextedit/pkg/nextedit/config"
	"github.com/jholhewres/nextedit/pkg/nextedit/prompt"
)

// newCompileCmd creates the `nextedit compile` command.
func newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile [input.json]",
		Short: "Compile a prediction request into a prompt",
		Long: `Compile a JSON prediction request into a model prompt. Reads the
request from the given file, or from stdin when no file is given, and writes
the prompt to stdout.

Examples:
  nextedit compile request.json
  nextedit compile --format seed --max-tokens 2048 request.json
  cat request.json | nextedit compile`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompile,
	}

	cmd.Flags().StringP("format", "f", "", "prompt format (any unique substring of a format name)")
	cmd.Flags().Int("max-tokens", 0, "prompt token budget (overrides config)")
	cmd.Flags().Bool("capture", false, "save this compilation to the capture store")
	cmd.Flags().Bool("legacy", false, "compile with the first-generation format instead")
	return cmd
}

func runCompile(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)

	input, err := readPromptInput(args)
	if err != nil {
		return err
	}

	if legacy, _ := cmd.Flags().GetBool("legacy"); legacy {
		excerptRange := prompt.ByteRange{Start: 0, End: len(input.CursorExcerpt)}
		rendered, err := prompt.FormatLegacyPromptFromInput(input, input.EditableRangeInExcerpt, excerptRange)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	}

	format, err := resolveFormat(cmd, cfg)
	if err != nil {
		return err
	}

	maxTokens := cfg.MaxTokens
	if flagTokens, _ := cmd.Flags().GetInt("max-tokens"); flagTokens > 0 {
		maxTokens = flagTokens
	}

	if prompt.ContainsSpecialTokens(input, format) {
		logger.Warn("cursor excerpt contains special tokens", "format", format.String())
	}

	rendered, err := prompt.FormatPromptWithBudget(input, format, maxTokens)
	if err != nil {
		return err
	}

	logger.Debug("prompt compiled",
		"format", format.String(),
		"bytes", len(rendered),
		"tokens", prompt.EstimateTokens(len(rendered)),
		"budget", maxTokens,
	)

	saveCapture, _ := cmd.Flags().GetBool("capture")
	if saveCapture || cfg.Capture.Enabled {
		store, err := capture.Open(cfg.Capture.Path, logger)
		if err != nil {
			return fmt.Errorf("opening capture store: %w", err)
		}
		defer store.Close()

		id, err := store.Save(cmd.Context(), format, input, rendered)
		if err != nil {
			return fmt.Errorf("saving capture: %w", err)
		}
		logger.Info("capture saved", "id", id)
	}

	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}

// resolveFormat picks the format from the --format flag, falling back to the
// configured default.
func resolveFormat(cmd *cobra.Command, cfg *config.Config) (prompt.Format, error) {
	if name, _ := cmd.Flags().GetString("format"); name != "" {
		return prompt.ParseFormat(name)
	}
	return cfg.PromptFormat()
}

// readPromptInput decodes a PromptInput from the file named in args, or from
// stdin when args is empty.
func readPromptInput(args []string) (*prompt.PromptInput, error) {
	data, err := readInputBytes(args)
	if err != nil {
		return nil, err
	}

	input := &prompt.PromptInput{}
	if err := json.Unmarshal(data, input); err != nil {
		return nil, fmt.Errorf("decoding request: %w", err)
	}
	return input, nil
}

// readInputBytes reads the file named in args, or stdin when args is empty.
func readInputBytes(args []string) ([]byte, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", args[0], err)
	}
	return data, nil
}
