package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jholhewres/nextedit/pkg/nextedit/capture"
)

// newCapturesCmd creates the `nextedit captures` command group.
func newCapturesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "captures",
		Short: "Inspect captured compilations",
		Long: `Inspect compilations saved to the capture store.

Examples:
  nextedit captures list
  nextedit captures show <id>
  nextedit captures delete <id>`,
	}

	cmd.AddCommand(
		newCapturesListCmd(),
		newCapturesShowCmd(),
		newCapturesDeleteCmd(),
	)
	return cmd
}

func newCapturesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent captures, newest first",
		Args:  cobra.NoArgs,
		RunE:  runCapturesList,
	}
	cmd.Flags().IntP("limit", "n", 20, "maximum number of captures to list")
	return cmd
}

func runCapturesList(cmd *cobra.Command, _ []string) error {
	store, err := openCaptureStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, record := range records {
		fmt.Fprintf(out, "%s  %s  %-26s  %s  %d tokens\n",
			record.ID,
			record.CreatedAt.Format("2006-01-02 15:04:05"),
			record.Format,
			record.Input.CursorPath,
			record.TokenCount,
		)
	}
	return nil
}

func newCapturesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print the prompt of one capture",
		Args:  cobra.ExactArgs(1),
		RunE:  runCapturesShow,
	}
}

func runCapturesShow(cmd *cobra.Command, args []string) error {
	store, err := openCaptureStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	record, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), record.Prompt)
	return nil
}

func newCapturesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one capture",
		Args:  cobra.ExactArgs(1),
		RunE:  runCapturesDelete,
	}
}

func runCapturesDelete(cmd *cobra.Command, args []string) error {
	store, err := openCaptureStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Delete(cmd.Context(), args[0])
}

// openCaptureStore opens the capture store at the configured path.
func openCaptureStore(cmd *cobra.Command) (*capture.Store, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cmd, cfg)

	store, err := capture.Open(cfg.Capture.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("opening capture store: %w", err)
	}
	return store, nil
}
