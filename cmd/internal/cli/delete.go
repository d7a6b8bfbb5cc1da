package cli

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type deleteOptions struct {
	Yes bool
}

func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &deleteOptions{}

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an entry permanently",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(rootOpts, opts, cmd, args[0])
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func runDelete(rootOpts *RootOptions, opts *deleteOptions, cmd *cobra.Command, id string) error {
	f := rootOpts.formatter(cmd)

	if !opts.Yes {
		reader := bufio.NewReader(cmd.InOrStdin())
		prompt := "Are you sure you want to delete this entry? This cannot be undone. [y/N] "
		if !Confirm(reader, prompt, cmd.ErrOrStderr()) {
			declined := map[string]any{"id": id, "deleted": false}
			return f.Success(declined, func(io.Writer) {
				f.Notice("Aborted, entry %s was not deleted.", id)
			})
		}
	}

	if err := rootOpts.client().DeleteEntry(cmd.Context(), id); err != nil {
		return f.Failure(err, "Failed to delete entry. Please try again.")
	}

	result := map[string]any{"id": id, "deleted": true}
	return f.Success(result, func(w io.Writer) {
		fmt.Fprintf(w, "Deleted entry %s\n", id)
	})
}
