package cli

import (
	"errors"
	"io"

	"devjournal/cmd/internal/client"
	"github.com/spf13/cobra"
)

func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "show <id>",
		Aliases: []string{"view"},
		Short:   "Show one entry with its code blocks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, cmd, args[0])
		},
	}
}

func runShow(opts *RootOptions, cmd *cobra.Command, id string) error {
	f := opts.formatter(cmd)
	api := opts.client()

	var entry *client.Entry
	load := func() error {
		var err error
		entry, err = api.GetEntry(cmd.Context(), id)
		return err
	}

	// A missing entry will not appear by retrying.
	err := load()
	if errors.Is(err, client.ErrNotFound) {
		return f.Failure(err, "Entry not found")
	}
	if err != nil {
		err = opts.withRetry(cmd, f, "Failed to load entry. Please try again.", retryAfter(err, load))
		if err != nil {
			return err
		}
	}

	return f.Success(entry, func(w io.Writer) {
		renderEntry(w, entry, f.Color)
	})
}

// retryAfter returns a loader whose first call reports first and whose
// later calls run load again.
func retryAfter(first error, load func() error) func() error {
	pending := first
	return func() error {
		if pending != nil {
			err := pending
			pending = nil
			return err
		}
		return load()
	}
}
