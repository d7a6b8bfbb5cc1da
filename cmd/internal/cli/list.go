package cli

import (
	"io"

	"devjournal/cmd/internal/client"
	"github.com/spf13/cobra"
)

func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all entries, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	api := opts.client()

	var entries []*client.Entry
	err := opts.withRetry(cmd, f, "Failed to load entries. Please try again.", func() error {
		var err error
		entries, err = api.ListEntries(cmd.Context())
		return err
	})
	if err != nil {
		return err
	}

	return f.Success(entries, func(w io.Writer) {
		renderList(w, entries, f.Color)
	})
}
