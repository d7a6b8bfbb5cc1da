package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"devjournal/cmd/internal/client"
	"github.com/spf13/cobra"
)

type writeOptions struct {
	Title   string
	Content string
	File    string
}

// entryInput is what the user gave, and whether content came from stdin
// (and so exists nowhere else if the request fails).
type entryInput struct {
	Title     string
	Content   string
	FromStdin bool
}

func NewCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &writeOptions{}

	cmd := &cobra.Command{
		Use:     "create",
		Aliases: []string{"new"},
		Short:   "Create an entry",
		Long: `Create an entry.

Content is taken from --content, from --file (use "-" for stdin), or else
read from stdin until EOF or a line holding a single ".".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(rootOpts, opts, cmd)
		},
	}

	addWriteFlags(cmd, opts)
	return cmd
}

func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &writeOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace the title and/or content of an entry",
		Long: `Replace the title and/or content of an entry.

Fields that are not given keep their current value. With neither --title,
--content nor --file the new content is read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(rootOpts, opts, cmd, args[0])
		},
	}

	addWriteFlags(cmd, opts)
	return cmd
}

func addWriteFlags(cmd *cobra.Command, opts *writeOptions) {
	cmd.Flags().StringVarP(&opts.Title, "title", "t", "", "entry title")
	cmd.Flags().StringVarP(&opts.Content, "content", "c", "", "entry content")
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", `read content from a file ("-" for stdin)`)
	cmd.MarkFlagsMutuallyExclusive("content", "file")
}

func runCreate(rootOpts *RootOptions, opts *writeOptions, cmd *cobra.Command) error {
	f := rootOpts.formatter(cmd)
	reader := bufio.NewReader(cmd.InOrStdin())

	in := entryInput{Title: opts.Title, Content: opts.Content}
	if !cmd.Flags().Changed("title") && rootOpts.interactive() {
		title, err := GetSimpleText(reader, "Title", cmd.ErrOrStderr())
		if err != nil {
			return &ExitError{Code: ExitCommandError, Message: "failed to read title", Err: err}
		}
		in.Title = title
	}

	if err := readContentFlags(rootOpts, opts, cmd, reader, &in, true); err != nil {
		return err
	}

	entry, err := submit(rootOpts, f, in, "Failed to create entry. Please try again.", func(c *client.Client) (*client.Entry, error) {
		return c.CreateEntry(cmd.Context(), in.Title, in.Content)
	})
	if err != nil {
		return err
	}

	return f.Success(entry, func(w io.Writer) {
		fmt.Fprintf(w, "Created entry %s\n", entry.ID)
	})
}

func runEdit(rootOpts *RootOptions, opts *writeOptions, cmd *cobra.Command, id string) error {
	f := rootOpts.formatter(cmd)
	reader := bufio.NewReader(cmd.InOrStdin())
	api := rootOpts.client()

	current, err := api.GetEntry(cmd.Context(), id)
	if err != nil {
		return f.Failure(err, "Failed to load entry. Please try again.")
	}

	in := entryInput{Title: current.Title, Content: current.Content}
	if cmd.Flags().Changed("title") {
		in.Title = opts.Title
	}

	readStdin := !cmd.Flags().Changed("title") && !cmd.Flags().Changed("content") && opts.File == ""
	if err := readContentFlags(rootOpts, opts, cmd, reader, &in, readStdin); err != nil {
		return err
	}

	entry, err := submit(rootOpts, f, in, "Failed to update entry. Please try again.", func(c *client.Client) (*client.Entry, error) {
		return c.UpdateEntry(cmd.Context(), id, in.Title, in.Content)
	})
	if err != nil {
		return err
	}

	return f.Success(entry, func(w io.Writer) {
		fmt.Fprintf(w, "Updated entry %s\n", entry.ID)
	})
}

// readContentFlags fills in.Content from --content, --file or, when
// fallbackStdin is set and neither flag was given, from stdin.
func readContentFlags(rootOpts *RootOptions, opts *writeOptions, cmd *cobra.Command, reader *bufio.Reader, in *entryInput, fallbackStdin bool) error {
	switch {
	case cmd.Flags().Changed("content"):
		in.Content = opts.Content

	case opts.File != "" && opts.File != "-":
		raw, err := os.ReadFile(opts.File)
		if err != nil {
			return &ExitError{Code: ExitCommandError, Message: "failed to read content file", Err: err}
		}
		in.Content = string(raw)

	case opts.File == "-" || fallbackStdin:
		if rootOpts.interactive() {
			fmt.Fprintf(cmd.ErrOrStderr(), "Content (end with a line holding a single %q, or Ctrl-D)\n", endOfInput)
		}

		text, err := ReadContent(reader)
		if err != nil {
			return &ExitError{Code: ExitCommandError, Message: "failed to read content", Err: err}
		}
		in.Content = text
		in.FromStdin = true
	}
	return nil
}

// submit validates in locally, sends it, and keeps stdin content in a
// draft file when either step fails.
func submit(rootOpts *RootOptions, f *OutputFormatter, in entryInput, fallback string, send func(*client.Client) (*client.Entry, error)) (*client.Entry, error) {
	if details := validateInput(in.Title, in.Content); len(details) > 0 {
		f.Report(&CLIError{Code: "VALIDATION_ERROR", Message: "Validation failed", Details: details}, nil)
		keepDraft(rootOpts, f, in)
		return nil, &ExitError{Code: ExitFailure, Message: "Validation failed"}
	}

	entry, err := send(rootOpts.client())
	if err != nil {
		exitErr := f.Failure(err, fallback)
		keepDraft(rootOpts, f, in)
		return nil, exitErr
	}
	return entry, nil
}

func keepDraft(rootOpts *RootOptions, f *OutputFormatter, in entryInput) {
	if !in.FromStdin || in.Content == "" {
		return
	}

	path, err := saveDraft(rootOpts.DraftDir, in.Title, in.Content)
	if err != nil {
		f.Notice("Could not save your text: %v", err)
		return
	}
	f.Notice("Your text was saved to %s", path)
}
