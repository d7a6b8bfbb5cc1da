package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"devjournal/cmd/internal/client"
	"devjournal/cmd/internal/infrastructure/aws/storage"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// RootOptions holds global flags and the collaborators commands share.
type RootOptions struct {
	APIURL string
	Format string // "json" | "text"

	HTTPClient *http.Client
	// Interactive reports whether stdin is a terminal a person answers.
	Interactive func() bool
	// Color reports whether w should receive ANSI colors.
	Color       func(w io.Writer) bool
	NewUploader func(ctx context.Context, region, bucket, prefix string) (storage.S3Client, error)
	Now         func() time.Time
	DraftDir    string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

func DefaultOptions() *RootOptions {
	return &RootOptions{
		Interactive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
		Color:       isColorTerminal,
		NewUploader: storage.NewStorageClient,
		Now:         time.Now,
	}
}

// NewRootCommand creates the journal command tree.
func NewRootCommand(opts *RootOptions) *cobra.Command {
	if opts == nil {
		opts = DefaultOptions()
	}

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "journal - read and write devjournal entries",
		Long: `Terminal client for the devjournal API.

Lists, shows, creates, edits and deletes journal entries. Entry content
may embed fenced code blocks, which are rendered under their language tag.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	apiDefault := os.Getenv("JOURNAL_API_URL")
	if apiDefault == "" {
		apiDefault = client.DefaultBaseURL
	}

	cmd.PersistentFlags().StringVar(&opts.APIURL, "api", apiDefault, "base URL of the journal API (env JOURNAL_API_URL)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewCreateCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewBackupCommand(opts))

	return cmd
}

// Execute runs the command tree with args and returns the exit code.
func Execute(ctx context.Context, args []string) int {
	cmd := NewRootCommand(nil)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return GetExitCode(err)
}

func (o *RootOptions) client() *client.Client {
	return client.NewClient(o.APIURL, o.HTTPClient)
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	w := cmd.OutOrStdout()
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    w,
		ErrWriter: cmd.ErrOrStderr(),
		Color:     o.Format == "text" && o.Color != nil && o.Color(w),
	}
}

func (o *RootOptions) interactive() bool {
	return o.Interactive != nil && o.Interactive()
}

func (o *RootOptions) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// withRetry runs load until it succeeds. On an interactive terminal the
// user is asked whether to try again after each failure.
func (o *RootOptions) withRetry(cmd *cobra.Command, f *OutputFormatter, fallback string, load func() error) error {
	var reader *bufio.Reader

	for {
		err := load()
		if err == nil {
			return nil
		}

		if f.JSON() || !o.interactive() {
			return f.Failure(err, fallback)
		}

		f.Report(describe(err, fallback), err)
		if reader == nil {
			reader = bufio.NewReader(cmd.InOrStdin())
		}
		if !Confirm(reader, "Retry? [y/N] ", cmd.ErrOrStderr()) {
			return &ExitError{Code: ExitFailure, Message: fallback, Err: err}
		}
	}
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func isColorTerminal(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
