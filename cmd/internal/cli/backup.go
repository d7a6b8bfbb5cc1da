package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"devjournal/cmd/internal/client"
	"devjournal/cmd/internal/infrastructure/aws/storage"
	"github.com/spf13/cobra"
)

type backupOptions struct {
	Bucket string
	Prefix string
	Region string
}

// Snapshot is the document uploaded by `journal backup`.
type Snapshot struct {
	ExportedAt time.Time       `json:"exported_at"`
	Entries    []*client.Entry `json:"entries"`
}

type BackupResult struct {
	Bucket  string `json:"bucket"`
	Key     string `json:"key"`
	Entries int    `json:"entries"`
}

func NewBackupCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &backupOptions{}

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Upload a JSON snapshot of every entry to S3",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackup(rootOpts, opts, cmd)
		},
	}

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-2"
	}

	cmd.Flags().StringVar(&opts.Bucket, "bucket", os.Getenv("S3_BUCKET_NAME"), "destination bucket (env S3_BUCKET_NAME)")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", storage.PathBackups, "object key prefix")
	cmd.Flags().StringVar(&opts.Region, "region", region, "bucket region (env AWS_REGION)")
	return cmd
}

func runBackup(rootOpts *RootOptions, opts *backupOptions, cmd *cobra.Command) error {
	f := rootOpts.formatter(cmd)
	if opts.Bucket == "" {
		return fmt.Errorf("no bucket given: use --bucket or set S3_BUCKET_NAME")
	}

	entries, err := rootOpts.client().ListEntries(cmd.Context())
	if err != nil {
		return f.Failure(err, "Failed to load entries. Please try again.")
	}

	now := rootOpts.now().UTC()
	data, err := json.MarshalIndent(&Snapshot{ExportedAt: now, Entries: entries}, "", "  ")
	if err != nil {
		return err
	}

	uploader, err := rootOpts.NewUploader(cmd.Context(), opts.Region, opts.Bucket, opts.Prefix)
	if err != nil {
		return f.Failure(err, "Failed to reach the backup bucket.")
	}

	key, err := uploader.UploadFile(cmd.Context(), data, "journal-"+now.Format("20060102T150405Z")+".json")
	if err != nil {
		return f.Failure(err, "Failed to upload the backup.")
	}

	result := &BackupResult{Bucket: opts.Bucket, Key: key, Entries: len(entries)}
	return f.Success(result, func(w io.Writer) {
		noun := "entries"
		if len(entries) == 1 {
			noun = "entry"
		}
		fmt.Fprintf(w, "Backed up %d %s to s3://%s/%s\n", len(entries), noun, opts.Bucket, key)
	})
}
