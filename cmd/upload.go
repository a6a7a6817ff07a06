package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"memedir/internal/s3store"
	"memedir/internal/upload"
)

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload <file-path>...",
	Short: "Upload files to the configured bucket",
	Long: `Upload one or more local files to the configured S3 bucket without
entering the interactive browser. The remote key is the file's base
name; files already present in the bucket are skipped.

Examples:
  memedir upload funny.png
  memedir upload a.png b.jpg c.gif`,
	Args: cobra.MinimumNArgs(1),
	RunE: uploadFiles,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func uploadFiles(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	client, err := s3store.NewClient(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to create S3 client: %w", err)
	}
	coord := upload.NewCoordinator(client)

	failed := 0
	for _, path := range args {
		if _, err := os.Stat(path); err != nil {
			fmt.Printf("%s: %v\n", path, err)
			failed++
			continue
		}

		out := coord.Upload(context.Background(), path)
		switch out.Status {
		case upload.StatusUploaded:
			fmt.Printf("%s: uploaded as %s\n", path, out.Key)
		case upload.StatusAlreadyExists:
			msg := fmt.Sprintf("%s: already exists as %s", path, out.Key)
			if out.Remote != nil && out.Remote.Size > 0 {
				msg += fmt.Sprintf(" (%s)", humanize.Bytes(uint64(out.Remote.Size)))
			}
			fmt.Println(msg)
		default:
			logrus.WithError(out.Err).Errorf("Upload of %s failed", path)
			fmt.Printf("%s: %s\n", path, out.Status)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d uploads failed", failed, len(args))
	}
	return nil
}
