package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"memedir/internal/browser"
	"memedir/internal/config"
)

var (
	scanSearch string
	scanSize   bool
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Print the image listing for a directory",
	Long: `Scan a directory with the configured extension filter and print the
matching files, the same listing the interactive browser shows.

Examples:
  memedir scan                  # Scan the configured workdir
  memedir scan ~/memes          # Scan another directory
  memedir scan -s "cat gif"     # Filter by search terms`,
	Args: cobra.MaximumNArgs(1),
	RunE: scanDir,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVarP(&scanSearch, "search", "s", "", "filter files by search terms")
	scanCmd.Flags().BoolVar(&scanSize, "size", true, "show file sizes")
}

func scanDir(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	dir := cfg.Browser.Workdir
	if len(args) > 0 {
		dir = args[0]
	}
	dir = config.ExpandWorkdir(dir)

	snapshot, err := browser.Scan(dir, cfg.Browser.Extensions, scanSearch)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, path := range snapshot.Paths() {
		line := filepath.Base(path)
		if scanSize {
			if info, err := os.Stat(path); err == nil {
				line += "\t" + humanize.Bytes(uint64(info.Size()))
			}
		}
		fmt.Fprintln(w, line)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d files\n", snapshot.Len())
	return nil
}
