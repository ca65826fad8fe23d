package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/bestgames/bestgames/internal/utils"
	"github.com/bestgames/bestgames/pkg/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the scrape cache",
}

// cachePath returns the cache DB named by --dbpath or cache.path.
func cachePath(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("dbpath")
	if path == "" {
		path = viper.GetString("cache.path")
	}
	return storage.ResolvePath(path)
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints statistics about the cached responses.",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := cachePath(cmd)
		if err != nil {
			return err
		}
		db, err := storage.Open(path)
		if err != nil {
			return fmt.Errorf("opening cache %s: %w", path, err)
		}
		defer db.Close()

		stats, err := db.GetStats(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("Cache: %s\n", path)
		if stats.AppsUpdatedAt.IsZero() {
			fmt.Println("Steam app list: not cached")
		} else {
			fmt.Printf("Steam app list: %d apps, fetched %s\n", stats.SteamApps, stats.AppsUpdatedAt.Local().Format("2006-01-02 15:04"))
		}
		if len(stats.Kinds) == 0 {
			fmt.Println("No cached responses.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "KIND\tENTRIES\tBYTES\t")

		var totalEntries int
		var totalBytes int64
		for _, k := range stats.Kinds {
			fmt.Fprintf(w, "%s\t%d\t%d\t\n", k.Kind, k.Entries, k.Bytes)
			totalEntries += k.Entries
			totalBytes += k.Bytes
		}

		fmt.Fprintln(w, " \t \t \t")
		fmt.Fprintf(w, "TOTAL\t%d\t%d\t\n", totalEntries, totalBytes)

		w.Flush()
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Deletes cached responses (all of them, or one --kind)",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("kind")

		path, err := cachePath(cmd)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		db, err := storage.OpenLocked(ctx, path, waitingForCache)
		if err != nil {
			return fmt.Errorf("opening cache %s: %w", path, err)
		}
		defer db.Close()

		n, err := db.Clear(ctx, kind)
		if err != nil {
			return err
		}
		if kind == "" {
			utils.Log.Infof("Removed %d cached responses and the Steam app list", n)
		} else {
			utils.Log.Infof("Removed %d cached %s responses", n, kind)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.PersistentFlags().String("dbpath", "", "Path to the SQLite cache (default from cache.path, else ~/.config/bestgames/cache.sqlite)")
	cacheClearCmd.Flags().String("kind", "", "Only clear one kind: appdetails, reviews, protondb, rawg, page")
}
