package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bestgames/bestgames/internal/server"
	"github.com/bestgames/bestgames/internal/utils"
	"github.com/bestgames/bestgames/pkg/catalog"
	"github.com/spf13/cobra"
)

const watchDebounce = 250 * time.Millisecond

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog page and JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		listenAddr, _ := cmd.Flags().GetString("listen")
		watch, _ := cmd.Flags().GetBool("watch")
		origins, _ := cmd.Flags().GetStringSlice("cors-origin")

		store := catalog.NewStore(catalogFile(cmd))
		if err := store.Load(); err != nil {
			utils.Log.Errorf("%v", err)
		} else {
			games, _ := store.Snapshot()
			utils.Log.Infof("Loaded %d games from %s", len(games), store.Path())
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if watch {
			go func() {
				if err := server.Watch(ctx, store, watchDebounce); err != nil {
					utils.Log.Errorf("watcher stopped: %v", err)
				}
			}()
		}

		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		return server.New(store, origins).Start(ctx, listenAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("file", "", "Catalog JSON file (default from catalog.file)")
	serveCmd.Flags().String("listen", ":8080", "HTTP listen address")
	serveCmd.Flags().Bool("watch", false, "Reload the catalog when the file changes")
	serveCmd.Flags().StringSlice("cors-origin", nil, "Allowed origins for /api/games (default any)")
}
