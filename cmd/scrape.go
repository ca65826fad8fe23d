package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bestgames/bestgames/internal/utils"
	"github.com/bestgames/bestgames/pkg/catalog"
	"github.com/bestgames/bestgames/pkg/enrich"
	"github.com/bestgames/bestgames/pkg/rankings"
	"github.com/bestgames/bestgames/pkg/rawg"
	"github.com/bestgames/bestgames/pkg/steam"
	"github.com/bestgames/bestgames/pkg/storage"
	"github.com/bestgames/bestgames/pkg/titles"
	"github.com/bestgames/bestgames/pkg/whttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape the ranking lists and build the catalog",
	Long: `Scrapes every configured ranking list, merges the entries by title, enriches each game with
Steam, ProtonDB and RAWG data and writes raw_games.json, merged_games.json and unmatched_games.txt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir, _ := cmd.Flags().GetString("out")
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		noCache, _ := cmd.Flags().GetBool("no-cache")
		dbPathFlag, _ := cmd.Flags().GetString("dbpath")
		specialFile, _ := cmd.Flags().GetString("special-cases")
		proxy, _ := rootCmd.PersistentFlags().GetString("proxy")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		client, err := whttp.NewClient(whttp.Options{
			UserAgent: viper.GetString("scrape.useragent"),
			Proxy:     proxy,
			Interval:  viper.GetDuration("scrape.ratelimit"),
		})
		if err != nil {
			return err
		}

		var db *storage.DB
		if !noCache {
			if dbPathFlag == "" {
				dbPathFlag = viper.GetString("cache.path")
			}
			dbPath, err := storage.ResolvePath(dbPathFlag)
			if err != nil {
				return err
			}
			db, err = storage.OpenLocked(ctx, dbPath, waitingForCache)
			if err != nil {
				return fmt.Errorf("opening cache %s: %w", dbPath, err)
			}
			defer db.Close()
			utils.Log.Debugf("Using cache %s", dbPath)
		}
		ttl := viper.GetDuration("scrape.cachettl")

		sources, err := buildSources(client, db, ttl)
		if err != nil {
			return err
		}
		entries, err := enrich.Collect(ctx, sources, viper.GetDuration("scrape.delay"), utils.Log)
		if err != nil {
			return err
		}

		special, err := loadSpecialCases(specialFile)
		if err != nil {
			return err
		}
		normalizer := titles.NewNormalizer(special)

		steamClient := steam.NewClient(client, db, ttl)
		index, err := enrich.LoadIndex(ctx, db, steamClient, normalizer, viper.GetFloat64("scrape.threshold"), ttl, utils.Log)
		if err != nil {
			return fmt.Errorf("loading steam app list: %w", err)
		}
		utils.Log.Infof("Steam app index: %d titles", index.Len())

		var rawgAPI enrich.RAWGAPI
		if key := viper.GetString("rawg.apikey"); key != "" {
			rawgAPI = rawg.NewClient(client, key, db, ttl)
		} else {
			utils.Log.Warn("No RAWG API key (rawg.apikey or BESTGAMES_RAWG_APIKEY); skipping RAWG enrichment")
		}

		res, err := enrich.Build(ctx, entries, enrich.Config{
			Normalizer:  normalizer,
			Matcher:     index,
			Steam:       steamClient,
			RAWG:        rawgAPI,
			Concurrency: concurrency,
			Log:         utils.Log,
			OnGameDone: func(g catalog.Game) {
				utils.Log.Debugf("Done: %s", g.Title)
			},
		})
		if err != nil {
			return err
		}

		if err := enrich.WriteOutputs(outDir, entries, res); err != nil {
			return fmt.Errorf("writing outputs: %w", err)
		}
		if len(res.Unmatched) > 0 {
			utils.Log.Infof("%d unmatched games written to %s/%s", len(res.Unmatched), outDir, enrich.UnmatchedFile)
		}
		utils.Log.Infof("Scraped %d total entries", len(entries))
		utils.Log.Infof("Found %d unique games", len(res.Games))
		return nil
	},
}

func waitingForCache() {
	utils.Log.Warn("Another bestgames process is using the cache, waiting for it to finish...")
}

func buildSources(client *whttp.Client, db *storage.DB, ttl time.Duration) ([]rankings.Source, error) {
	var cfgs []rankings.SourceConfig
	if err := viper.UnmarshalKey("scrape.sources", &cfgs); err != nil {
		return nil, fmt.Errorf("reading scrape.sources: %w", err)
	}
	if len(cfgs) == 0 {
		cfgs = rankings.DefaultSources()
	}
	sources := make([]rankings.Source, 0, len(cfgs))
	for _, c := range cfgs {
		s, err := rankings.NewListScraper(c, client, db, ttl)
		if err != nil {
			return nil, err
		}
		sources = append(sources, s)
	}
	return sources, nil
}

// loadSpecialCases merges scrape.specialcases with an optional JSON file
// of title -> canonical title.
func loadSpecialCases(path string) (map[string]string, error) {
	special := make(map[string]string)
	for k, v := range viper.GetStringMapString("scrape.specialcases") {
		special[k] = v
	}
	if path == "" {
		return special, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fromFile map[string]string
	if err := json.Unmarshal(data, &fromFile); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for k, v := range fromFile {
		special[k] = v
	}
	return special, nil
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
	scrapeCmd.Flags().StringP("out", "o", "docs/data", "Output directory")
	scrapeCmd.Flags().IntP("concurrency", "c", 4, "Number of games enriched in parallel")
	scrapeCmd.Flags().Bool("no-cache", false, "Do not read or write the response cache")
	scrapeCmd.Flags().String("dbpath", "", "Path to the SQLite cache (default from cache.path)")
	scrapeCmd.Flags().String("special-cases", "", "JSON file mapping titles to canonical titles")
}
