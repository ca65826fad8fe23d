package cmd

import (
	"net/url"
	"strconv"

	"github.com/bestgames/bestgames/internal/server"
	"github.com/bestgames/bestgames/internal/utils"
	"github.com/bestgames/bestgames/pkg/catalog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// addCriteriaFlags registers the filter and sort flags shared by list
// and render.
func addCriteriaFlags(cmd *cobra.Command) {
	cmd.Flags().String("file", "", "Catalog JSON file (default from catalog.file)")
	cmd.Flags().StringP("search", "s", "", "Case-insensitive title search")
	cmd.Flags().String("sort", string(catalog.SortTitle), "Sort by: title, rps, ign, pcgamer, score, metacritic, release, points")
	cmd.Flags().StringSliceP("platform", "p", nil, "Required platforms: windows, macos, linux, switch, steamdeck (repeatable)")
	cmd.Flags().StringSlice("store", nil, "Required stores (repeatable)")
	cmd.Flags().Int("min-metacritic", 0, "Minimum Metacritic score (0-100)")
}

// criteriaFromFlags validates the flags through the same path as the web
// form. Invalid values are reset and logged.
func criteriaFromFlags(cmd *cobra.Command) catalog.Criteria {
	search, _ := cmd.Flags().GetString("search")
	sortKey, _ := cmd.Flags().GetString("sort")
	platforms, _ := cmd.Flags().GetStringSlice("platform")
	stores, _ := cmd.Flags().GetStringSlice("store")
	minMC, _ := cmd.Flags().GetInt("min-metacritic")

	values := url.Values{}
	values.Set("search", search)
	values.Set("sort", sortKey)
	values["platform"] = platforms
	values["store"] = stores
	if minMC != 0 {
		values.Set("min_metacritic", strconv.Itoa(minMC))
	}

	crit, err := server.ParseCriteria(values)
	if err != nil {
		utils.Log.Warnf("%v; using defaults for those", err)
	}
	return crit
}

func catalogFile(cmd *cobra.Command) string {
	if f, _ := cmd.Flags().GetString("file"); f != "" {
		return f
	}
	if f := viper.GetString("catalog.file"); f != "" {
		return f
	}
	return defaultCatalogFile
}
