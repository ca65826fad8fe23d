package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/bestgames/bestgames/pkg/catalog"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Filter, sort and print the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		games, err := catalog.LoadFile(catalogFile(cmd))
		if err != nil {
			return err
		}
		crit := criteriaFromFlags(cmd)
		shown := catalog.Apply(games, crit)

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(shown)
		}

		if len(shown) == 0 {
			fmt.Println("No games match the given filters.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "#\tTITLE\tRPS\tIGN\tPCGAMER\tPOINTS\tUSER SCORE\tMETACRITIC\tRELEASED\tSTEAM DECK\tPRICE")
		for i, g := range shown {
			c := catalog.NewCard(g)
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
				i+1,
				g.Title,
				rankCell(g, catalog.SourceRPS),
				rankCell(g, catalog.SourceIGN),
				rankCell(g, catalog.SourcePCGamer),
				catalog.Points(g),
				orDash(c.UserScore),
				orDash(metacriticCell(g)),
				orDash(c.ReleaseDate),
				c.Deck.Compat.Label,
				c.Price.Text,
			)
		}
		w.Flush()

		fmt.Printf("\nShowing %d of %d games\n", len(shown), len(games))
		return nil
	},
}

func rankCell(g catalog.Game, source string) string {
	if r := g.Rank(source); r > 0 {
		return "#" + strconv.Itoa(r)
	}
	return "-"
}

func metacriticCell(g catalog.Game) string {
	if g.Metacritic == nil {
		return ""
	}
	return strconv.Itoa(*g.Metacritic)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	rootCmd.AddCommand(listCmd)
	addCriteriaFlags(listCmd)
	listCmd.Flags().Bool("json", false, "Print matching records as JSON")
}
