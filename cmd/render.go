package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bestgames/bestgames/internal/utils"
	"github.com/bestgames/bestgames/pkg/catalog"
	"github.com/bestgames/bestgames/pkg/web"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write the catalog as a static HTML page",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		view := web.CatalogView{Criteria: criteriaFromFlags(cmd), Static: true}
		games, err := catalog.LoadFile(catalogFile(cmd))
		if err != nil {
			utils.Log.Errorf("%v", err)
			view.LoadErr = err
		} else {
			view.Games = catalog.Apply(games, view.Criteria)
			view.Total = len(games)
			view.Stores = catalog.StoreNames(games)
		}

		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return err
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()

		bw := bufio.NewWriter(f)
		if err := web.CatalogPage(view).Render(bw); err != nil {
			return fmt.Errorf("rendering %s: %w", out, err)
		}
		if err := bw.Flush(); err != nil {
			return err
		}
		utils.Log.Infof("Wrote %d of %d games to %s", len(view.Games), view.Total, out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	addCriteriaFlags(renderCmd)
	renderCmd.Flags().StringP("out", "o", "docs/index.html", "Output HTML file")
}
