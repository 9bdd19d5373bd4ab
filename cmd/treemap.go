/*
Copyright 2026 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tastemap/tastemap/internal/render"
	"github.com/tastemap/tastemap/internal/store"
	"github.com/tastemap/tastemap/internal/treemap"
)

var treemapCmd = &cobra.Command{
	Use:   "treemap [from] [to (optional)]",
	Short: "Lays out the user's album playcounts as a squarified treemap",
	Long: `Uses all listening data by default, or the specified date or date
range. Date strings look like 'yyyy', 'yyyy-mm', or 'yyyy-mm-dd'. Prints
tile geometry as a table, or renders a PNG with --out.`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printTreemap(viper.GetString("database"), args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(treemapCmd)

	var number int
	treemapCmd.Flags().IntVarP(&number, "number", "n", 20, "number of albums to include")
	viper.BindPFlag("number", treemapCmd.Flags().Lookup("number"))

	var out string
	treemapCmd.Flags().StringVar(&out, "out", "", "write a PNG to this path instead of printing a table")
	viper.BindPFlag("out", treemapCmd.Flags().Lookup("out"))

	var width int
	treemapCmd.Flags().IntVar(&width, "width", 800, "PNG width in pixels")
	viper.BindPFlag("width", treemapCmd.Flags().Lookup("width"))

	var height int
	treemapCmd.Flags().IntVar(&height, "height", 600, "PNG height in pixels")
	viper.BindPFlag("height", treemapCmd.Flags().Lookup("height"))

	var font string
	treemapCmd.Flags().StringVar(&font, "font", "", "TTF font path for tile labels")
	viper.BindPFlag("font", treemapCmd.Flags().Lookup("font"))
}

func printTreemap(dbPath string, args []string) error {
	var start, end time.Time
	var err error
	if len(args) > 0 {
		start, end, err = parseDateRangeFromArgs(args)
		if err != nil {
			return err
		}
	}

	user := strings.ToLower(viper.GetString("user"))
	db, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	has, err := db.HasListens(user)
	if err != nil {
		return err
	}
	if !has {
		return fmt.Errorf("no listening data for %q, run update first", user)
	}

	counts, err := db.AlbumPlaycounts(user, start, end)
	if err != nil {
		return fmt.Errorf("getting album playcounts: %w", err)
	}
	if len(counts) == 0 {
		fmt.Println("No albums in range")
		return nil
	}

	number := viper.GetInt("number")
	if number > 0 && len(counts) > number {
		counts = counts[:number]
	}

	width := viper.GetInt("width")
	height := viper.GetInt("height")

	// AlbumPlaycounts orders by listens descending, which is the order the
	// squarify heuristic expects for the canonical layout.
	var items []treemap.Item
	for _, count := range counts {
		id := count.Artist + " - " + count.Album
		listens := count.Listens
		if listens < 1 {
			listens = 1
		}
		items = append(items, treemap.Item{
			ID:    id,
			Value: float64(listens),
			Name:  count.Album,
			Color: render.FallbackColor(id),
		})
	}

	tiles := treemap.Layout(items, treemap.Rect{
		X1: float64(width),
		Y1: float64(height),
	})

	outPath := viper.GetString("out")
	if outPath != "" {
		err := render.WritePNG(tiles, width, height, viper.GetString("font"), outPath)
		if err != nil {
			return fmt.Errorf("rendering treemap: %w", err)
		}
		fmt.Printf("Wrote %s\n", outPath)
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Album", "Listens", "X0", "Y0", "X1", "Y1"})
	for i, tile := range tiles {
		row := []string{
			tile.ID,
			strconv.FormatInt(counts[i].Listens, 10),
			fmt.Sprintf("%.1f", tile.Rect.X0),
			fmt.Sprintf("%.1f", tile.Rect.Y0),
			fmt.Sprintf("%.1f", tile.Rect.X1),
			fmt.Sprintf("%.1f", tile.Rect.Y1),
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("rendering table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}

	return nil
}
