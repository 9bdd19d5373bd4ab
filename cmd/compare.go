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
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tastemap/tastemap/internal/compat"
	"github.com/tastemap/tastemap/internal/render"
	"github.com/tastemap/tastemap/internal/store"
)

var compareCmd = &cobra.Command{
	Use:   "compare <other-user>",
	Short: "Scores the user's taste against another stored profile",
	Long: `Prints a 0-100 compatibility score with a label and a breakdown of
the contributing factors. Both profiles must exist in the database.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := compareProfiles(viper.GetString("database"), args[0], viper.GetBool("save"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	var save bool
	compareCmd.Flags().BoolVar(&save, "save", false, "Cache the comparison against the other user's share id")
	viper.BindPFlag("save", compareCmd.Flags().Lookup("save"))
}

func compareProfiles(dbPath string, otherUser string, save bool) error {
	user := strings.ToLower(viper.GetString("user"))
	other := strings.ToLower(otherUser)

	db, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	mine, err := db.GetProfile(user)
	if err != nil {
		return fmt.Errorf("loading profile for %q: %w", user, err)
	}
	theirs, err := db.GetProfile(other)
	if err != nil {
		return fmt.Errorf("loading profile for %q: %w", other, err)
	}

	result := compat.Calculate(mine, theirs)
	if result == nil {
		fmt.Println("Not enough data to compare: both users need ranked albums")
		return nil
	}

	label, emoji := compat.Label(result.Score)
	fmt.Printf("%s and %s: %d/100 %s %s\n", user, other, result.Score, label, emoji)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Factor", ""})
	for _, factor := range result.Breakdown {
		sign := "+"
		if !factor.Positive {
			sign = "-"
		}
		if err := table.Append([]string{factor.Text, sign}); err != nil {
			return fmt.Errorf("rendering breakdown: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering breakdown: %w", err)
	}

	if !save {
		return nil
	}

	shareID, err := db.EnsureShareID(other)
	if err != nil {
		return fmt.Errorf("getting share id for %q: %w", other, err)
	}

	names := make(map[string]string, len(theirs.TopAlbums))
	colors := make(map[string]string, len(theirs.TopAlbums))
	for _, album := range theirs.TopAlbums {
		names[album] = album
		colors[album] = render.FallbackColor(album)
	}

	record := compat.NewComparisonRecord(shareID, theirs, names, colors, result.Score)
	if err := db.SaveComparison(user, record); err != nil {
		return fmt.Errorf("saving comparison: %w", err)
	}
	fmt.Printf("Saved comparison against share %s\n", shareID)

	return nil
}
