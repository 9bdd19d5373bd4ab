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

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tastemap/tastemap/internal/store"
	"github.com/tastemap/tastemap/internal/weighting"
)

var allocateCmd = &cobra.Command{
	Use:   "allocate <preset>",
	Short: "Distributes 100 points over the ranked albums with a preset",
	Long: `Replaces the stored weights. Preset is one of: balanced,
one-favorite, top-heavy.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := allocateWeights(viper.GetString("database"), weighting.Preset(args[0]))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(allocateCmd)
}

func allocateWeights(dbPath string, preset weighting.Preset) error {
	user := strings.ToLower(viper.GetString("user"))
	db, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	p, err := db.GetProfile(user)
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}
	if !p.HasAlbums() {
		return fmt.Errorf("no ranked albums for %q, run set-albums first", user)
	}

	weights, err := weighting.AllocateToItems(p.TopAlbums, preset)
	if err != nil {
		return err
	}
	if err := db.SaveWeights(user, weights); err != nil {
		return fmt.Errorf("saving weights: %w", err)
	}

	return printWeights(p.TopAlbums, weights)
}

func printWeights(rankedAlbums []string, weights map[string]int) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Rank", "Album", "Points"})
	for i, album := range rankedAlbums {
		row := []string{strconv.Itoa(i + 1), album, strconv.Itoa(weights[album])}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("rendering table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}
	return nil
}
