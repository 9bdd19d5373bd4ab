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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tastemap/tastemap/internal/store"
	"github.com/tastemap/tastemap/internal/weighting"
)

var adjustCmd = &cobra.Command{
	Use:   "adjust <album> <points>",
	Short: "Sets one album's weight, rebalancing the others",
	Long: `The difference is absorbed proportionally by the other ranked
albums, then the whole allocation is renormalized to sum to 100.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		points, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Printf("points must be an integer: %v\n", err)
			os.Exit(1)
		}
		err = adjustWeight(viper.GetString("database"), args[0], points)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(adjustCmd)
}

func adjustWeight(dbPath string, album string, points int) error {
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
	if len(p.AlbumWeights) == 0 {
		return fmt.Errorf("no weights for %q, run allocate first", user)
	}

	found := false
	for _, a := range p.TopAlbums {
		if a == album {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("album %q is not in the ranking", album)
	}

	weights := weighting.AdjustWeight(p.AlbumWeights, p.TopAlbums, album, points)
	if err := db.SaveWeights(user, weights); err != nil {
		return fmt.Errorf("saving weights: %w", err)
	}

	return printWeights(p.TopAlbums, weights)
}
