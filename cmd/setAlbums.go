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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tastemap/tastemap/internal/profile"
	"github.com/tastemap/tastemap/internal/store"
	"github.com/tastemap/tastemap/internal/weighting"
)

var setAlbumsCmd = &cobra.Command{
	Use:   "set-albums <album...>",
	Short: "Sets the user's ranked top albums",
	Long: `Takes one to three albums in rank order, most loved first. Use
'Artist - Album' strings so albums compare across users. Replaces any
previous ranking and seeds a balanced weight allocation.`,
	Args: cobra.RangeArgs(1, profile.MaxTopAlbums),
	Run: func(cmd *cobra.Command, args []string) {
		err := setAlbums(viper.GetString("database"), args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(setAlbumsCmd)
}

func setAlbums(dbPath string, albums []string) error {
	p := &profile.Profile{TopAlbums: albums}
	if err := p.Validate(); err != nil {
		return err
	}

	user := strings.ToLower(viper.GetString("user"))
	db, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := db.CreateUser(user); err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	if err := db.SaveTopAlbums(user, albums); err != nil {
		return fmt.Errorf("saving top albums: %w", err)
	}

	weights, err := weighting.AllocateToItems(albums, weighting.Balanced)
	if err != nil {
		return fmt.Errorf("seeding weights: %w", err)
	}
	if err := db.SaveWeights(user, weights); err != nil {
		return fmt.Errorf("saving weights: %w", err)
	}

	for i, album := range albums {
		fmt.Printf("#%d %s (%d points)\n", i+1, album, weights[album])
	}
	return nil
}
