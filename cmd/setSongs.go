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
)

var setSongsCmd = &cobra.Command{
	Use:   "set-songs <album> <song...>",
	Short: "Sets the ranked songs for one of the user's top albums",
	Long: `Takes an album already present in the ranking, then one to three
songs in rank order. Use 'Artist - Song' strings so songs compare across
users. Replaces any previous songs for that album.`,
	Args: cobra.RangeArgs(2, 1+profile.MaxSongsPerAlbum),
	Run: func(cmd *cobra.Command, args []string) {
		err := setSongs(viper.GetString("database"), args[0], args[1:])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(setSongsCmd)
}

func setSongs(dbPath string, album string, songs []string) error {
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

	ranked := false
	for _, a := range p.TopAlbums {
		if a == album {
			ranked = true
		}
	}
	if !ranked {
		return fmt.Errorf("album %q is not in the ranking, run set-albums first", album)
	}

	if p.AlbumSongs == nil {
		p.AlbumSongs = make(map[string][]string)
	}
	p.AlbumSongs[album] = songs
	if err := p.Validate(); err != nil {
		return err
	}

	if err := db.SaveAlbumSongs(user, album, songs); err != nil {
		return fmt.Errorf("saving songs: %w", err)
	}

	for i, song := range songs {
		fmt.Printf("#%d %s\n", i+1, song)
	}
	return nil
}
