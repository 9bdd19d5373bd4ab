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

	"github.com/tastemap/tastemap/internal/store"
)

var setLyricCmd = &cobra.Command{
	Use:   "set-lyric <song> <line>",
	Short: "Sets the user's favorite lyric line for a song",
	Long: `The song must already appear in one of the ranked albums' song
lists. Lyric matching between users is by song, not by the line itself.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		err := setLyric(viper.GetString("database"), args[0], args[1])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(setLyricCmd)
}

func setLyric(dbPath string, song string, line string) error {
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

	picked := false
	for _, songs := range p.AlbumSongs {
		for _, s := range songs {
			if s == song {
				picked = true
			}
		}
	}
	if !picked {
		return fmt.Errorf("song %q is not in the profile, run set-songs first", song)
	}

	if err := db.SaveLyric(user, song, line); err != nil {
		return fmt.Errorf("saving lyric: %w", err)
	}

	fmt.Printf("Saved lyric for %s\n", song)
	return nil
}
