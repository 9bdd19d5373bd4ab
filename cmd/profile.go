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
	"gopkg.in/yaml.v3"

	"github.com/tastemap/tastemap/internal/store"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Prints the user's stored taste profile",
	Long:  `Dumps the ranked albums, weights, songs, and lyrics as YAML.`,
	Run: func(cmd *cobra.Command, args []string) {
		err := printProfile(viper.GetString("database"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
}

func printProfile(dbPath string) error {
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
		fmt.Printf("No profile for %q yet, run set-albums first\n", user)
		return nil
	}

	out, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	fmt.Print(string(out))
	return nil
}
