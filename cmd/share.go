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

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Prints the user's share id, creating one on first use",
	Long: `The share id is a stable opaque token other users can compare
against without knowing the username.`,
	Run: func(cmd *cobra.Command, args []string) {
		err := printShareID(viper.GetString("database"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(shareCmd)
}

func printShareID(dbPath string) error {
	user := strings.ToLower(viper.GetString("user"))
	db, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := db.CreateUser(user); err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	id, err := db.EnsureShareID(user)
	if err != nil {
		return fmt.Errorf("getting share id: %w", err)
	}

	fmt.Println(id)
	return nil
}
