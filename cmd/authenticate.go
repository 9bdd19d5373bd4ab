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
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/ademuri/lastfm-go/lastfm"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tastemap/tastemap/internal/store"
)

var authenticateCmd = &cobra.Command{
	Use:   "authenticate <email> --user=foo",
	Short: "Gets a session key for the given user.",
	Long:  `This is needed if the user has marked their data as private.`,
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLastFmKeys(cmd, args); err != nil {
			return err
		}
		if viper.GetString("from") == "" {
			return fmt.Errorf("required flag(s) \"from\" not set")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		err := getSessionKey(viper.GetString("database"), viper.GetString("from"), args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(authenticateCmd)
}

func getSessionKey(dbPath string, fromAddress string, toAddress string) error {
	user := strings.ToLower(viper.GetString("user"))
	db, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := db.CreateUser(user); err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	existing, err := db.GetSessionKey(user)
	if err != nil {
		return err
	}
	if existing != "" {
		return fmt.Errorf("user %q already has a session key", user)
	}

	lastfmClient := lastfm.New(lastFmApiKey, lastFmSecret)
	lastfmClient.SetUserAgent("tastemap/1.0")

	authToken, err := lastfmClient.GetToken()
	if err != nil {
		return fmt.Errorf("getting token: %w", err)
	}
	authUrl := lastfmClient.GetAuthTokenUrl(authToken)

	from := mail.NewEmail("tastemap", fromAddress)
	subject := "Authenticate tastemap"
	to := mail.NewEmail(toAddress, toAddress)
	bodyText := "Click here to authenticate: " + authUrl
	message := mail.NewSingleEmail(from, subject, to, bodyText, bodyText)
	client := sendgrid.NewSendClient(viper.GetString("sendgrid_api_key"))
	_, err = client.Send(message)
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Sent authentication email, press enter once the link is approved")
	reader.ReadString('\n')

	lastfmClient.LoginWithToken(authToken)
	sessionKey := lastfmClient.GetSessionKey()

	if err := db.SetSessionKey(user, sessionKey); err != nil {
		return fmt.Errorf("saving session key: %w", err)
	}

	fmt.Printf("Successfully authenticated %q\n", user)
	return nil
}
