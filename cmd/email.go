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

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tastemap/tastemap/internal/compat"
	"github.com/tastemap/tastemap/internal/store"
)

type CompatEmailConfig struct {
	DbPath    string
	User      string
	OtherUser string
	From      string
	To        string
	DryRun    bool
}

var emailCmd = &cobra.Command{
	Use:   "email <address> <other-user>",
	Short: "Emails a compatibility report",
	Long:  `Scores the user's taste against another stored profile and sends the result as HTML.`,
	Args:  cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("from") == "" {
			return fmt.Errorf("required flag(s) \"from\" not set")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		config := CompatEmailConfig{
			DbPath:    viper.GetString("database"),
			User:      strings.ToLower(viper.GetString("user")),
			OtherUser: strings.ToLower(args[1]),
			From:      viper.GetString("from"),
			To:        args[0],
			DryRun:    viper.GetBool("dryRun"),
		}
		err := sendCompatEmail(config)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(emailCmd)

	var dryRun bool
	emailCmd.Flags().BoolVarP(&dryRun, "dry_run", "n", false, "When true, just print instead of emailing")
	viper.BindPFlag("dryRun", emailCmd.Flags().Lookup("dry_run"))
}

func sendCompatEmail(config CompatEmailConfig) error {
	db, err := store.New(config.DbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	mine, err := db.GetProfile(config.User)
	if err != nil {
		return fmt.Errorf("loading profile for %q: %w", config.User, err)
	}
	theirs, err := db.GetProfile(config.OtherUser)
	if err != nil {
		return fmt.Errorf("loading profile for %q: %w", config.OtherUser, err)
	}

	result := compat.Calculate(mine, theirs)
	if result == nil {
		fmt.Println("Not enough data to compare: both users need ranked albums")
		return nil
	}

	subject, body := generateCompatEmailContent(config, result)

	if config.DryRun {
		fmt.Printf("Would have sent email: \nsubject: %s\n%s\n", subject, body)
		return nil
	}

	from := mail.NewEmail("tastemap", config.From)
	to := mail.NewEmail(config.To, config.To)
	message := mail.NewSingleEmail(from, subject, to, body, body)
	client := sendgrid.NewSendClient(viper.GetString("sendgrid_api_key"))
	_, err = client.Send(message)
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}

func generateCompatEmailContent(config CompatEmailConfig, result *compat.Result) (subject string, body string) {
	label, emoji := compat.Label(result.Score)

	out := `
<html>
  <head>
<style>
td {
  padding: 0.1em 0.2em;
}
table, th, td {
  border: 1px solid black;
  border-collapse: collapse;
}
</style>
  </head>
  <body>
`
	out += fmt.Sprintf("<h2>%s and %s: %d/100 %s %s</h2>\n",
		config.User, config.OtherUser, result.Score, label, emoji)
	out += `
	<table>
		<tbody>
`
	for _, factor := range result.Breakdown {
		sign := "+"
		if !factor.Positive {
			sign = "-"
		}
		out += fmt.Sprintf("<tr><td>%s</td><td>%s</td></tr>\n", factor.Text, sign)
	}
	out += `
		</tbody>
	</table>
  </body>
</html>
`

	subject = fmt.Sprintf("Compatibility report for %s and %s: %s",
		config.User, config.OtherUser, label)
	return subject, out
}
