/*
Copyright 2020 Google LLC

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
	"net/smtp"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/spotify-taste-tools/internal/cluster"
	"github.com/ademuri/spotify-taste-tools/internal/insights"
	"github.com/ademuri/spotify-taste-tools/internal/store"
)

type SendEmailConfig struct {
	DbPath       string
	User         string
	From         string
	To           string
	DryRun       bool
	SMTPUsername string
	SMTPPassword string
}

var emailCmd = &cobra.Command{
	Use:   "email <address>",
	Short: "Sends a taste report email",
	Long:  `Emails the feature summary and insight report to the specified address.`,
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("from") == "" {
			return fmt.Errorf("required flag(s) \"from\" not set")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		config := SendEmailConfig{
			DbPath:       viper.GetString("database"),
			User:         viper.GetString("user"),
			From:         viper.GetString("from"),
			To:           args[0],
			DryRun:       viper.GetBool("dryRun"),
			SMTPUsername: viper.GetString("smtp_username"),
			SMTPPassword: viper.GetString("smtp_password"),
		}
		err := sendEmail(config)
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

func sendEmail(config SendEmailConfig) error {
	subject, out, err := generateEmailContent(config)
	if err != nil {
		return err
	}

	if config.DryRun {
		fmt.Printf("Would have sent email: \nsubject: %s\n%s\n", subject, out)
		return nil
	}

	if config.SMTPUsername == "" || config.SMTPPassword == "" {
		return fmt.Errorf("smtp_username and smtp_password must be set in order to send emails")
	}

	msg := "From: spotify-taste-tools <" + config.From + ">\r\n" +
		"To: " + config.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
		"\r\n" +
		out

	auth := smtp.PlainAuth("", config.SMTPUsername, config.SMTPPassword, "smtp.gmail.com")
	err = smtp.SendMail("smtp.gmail.com:587", auth, config.From, []string{config.To}, []byte(msg))
	if err != nil {
		return fmt.Errorf("sendEmail: %w", err)
	}

	return nil
}

func generateEmailContent(config SendEmailConfig) (subject string, body string, err error) {
	user := strings.ToLower(config.User)
	db, err := store.New(config.DbPath)
	if err != nil {
		return "", "", fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	snap, err := loadSnapshot(db, user)
	if err != nil {
		return "", "", err
	}
	f, err := loadOrComputeFeatures(db, user, snap)
	if err != nil {
		return "", "", err
	}

	_, label := cluster.New().Predict(f)
	report := insights.Build(snap, f, label)

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
	out += fmt.Sprintf("<h2>Taste profile for %s:</h2>\n", config.User)
	out += featuresAnalysis(f, label).HTML()

	out += "<h2>Insights:</h2>\n"
	out += insightsHTML(report)
	out += `
  </body>
</html>
`

	subject = fmt.Sprintf("Taste report for %s %s", config.User, time.Now().Format("2006-01-02"))
	return subject, out, nil
}

func insightsHTML(report insights.Report) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<p><strong>Archetype:</strong> %s</p>\n", report.ClusterLabel))
	sb.WriteString(fmt.Sprintf("<p><strong>Genre entropy:</strong> %.2f</p>\n", report.EntropyScore))
	sb.WriteString(fmt.Sprintf("<p><strong>Mood:</strong> %s</p>\n", report.Mood.Label))
	if !report.AudioMeasured {
		sb.WriteString("<p>No audio features were available; mood and deviation use neutral defaults.</p>\n")
	}

	if len(report.Evolution.RisingGenres) > 0 {
		sb.WriteString("<p><strong>New Interests:</strong> ")
		var genres []string
		for _, g := range report.Evolution.RisingGenres {
			genres = append(genres, g.Genre)
		}
		sb.WriteString(strings.Join(genres, ", "))
		sb.WriteString("</p>\n")
	}
	if len(report.Evolution.FallingGenres) > 0 {
		sb.WriteString("<p><strong>Fading Interests:</strong> ")
		var genres []string
		for _, g := range report.Evolution.FallingGenres {
			genres = append(genres, g.Genre)
		}
		sb.WriteString(strings.Join(genres, ", "))
		sb.WriteString("</p>\n")
	}
	sb.WriteString(fmt.Sprintf("<p><strong>Taste stability:</strong> %.2f</p>\n", report.Evolution.StabilityScore))

	return sb.String()
}
