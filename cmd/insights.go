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
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ademuri/spotify-taste-tools/internal/cluster"
	"github.com/ademuri/spotify-taste-tools/internal/insights"
	"github.com/ademuri/spotify-taste-tools/internal/store"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Generates a taste insight report",
	Long: `Analyzes the stored snapshot for genre entropy, mood, deviation
from your archetype, and taste evolution, printed as YAML.`,
	Run: func(cmd *cobra.Command, args []string) {
		err := runInsights(os.Stdout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(out io.Writer) error {
	user := strings.ToLower(viper.GetString("user"))
	db, err := store.New(viper.GetString("database"))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	snap, err := loadSnapshot(db, user)
	if err != nil {
		return err
	}
	f, err := loadOrComputeFeatures(db, user, snap)
	if err != nil {
		return err
	}

	_, label := cluster.New().Predict(f)
	report := insights.Build(snap, f, label)

	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}
