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
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ademuri/spotify-taste-tools/internal/cluster"
	"github.com/ademuri/spotify-taste-tools/internal/features"
	"github.com/ademuri/spotify-taste-tools/internal/store"
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Computes a taste profile from stored listening data",
	Long: `Extracts behavioral, temporal, genre, and audio features from the
stored snapshot, persists them, and prints a summary.`,
	Run: func(cmd *cobra.Command, args []string) {
		err := runFeatures(viper.GetString("database"), viper.GetString("user"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(featuresCmd)

	var asYaml bool
	featuresCmd.Flags().BoolVar(&asYaml, "yaml", false, "Print the full feature set as YAML instead of a summary table")
	viper.BindPFlag("features_yaml", featuresCmd.Flags().Lookup("yaml"))
}

func runFeatures(dbPath, user string) error {
	user = strings.ToLower(user)
	db, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	snap, err := loadSnapshot(db, user)
	if err != nil {
		return err
	}

	f := features.Extract(snap)
	if err := db.SaveFeatures(user, f); err != nil {
		return fmt.Errorf("saving features: %w", err)
	}

	if viper.GetBool("features_yaml") {
		encoder := yaml.NewEncoder(os.Stdout)
		encoder.SetIndent(2)
		if err := encoder.Encode(f); err != nil {
			return fmt.Errorf("encoding features: %w", err)
		}
		return nil
	}

	model := cluster.New()
	id, label := model.Predict(f)
	fmt.Print(featuresAnalysis(f, label))
	fmt.Println(model.Describe(id))
	return nil
}

// featuresAnalysis renders the profile as a metric table plus the readable
// summary used in emails.
func featuresAnalysis(f features.FeatureSet, clusterLabel string) Analysis {
	summary := features.Summarize(f)

	results := [][]string{{"Metric", "Value"}}
	add := func(name string, value float64) {
		results = append(results, []string{name, strconv.FormatFloat(value, 'f', 3, 64)})
	}

	add("Repeat rate", f.Behavioral.RepeatRate)
	add("Exploration score", f.Behavioral.ExplorationScore)
	add("Artist diversity", f.Behavioral.ArtistDiversity)
	add("Track loyalty", f.Behavioral.TrackLoyalty)
	add("Listening consistency", f.Behavioral.ListeningConsistency)
	results = append(results, []string{"Peak listening hour", strconv.Itoa(f.Temporal.PeakListeningHour)})
	add("Weekend ratio", f.Temporal.WeekendRatio)
	add("Listening time variance", f.Temporal.ListeningTimeVariance)
	add("Average popularity", f.TrackMetadata.AvgPopularity)
	add("Average duration (min)", f.TrackMetadata.AvgDurationMinutes)
	results = append(results, []string{"Track age preference", f.TrackMetadata.TrackAgePreference})
	add("Genre diversity", f.Genre.Diversity)
	add("Genre uniqueness", f.Genre.Uniqueness)
	results = append(results, []string{"Top genres", strings.Join(summary.TopGenres, ", ")})
	results = append(results, []string{"Archetype", clusterLabel})

	return Analysis{
		results: results,
		summary: fmt.Sprintf("%s. %s. %s taste, %s diversity.",
			summary.ListeningStyle, summary.PeakTime, summary.MusicTaste, summary.DiversityLevel),
	}
}
