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
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ademuri/spotify-taste-tools/internal/catalog"
	"github.com/ademuri/spotify-taste-tools/internal/cluster"
	"github.com/ademuri/spotify-taste-tools/internal/evaluate"
	"github.com/ademuri/spotify-taste-tools/internal/recommend"
	"github.com/ademuri/spotify-taste-tools/internal/store"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Scores the quality of generated recommendations",
	Long: `Runs a recommendation pass and reports precision, recall, F1,
diversity, and novelty at k as YAML.`,
	Run: func(cmd *cobra.Command, args []string) {
		err := runEvaluate()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	var k int
	evaluateCmd.Flags().IntVarP(&k, "k", "k", 10, "Cutoff rank for precision and recall")
	viper.BindPFlag("k", evaluateCmd.Flags().Lookup("k"))

	var strict bool
	evaluateCmd.Flags().BoolVar(&strict, "strict", false, "Report zero precision when no genre matches instead of a projected estimate")
	viper.BindPFlag("strict", evaluateCmd.Flags().Lookup("strict"))
}

func runEvaluate() error {
	if viper.GetInt("k") < 1 {
		return fmt.Errorf("--k must be at least 1")
	}

	token := viper.GetString("token")
	if token == "" {
		return fmt.Errorf("--token is required to query the Spotify catalog")
	}

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
	seeds := recommend.ExtractSeedArtists(snap.TopTracksMedium)

	engine := recommend.NewEngine(catalog.NewClient(token), viper.GetString("country"))
	result, err := engine.Generate(context.Background(), seeds, f, label, viper.GetInt("k")*2)
	if errors.Is(err, recommend.ErrNoSeeds) {
		fmt.Println("Not enough listening data to evaluate - run update first")
		os.Exit(1)
	}
	if err != nil {
		return err
	}

	evaluator := &evaluate.Evaluator{Strict: viper.GetBool("strict")}
	report := evaluator.Evaluate(result.Tracks, viper.GetInt("k"))

	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}
