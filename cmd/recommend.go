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
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/spotify-taste-tools/internal/catalog"
	"github.com/ademuri/spotify-taste-tools/internal/cluster"
	"github.com/ademuri/spotify-taste-tools/internal/recommend"
	"github.com/ademuri/spotify-taste-tools/internal/store"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Generates track recommendations from the taste profile",
	Long: `Seeds the Spotify catalog with your top artists, scores candidates
against your genre profile, and prints a ranked list.`,
	Run: func(cmd *cobra.Command, args []string) {
		err := runRecommend()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	var limit int
	recommendCmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum number of recommendations")
	viper.BindPFlag("limit", recommendCmd.Flags().Lookup("limit"))

	var clusterFilter bool
	recommendCmd.Flags().BoolVar(&clusterFilter, "cluster-filter", false, "Gate candidates by archetype popularity range")
	viper.BindPFlag("cluster-filter", recommendCmd.Flags().Lookup("cluster-filter"))

	var shuffleSeed int64
	recommendCmd.Flags().Int64Var(&shuffleSeed, "shuffle-seed", 0, "Seed for result shuffling, 0 means random")
	viper.BindPFlag("shuffle-seed", recommendCmd.Flags().Lookup("shuffle-seed"))
}

func runRecommend() error {
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
	engine.ClusterFilter = viper.GetBool("cluster-filter")
	if seed := viper.GetInt64("shuffle-seed"); seed != 0 {
		engine.Rand = rand.New(rand.NewSource(seed))
	}

	result, err := engine.Generate(context.Background(), seeds, f, label, viper.GetInt("limit"))
	if errors.Is(err, recommend.ErrNoSeeds) {
		fmt.Println("Not enough listening data to generate recommendations - run update first")
		os.Exit(1)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Archetype: %s\nStrategy: %s\nSeeds: %d artists, %d genres\n\n",
		result.Cluster, result.Strategy, result.SeedsUsed.Artists, result.SeedsUsed.Genres)
	fmt.Print(recommendAnalysis(result))
	return nil
}

func recommendAnalysis(result *recommend.Result) Analysis {
	results := [][]string{{"#", "Track", "Artists", "Album", "Pop", "Why"}}
	for i, t := range result.Tracks {
		var artists []string
		for _, a := range t.Artists {
			artists = append(artists, a.Name)
		}
		results = append(results, []string{
			strconv.Itoa(i + 1),
			t.Name,
			strings.Join(artists, ", "),
			t.AlbumName,
			strconv.Itoa(t.Popularity),
			t.Explanation,
		})
	}

	return Analysis{
		results: results,
		summary: fmt.Sprintf("%d recommendations", len(result.Tracks)),
	}
}
