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
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/spotify-taste-tools/internal/catalog"
	"github.com/ademuri/spotify-taste-tools/internal/features"
	"github.com/ademuri/spotify-taste-tools/internal/store"
)

type UpdateConfig struct {
	DbPath string
	User   string
	Token  string
	Force  bool
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Fetches listening data from Spotify",
	Long:  `Stores a snapshot of top tracks, recent plays, and followed artists in a local SQLite database.`,
	Run: func(cmd *cobra.Command, args []string) {
		config := UpdateConfig{
			DbPath: viper.GetString("database"),
			User:   viper.GetString("user"),
			Token:  viper.GetString("token"),
			Force:  viper.GetBool("force"),
		}

		err := updateDatabase(config)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)

	var force bool
	updateCmd.Flags().BoolVarP(&force, "force", "f", false, "Fetch a fresh snapshot even if one was taken recently (idempotent)")
	viper.BindPFlag("force", updateCmd.Flags().Lookup("force"))
}

func updateDatabase(config UpdateConfig) error {
	if config.Token == "" {
		return fmt.Errorf("--token is required to fetch from Spotify")
	}

	user := strings.ToLower(config.User)
	db, err := store.New(config.DbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	err = db.CreateUser(user)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	lastUpdated, err := db.GetLastUpdated(user)
	if err != nil {
		return err
	}
	now := time.Now()
	if !lastUpdated.IsZero() && now.Sub(lastUpdated).Hours() < 24 && !config.Force {
		fmt.Printf("User data was already updated in the past 24 hours\n")
		return nil
	}

	client := catalog.NewClient(config.Token)
	snap, err := client.FetchSnapshot(context.Background())
	if err != nil {
		return fmt.Errorf("fetching snapshot: %w", err)
	}

	if err := db.SaveSnapshot(user, snap); err != nil {
		return err
	}

	// Features are derived state; recompute eagerly so reads never see a
	// stale profile next to a fresh snapshot.
	if err := db.SaveFeatures(user, features.Extract(snap)); err != nil {
		return err
	}

	if err := db.SetLastUpdated(user, now); err != nil {
		return err
	}

	fmt.Printf("Fetched %d top tracks, %d recent plays, %d artists\n",
		len(snap.TopTracksShort)+len(snap.TopTracksMedium)+len(snap.TopTracksLong),
		len(snap.RecentlyPlayed), len(snap.Artists))
	return nil
}
