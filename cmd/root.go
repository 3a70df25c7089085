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
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/ademuri/spotify-taste-tools/internal/features"
	"github.com/ademuri/spotify-taste-tools/internal/snapshot"
	"github.com/ademuri/spotify-taste-tools/internal/store"
)

var cfgFile string
var spotifyToken string
var spotifyUser string
var databasePath string
var countryCode string
var smtpUsername string
var smtpPassword string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "spotify-taste-tools",
	Short: "Performs analysis on Spotify listening data",
	Long: `Fetches listening data from Spotify, extracts a taste profile,
and generates recommendations and insight reports from it.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.spotify-taste-tools.yaml)")

	rootCmd.PersistentFlags().StringVarP(
		&spotifyToken, "token", "", "", "Spotify API access token")
	viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))

	rootCmd.PersistentFlags().StringVarP(
		&spotifyUser, "user", "u", "", "Spotify username to act on")
	rootCmd.MarkPersistentFlagRequired("user")
	viper.BindPFlag("user", rootCmd.PersistentFlags().Lookup("user"))

	rootCmd.PersistentFlags().StringVarP(
		&databasePath, "database", "d", "./spotify.db", "Path to the SQLite database")
	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))

	rootCmd.PersistentFlags().StringVar(
		&countryCode, "country", "US", "Market for catalog lookups")
	viper.BindPFlag("country", rootCmd.PersistentFlags().Lookup("country"))

	rootCmd.PersistentFlags().StringVar(&smtpUsername, "smtp_username", "", "SMTP username")
	viper.BindPFlag("smtp_username", rootCmd.PersistentFlags().Lookup("smtp_username"))

	rootCmd.PersistentFlags().StringVar(&smtpPassword, "smtp_password", "", "SMTP password")
	viper.BindPFlag("smtp_password", rootCmd.PersistentFlags().Lookup("smtp_password"))

	var from string
	rootCmd.PersistentFlags().StringVar(&from, "from", "", "From email address")
	viper.BindPFlag("from", rootCmd.PersistentFlags().Lookup("from"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".spotify-taste-tools" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".spotify-taste-tools")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

// loadSnapshot reads the stored snapshot for a user, translating a missing
// record into a hint to run update first.
func loadSnapshot(db *store.Store, user string) (*snapshot.Snapshot, error) {
	snap, err := db.LoadSnapshot(user)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("no listening data for %q - run update first", user)
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// loadOrComputeFeatures returns the stored feature set at the current schema
// version, computing and persisting it from the snapshot when missing.
func loadOrComputeFeatures(db *store.Store, user string, snap *snapshot.Snapshot) (features.FeatureSet, error) {
	f, err := db.LoadFeatures(user, features.SchemaVersion)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return features.FeatureSet{}, err
	}

	f = features.Extract(snap)
	if err := db.SaveFeatures(user, f); err != nil {
		return features.FeatureSet{}, fmt.Errorf("saving features: %w", err)
	}
	return f, nil
}
