/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for mishtanim.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/mishtanim/cmd/cache"
	"bennypowers.dev/mishtanim/cmd/collections"
	"bennypowers.dev/mishtanim/cmd/importcmd"
	"bennypowers.dev/mishtanim/cmd/plan"
	"bennypowers.dev/mishtanim/cmd/pull"
	"bennypowers.dev/mishtanim/cmd/serve"
	"bennypowers.dev/mishtanim/cmd/version"
	"bennypowers.dev/mishtanim/cmd/watch"
	"bennypowers.dev/mishtanim/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "mishtanim",
	Short: "Import design tokens into a design file's variables",
	Long: `mishtanim imports named token values from token files into a design
file's variable collections, and pulls them back out again.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger.SetVerbose(verbose)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("file-key", "k", "", "Design file key to operate on")
	rootCmd.PersistentFlags().String("token", "", "Personal access token (defaults to $FIGMA_TOKEN)")
	rootCmd.PersistentFlags().StringP("collection", "c", "", "Collection title override")
	rootCmd.PersistentFlags().Bool("css-colors", false, "Import recognized CSS color keywords and functions as colors")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("api-url", "", "Override the variables API root")

	_ = viper.BindPFlag("file-key", rootCmd.PersistentFlags().Lookup("file-key"))
	_ = viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	_ = viper.BindPFlag("collection", rootCmd.PersistentFlags().Lookup("collection"))
	_ = viper.BindPFlag("css-colors", rootCmd.PersistentFlags().Lookup("css-colors"))
	_ = viper.BindPFlag("api-url", rootCmd.PersistentFlags().Lookup("api-url"))

	viper.SetEnvPrefix("MISHTANIM")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	// The conventional token variable works without the prefix.
	_ = viper.BindEnv("token", "MISHTANIM_TOKEN", "FIGMA_TOKEN")

	rootCmd.AddCommand(importcmd.Cmd)
	rootCmd.AddCommand(plan.Cmd)
	rootCmd.AddCommand(collections.Cmd)
	rootCmd.AddCommand(pull.Cmd)
	rootCmd.AddCommand(watch.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(cache.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
