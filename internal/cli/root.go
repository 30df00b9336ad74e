// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "pwd-autopsy [COMMAND] [OPTIONS]",
		Short: "Find out how your password would die",
		Long: "Analyse passwords locally: strength score, brute-force crack time, per character weaknesses and the " +
			"most likely cause of death. Optionally checks the Pwned Passwords (haveibeenpwned.com) range API, " +
			"only the first 5 characters of the SHA-1 hash ever leave the machine",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print more information on the processing")
	rootCmd.PersistentFlags().BoolVar(&profile, "profile", false, "Enable the profiling server (pprof) when running commands")
	rootCmd.PersistentFlags().Uint16Var(&pprofPort, "profile-port", 6060, "The port to use for the pprof server. Only used if the profile flag is set")
}

func Execute() error {
	return rootCmd.Execute()
}
