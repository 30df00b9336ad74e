// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"errors"
	"fmt"
	"github.com/alvinbaena/pwd-autopsy/internal/api"
	"github.com/alvinbaena/pwd-autopsy/internal/util"
	"github.com/alvinbaena/pwd-autopsy/pkg/autopsy"
	"github.com/alvinbaena/pwd-autopsy/pkg/hibp"
	"github.com/hashicorp/go-multierror"
	"github.com/manifoldco/promptui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/thinhdanggroup/executor"
	"io"
	"runtime"
	"sync"
	"unicode/utf8"
)

const maxPasswordLength = 128

var (
	analyzeCmd = &cobra.Command{
		Use:   "analyze [PASSWORD...]",
		Short: "Perform an autopsy on one or more passwords",
		Args: func(cmd *cobra.Command, args []string) error {
			if !interactive {
				if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
					return err
				}
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				return interactiveCommand(cmd.Context(), cmd.OutOrStdout())
			}
			return analyzeCommand(cmd.Context(), cmd.OutOrStdout(), args)
		},
	}
)

//goland:noinspection GoUnhandledErrorResult
func init() {
	analyzeCmd.Flags().BoolVarP(&interactive, "interactive", "n", false, "Interactive mode, passwords are typed in a masked prompt.")
	analyzeCmd.Flags().BoolVarP(&checkBreaches, "breaches", "b", false, "Look the passwords up in the Pwned Passwords range API.")
	analyzeCmd.Flags().StringVar(&hibpURL, "hibp-url", hibp.DefaultBaseURL, "Base URL of the Pwned Passwords API.")
	analyzeCmd.Flags().IntVarP(&threads, "threads", "t", 0, "Number of passwords analysed at the same time. If omitted or less than 1, defaults to the number of logical processors.")
	analyzeCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json or yaml.")
	analyzeCmd.Flags().BoolVar(&noColor, "no-color", false, "Do not colour the DNA heatmap.")

	rootCmd.AddCommand(analyzeCmd)
}

func analyzeCommand(ctx context.Context, out io.Writer, passwords []string) error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	r, err := newRenderer(format, !noColor)
	if err != nil {
		return err
	}

	checker, err := newChecker()
	if err != nil {
		return err
	}
	if checker != nil {
		defer checker.Close()
		defer checker.LogStats()
	}

	reports, lookupErr := runAutopsies(ctx, passwords, breachChecker(checker), threads)
	for _, rep := range reports {
		if err = r.Render(out, rep); err != nil {
			return err
		}
	}

	return lookupErr
}

func interactiveCommand(ctx context.Context, out io.Writer) error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	r, err := newRenderer(format, !noColor)
	if err != nil {
		return err
	}

	checker, err := newChecker()
	if err != nil {
		return err
	}
	if checker != nil {
		defer checker.Close()
		defer checker.LogStats()
	}

	prompt := promptui.Prompt{
		Label: "Password",
		Mask:  '*',
		Validate: func(input string) error {
			if len(input) == 0 {
				return errors.New("please enter a password")
			}
			if utf8.RuneCountInString(input) > maxPasswordLength {
				return fmt.Errorf("passwords are limited to %d characters", maxPasswordLength)
			}
			return nil
		},
	}

	log.Info().Msgf("Running interactive session. ^C to exit")
	for {
		password, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				log.Info().Msgf("Goodbye")
				return nil
			}
			return err
		}

		rep, err := autopsyOne(ctx, password, breachChecker(checker))
		if err != nil {
			log.Error().Err(err).Msg("Error during breach lookup")
		}
		if err = r.Render(out, rep); err != nil {
			return err
		}
	}
}

// newChecker builds the breach lookup client when --breaches is set, nil otherwise.
func newChecker() (*hibp.Client, error) {
	if !checkBreaches {
		return nil, nil
	}

	return hibp.NewClient(hibp.Config{
		BaseURL:   hibpURL,
		CacheSize: hibp.DefaultCacheSize,
		RetryMax:  hibp.DefaultRetryMax,
	})
}

// breachChecker avoids handing a typed nil *hibp.Client around as a non nil interface.
func breachChecker(c *hibp.Client) api.BreachChecker {
	if c == nil {
		return nil
	}
	return c
}

// autopsyOne analyses a single password. When the breach lookup fails the report is still returned,
// without a breach count, next to the error.
func autopsyOne(ctx context.Context, password string, checker api.BreachChecker) (report, error) {
	rep := report{
		Characteristics: autopsy.Analyze(password),
		DNA:             autopsy.AnalyzeDNA(password),
	}

	if checker == nil {
		return rep, nil
	}

	count, err := checker.BreachCount(ctx, password)
	if err != nil {
		return rep, err
	}

	rep.BreachCount = &count
	rep.Characteristics = rep.Characteristics.WithBreachCount(count)
	return rep, nil
}

// runAutopsies analyses every password, in parallel when there is more than one. Reports keep the order of
// passwords, breach lookup failures are collected and returned together.
func runAutopsies(ctx context.Context, passwords []string, checker api.BreachChecker, parallelism int) ([]report, error) {
	reports := make([]report, len(passwords))
	if len(passwords) == 1 {
		rep, err := autopsyOne(ctx, passwords[0], checker)
		reports[0] = rep
		if err != nil {
			return reports, multierror.Append(nil, fmt.Errorf("password #1: %w", err))
		}
		return reports, nil
	}

	s := util.Stats()
	defer s()

	workers := parallelism
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	tasks, err := executor.New(executor.Config{
		ReqPerSeconds: 0,
		QueueSize:     2 * workers,
		NumWorkers:    workers,
	})
	if err != nil {
		return nil, err
	}
	defer tasks.Close()

	var mu sync.Mutex
	var errs *multierror.Error

	for i, password := range passwords {
		err = tasks.Publish(func(i int, password string) {
			rep, err := autopsyOne(ctx, password, checker)
			reports[i] = rep
			if err != nil {
				mu.Lock()
				errs = multierror.Append(errs, fmt.Errorf("password #%d: %w", i+1, err))
				mu.Unlock()
			}
		}, i, password)
		if err != nil {
			return nil, err
		}
	}

	tasks.Wait()
	return reports, errs.ErrorOrNil()
}
