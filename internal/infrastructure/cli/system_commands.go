package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jswirl/ollash/internal/app"
	"github.com/jswirl/ollash/internal/domain"
)

func newTestCommand(container *app.Container) *cobra.Command {
	var roundTrip bool

	cmd := &cobra.Command{
		Use:   "test [model]",
		Short: "Check connectivity to the model backend",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			cfg, err := container.Config.Load(ctx)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if !container.Model.IsReachable(ctx) {
				return fmt.Errorf("no response from %s", cfg.GetURL())
			}
			fmt.Fprintf(out, "Backend reachable at %s\n", cfg.GetURL())

			// Naming a model implies a round trip through it.
			model := ""
			if len(args) == 1 {
				model = args[0]
			}
			if roundTrip || model != "" {
				text, err := container.Tasks.Describe(ctx, domain.TaskExplain, "echo ok", model)
				if err != nil {
					return fmt.Errorf("model round trip failed: %w", err)
				}
				if model == "" {
					model = cfg.GetModel()
				}
				fmt.Fprintf(out, "Model %s responded (%d bytes)\n", model, len(text))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&roundTrip, "round-trip", false, "Also run a small generation through the configured model")
	return cmd
}

func newModelsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List models installed on the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := container.Model.ListModels(cmd.Context())
			if err != nil {
				return err
			}
			cfg, err := container.Config.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			for _, name := range names {
				marker := " "
				if name == cfg.GetModel() || strings.SplitN(name, ":", 2)[0] == cfg.GetModel() {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s\n", marker, name)
			}
			return nil
		},
	}
}

func newSafetyCommand(container *app.Container) *cobra.Command {
	safetyCmd := &cobra.Command{
		Use:   "safety",
		Short: "Show or change the active safety level",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showSafetyLevel(container, cmd)
		},
	}

	safetyCmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Show the active safety level",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showSafetyLevel(container, cmd)
			},
		},
		&cobra.Command{
			Use:   "set <low|medium|high>",
			Short: "Change the safety level",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				level, err := domain.ParseSafetyLevel(args[0])
				if err != nil {
					return err
				}
				if err := container.Config.Set(cmd.Context(), string(domain.KeySafetyLevel), string(level)); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Safety level set to %s\n", level)
				return nil
			},
		},
		&cobra.Command{
			Use:   "rules",
			Short: "List the risk rules active at the current level",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := container.Config.Load(cmd.Context())
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				level := cfg.GetSafetyLevel()
				out := cmd.OutOrStdout()
				for _, rule := range container.Classifier.Rules() {
					if !level.Activates(rule.MinLevel) {
						continue
					}
					fmt.Fprintf(out, "[%s] %s\n    %s\n", rule.MinLevel, rule.Reason, rule.Pattern)
				}
				return nil
			},
		},
	)

	return safetyCmd
}

func showSafetyLevel(container *app.Container, cmd *cobra.Command) error {
	cfg, err := container.Config.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), cfg.GetSafetyLevel())
	return nil
}

func newStatsCommand(container *app.Container) *cobra.Command {
	var useModel bool
	var limit int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize recorded outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if useModel {
				text, err := container.Tasks.AnalyzeHistory(cmd.Context(), limit)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, text)
				return nil
			}

			summary, err := container.Audit.Summary()
			if err != nil {
				return fmt.Errorf("read audit log: %w", err)
			}
			if summary.Total == 0 {
				fmt.Fprintln(out, "No outcomes recorded yet.")
				return nil
			}
			fmt.Fprintf(out, "Queries: %d\nExecuted: %d\nSkipped: %d\nWarned: %d\nNon-zero exits: %d\n",
				summary.Total, summary.Executed, summary.Skipped, summary.Warned, summary.NonZeroExits)
			return nil
		},
	}

	cmd.Flags().BoolVar(&useModel, "ai", false, "Ask the model to analyze recent history instead")
	cmd.Flags().IntVar(&limit, "limit", domain.DefaultMaxHistory, "Entries to feed into the analysis")
	return cmd
}

func newDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration, rules and backend connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			report := container.Doctor.Run(cmd.Context())
			renderHealthReport(cmd.OutOrStdout(), report)
			if !report.Healthy() {
				return &domain.ExitError{Code: 1}
			}
			return nil
		},
	}
}
