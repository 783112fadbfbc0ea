package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jswirl/ollash/internal/app"
	"github.com/jswirl/ollash/internal/domain"
)

func newExplainCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "explain <command>",
		Short: "Explain what a command does",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDescribeTask(container, cmd, domain.TaskExplain, args)
		},
	}
}

func newImproveCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "improve <command>",
		Short: "Suggest a better version of a command",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDescribeTask(container, cmd, domain.TaskImprove, args)
		},
	}
}

func newAlternativesCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "alternatives <command>",
		Short: "List alternative ways to achieve the same result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDescribeTask(container, cmd, domain.TaskAlternatives, args)
		},
	}
}

// newAuditCommand combines the local rule verdict with the model's safety
// analysis. The local verdict prints first so it survives backend outages.
func newAuditCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "audit <command>",
		Short: "Analyze the safety of a command",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := strings.Join(args, " ")
			out := cmd.OutOrStdout()

			cfg, err := container.Config.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			verdict := container.Classifier.Classify(command, cfg.GetSafetyLevel())
			renderVerdict(out, verdict, cfg.GetSafetyLevel())

			analysis, err := container.Tasks.Describe(cmd.Context(), domain.TaskSafetyAnalysis, command, "")
			if err != nil {
				return fmt.Errorf("safety analysis unavailable: %w", err)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, analysis)
			return nil
		},
	}
}

func runDescribeTask(container *app.Container, cmd *cobra.Command, task domain.Task, args []string) error {
	text, err := container.Tasks.Describe(cmd.Context(), task, strings.Join(args, " "), "")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
