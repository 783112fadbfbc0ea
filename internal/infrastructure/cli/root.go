// Package cli exposes the cobra command tree and the terminal-facing
// adapters (prompter, renderer, clipboard).
package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jswirl/ollash/internal/app"
	"github.com/jswirl/ollash/internal/domain"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd builds the container and wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}
	return newRootCmd(container), nil
}

// newRootCmd wires the command tree onto an existing container. A bare
// invocation with arguments runs the generation pipeline directly;
// ArbitraryArgs keeps cobra from rejecting the query words as unknown
// subcommands.
func newRootCmd(container *app.Container) *cobra.Command {
	if container.Pipeline.Prompter == nil {
		container.Pipeline.Prompter = NewPrompter(nil, nil)
	}
	if container.Pipeline.Clipboard == nil {
		container.Pipeline.Clipboard = NewClipboard()
	}

	root := &cobra.Command{
		Use:   "ollash [query]",
		Short: "ollash - natural language to shell commands",
		Long:  "ollash turns natural-language requests into shell commands using a local Ollama model, with risk screening before anything runs.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runGenerate(container, cmd, args, genOptions{})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newGenCommand(container))
	root.AddCommand(newExplainCommand(container))
	root.AddCommand(newImproveCommand(container))
	root.AddCommand(newAlternativesCommand(container))
	root.AddCommand(newAuditCommand(container))
	root.AddCommand(newTestCommand(container))
	root.AddCommand(newModelsCommand(container))
	root.AddCommand(newSafetyCommand(container))
	root.AddCommand(newConfigCommand(container))
	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newStatsCommand(container))
	root.AddCommand(newDoctorCommand(container))
	return root
}

// genOptions carries the generation flags. The zero value is a plain run.
type genOptions struct {
	model   string
	yes     bool
	noExec  bool
	copyCmd bool
	timeout time.Duration
}

func newGenCommand(container *app.Container) *cobra.Command {
	var opts genOptions

	cmd := &cobra.Command{
		Use:   "gen [natural language]",
		Short: "Generate a command from natural language",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(container, cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "Override model name (default from config)")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Skip confirmation for commands with no warnings")
	cmd.Flags().BoolVarP(&opts.noExec, "no-exec", "n", false, "Print the command without executing it")
	cmd.Flags().BoolVarP(&opts.copyCmd, "copy", "c", false, "Copy generated command to clipboard")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Override model request timeout")

	return cmd
}

// runGenerate drives the pipeline for both the bare root invocation and the
// gen subcommand.
func runGenerate(container *app.Container, cmd *cobra.Command, args []string, opts genOptions) error {
	req := domain.PipelineRequest{
		Context:         cmd.Context(),
		Query:           domain.NewQuery(strings.Join(args, " ")),
		ModelOverride:   opts.model,
		AssumeYes:       opts.yes,
		NoExec:          opts.noExec,
		CopyToClipboard: opts.copyCmd,
		TimeoutOverride: opts.timeout,
	}
	result, err := container.Pipeline.Run(req)
	if err != nil {
		return err
	}
	renderResult(cmd.OutOrStdout(), result)
	if result.Execution != nil && result.Execution.ExitCode != 0 {
		return &domain.ExitError{Code: result.Execution.ExitCode}
	}
	return nil
}
