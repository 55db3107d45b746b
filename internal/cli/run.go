package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hupe1980/blackboard"
	"github.com/hupe1980/blackboard/config"
	"github.com/hupe1980/blackboard/core"
	"github.com/hupe1980/blackboard/eventlog"
	"github.com/hupe1980/blackboard/geometry"
	"github.com/hupe1980/blackboard/logging"
	"github.com/hupe1980/blackboard/memory"
	"github.com/hupe1980/blackboard/render"
	"github.com/hupe1980/blackboard/scenario"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	defaults := config.NewDefaultConfig()

	cmd := &cobra.Command{
		Use:   "run [scenario.yaml...]",
		Short: "Run scenarios through the triangle pipeline",
		Long: `Run triangle scenarios through the angle deduction and right angle
pipeline. Without arguments the built-in scenarios are used.

Each scenario seeds the memory store, runs the pipeline and prints the
narration, optional memory dumps and the result.

Example:
  blackboard run
  blackboard run --shared-memory
  blackboard run --strict ./scenarios/*.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(cmd.OutOrStdout(), cmd.ErrOrStderr(), rootOpts.Config, args)
		},
	}

	// Values reach the command through viper; see bindFlags.
	cmd.Flags().Bool("strict", defaults.Run.Strict, "exit non-zero when a pipeline fails or an expectation is not met")
	cmd.Flags().Bool("dump", defaults.Run.Dump, "print the memory store before and after each run")
	cmd.Flags().Bool("shared-memory", defaults.Run.SharedMemory, "reuse one memory store across scenarios")

	return cmd
}

func runScenarios(out, errOut io.Writer, cfg *config.Config, paths []string) error {
	var (
		all []*scenario.Scenario
		err error
	)
	if len(paths) == 0 {
		all, err = scenario.Builtin()
	} else {
		all, err = scenario.LoadAll(paths)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "loading scenarios", err)
	}

	lc := cfg.LoggerConfig()
	lc.Output = errOut
	logger := logging.NewLogger(lc)
	events := eventlog.Multi(eventlog.NewConsole(out), eventlog.NewLoggerSink(logger, "source", "narration"))
	dumper := render.NewDumper().WithTitle("SC Memory Dump")

	var shared core.MemoryStore
	if cfg.Run.SharedMemory {
		shared = memory.NewInMemoryStore()
	}

	failed := 0
	for i, s := range all {
		if i > 0 {
			fmt.Fprintln(out)
		}
		b := blackboard.New(func(o *blackboard.Options) {
			if shared != nil {
				o.Memory = shared
			}
			o.Events = events
			o.Logger = logger
		})

		fmt.Fprintf(out, "=== Scenario %d: %s ===\n", i+1, title(s))
		s.Seed(b.Memory())
		if cfg.Run.Dump {
			_ = dumper.Dump(out, b.Memory().Facts())
		}

		rep := b.Run(geometry.NewTriangleProcessing(b.Events(), b.PipelineOptions()...))

		if cfg.Run.Dump {
			_ = dumper.Dump(out, b.Memory().Facts())
		}
		fmt.Fprintf(out, "Result: %s\n", rep.Outcome())

		if err := s.Check(rep, b.Memory()); err != nil {
			fmt.Fprintf(out, "Expectation failed: %v\n", err)
			failed++
		} else if rep.Outcome() != core.OutcomeOk && !expectsError(s) {
			failed++
		}
		logger.Debug("scenario finished", "scenario", s.Name, "run_id", rep.RunID, "state", rep.State.String())
	}

	if failed > 0 && cfg.Run.Strict {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenario(s) failed", failed, len(all)))
	}
	return nil
}

func title(s *scenario.Scenario) string {
	if s.Description != "" {
		return s.Description
	}
	return s.Name
}

func expectsError(s *scenario.Scenario) bool {
	return s.Expect != nil && s.Expect.Outcome == scenario.OutcomeError
}
