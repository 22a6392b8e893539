package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/gridwave/bempot/internal/config"
	evalerr "github.com/gridwave/bempot/internal/errors"
	"github.com/gridwave/bempot/internal/options"
	"github.com/gridwave/bempot/internal/potential"
	"github.com/gridwave/bempot/internal/problem"
	"github.com/gridwave/bempot/internal/progress"
	"github.com/gridwave/bempot/internal/verbosity"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <problem-file>",
	Short: "Evaluate a potential at target points",
	Long: `Evaluate the potential defined by a problem file at its target points.

The problem file (YAML or JSON) supplies the boundary quadrature rule
(sources and weights), the charge-distribution density, the target points,
and the kernel. Evaluation mode, thread count, and verbosity come from the
layered configuration and can be overridden per run with flags.

Exit codes:
  0 - Evaluation completed
  1 - Evaluation or configuration failed`,
	Example: `  # Evaluate with configured defaults
  bempot evaluate problem.yml

  # Force the hierarchical-matrix path on 8 threads
  bempot evaluate problem.yml --mode hmat --threads 8

  # Assemble a reusable operator before applying the density
  bempot evaluate problem.yml --assemble

  # Re-evaluate whenever the problem file changes
  bempot evaluate problem.yml --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().String("mode", "", "Evaluation mode override: dense | hmat")
	evaluateCmd.Flags().Int("threads", options.AutoThreads, "Max thread count override (-1 = automatic)")
	evaluateCmd.Flags().String("verbosity", "", "Verbosity override: low | default | high")
	evaluateCmd.Flags().Bool("assemble", false, "Assemble a reusable operator and apply it, instead of pointwise evaluation")
	evaluateCmd.Flags().StringP("output", "o", "", "Write results to this file instead of stdout")
	evaluateCmd.Flags().Bool("watch", false, "Re-evaluate whenever the problem file changes")
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	problemPath := args[0]
	assemble, _ := cmd.Flags().GetBool("assemble")
	outputPath, _ := cmd.Flags().GetString("output")
	watch, _ := cmd.Flags().GetBool("watch")

	opts, err := buildOptions(cmd)
	if err != nil {
		printFailure(err)
		return err
	}

	if err := evaluateOnce(cmd.Context(), problemPath, outputPath, assemble, opts); err != nil {
		printFailure(err)
		return err
	}

	if watch {
		if err := watchAndReevaluate(cmd.Context(), problemPath, outputPath, assemble, opts); err != nil {
			printFailure(err)
			return err
		}
	}
	return nil
}

// buildOptions loads the layered configuration and applies flag overrides.
func buildOptions(cmd *cobra.Command) (*options.EvaluationOptions, error) {
	opts, err := config.LoadEvaluationOptions(projectConfigPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("mode") {
		tag, _ := cmd.Flags().GetString("mode")
		mode, err := options.ParseMode(tag)
		if err != nil {
			return nil, err
		}
		switch mode {
		case options.ModeDense:
			opts.SwitchToDenseMode()
		case options.ModeHMat:
			if err := opts.SwitchToHMatMode(opts.HMatOptions()); err != nil {
				return nil, err
			}
		}
	}

	if cmd.Flags().Changed("threads") {
		n, _ := cmd.Flags().GetInt("threads")
		if err := opts.SetMaxThreadCount(n); err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("verbosity") {
		name, _ := cmd.Flags().GetString("verbosity")
		level, err := verbosity.Parse(name)
		if err != nil {
			return nil, err
		}
		opts.SetVerbosityLevel(level)
	}

	return opts, nil
}

// evaluateOnce loads the problem file, runs one evaluation, and writes results.
func evaluateOnce(ctx context.Context, problemPath, outputPath string, assemble bool, opts *options.EvaluationOptions) error {
	def, err := problem.Load(problemPath)
	if err != nil {
		return err
	}
	kern, err := def.BuildKernel()
	if err != nil {
		return err
	}
	rule, err := def.Rule()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: opts.VerbosityLevel().SlogLevel(),
	}))
	ev, err := potential.NewEvaluator(kern, rule, opts, logger)
	if err != nil {
		return err
	}

	sp := progress.Start(fmt.Sprintf("Evaluating %s potential (%s mode)", kern.Name(), opts.EvaluationMode()))
	values, err := runEvaluation(ctx, ev, def, assemble)
	if err != nil {
		sp.Fail()
		return err
	}
	sp.Stop()

	return writeResults(outputPath, problemPath, values)
}

// runEvaluation dispatches between pointwise evaluation and operator assembly.
func runEvaluation(ctx context.Context, ev *potential.Evaluator, def *problem.Definition, assemble bool) ([]float64, error) {
	targets := def.TargetPoints()
	if assemble {
		op, err := ev.Assemble(ctx, targets)
		if err != nil {
			return nil, err
		}
		return op.Apply(def.Density)
	}
	return ev.EvaluateAtPoints(ctx, def.Density, targets)
}

// evalResult is the YAML shape of the evaluation output.
type evalResult struct {
	Problem    string    `yaml:"problem"`
	Potentials []float64 `yaml:"potentials"`
}

// writeResults writes the potentials as YAML to the output file or stdout.
func writeResults(outputPath, problemPath string, values []float64) error {
	out, err := yaml.Marshal(evalResult{Problem: problemPath, Potentials: values})
	if err != nil {
		return evalerr.WrapWithMessage(err, evalerr.Runtime, "encoding results")
	}
	if outputPath == "" {
		fmt.Print(string(out))
		return nil
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return evalerr.WrapWithMessage(err, evalerr.Runtime, "writing results")
	}
	return nil
}

// watchAndReevaluate re-runs the evaluation whenever the problem file changes,
// until interrupted.
func watchAndReevaluate(ctx context.Context, problemPath, outputPath string, assemble bool, opts *options.EvaluationOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return evalerr.WrapWithMessage(err, evalerr.Runtime, "starting file watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(problemPath); err != nil {
		return evalerr.WrapWithMessage(err, evalerr.Runtime, "watching problem file")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	fmt.Fprintf(os.Stderr, "Watching %s for changes (Ctrl+C to stop)\n", problemPath)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sigCh:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := evaluateOnce(ctx, problemPath, outputPath, assemble, opts); err != nil {
				// Keep watching; a transiently invalid file should not kill
				// the watch loop.
				printFailure(err)
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return evalerr.WrapWithMessage(werr, evalerr.Runtime, "file watcher failed")
		}
	}
}

// printFailure prints a structured error to stderr.
func printFailure(err error) {
	if e := evalerr.AsEvalError(err); e != nil {
		evalerr.PrintError(e)
		return
	}
	evalerr.PrintSimpleError(err, evalerr.Runtime)
}
