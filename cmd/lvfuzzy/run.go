package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvfuzzy/defuzz"
	"github.com/katalvlaran/lvfuzzy/inference"
	"github.com/katalvlaran/lvfuzzy/model"
)

const defaultScenario = "pricing-rating"

type runFlags struct {
	modelPath string
	scenario  string
	method    string
	inputs    []string
	basePrice float64
	// basePriceSet reports an explicit --base-price, zero included.
	basePriceSet bool
}

func newRunCmd() *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate a model and print the suggested margin and price",
		Long: `Loads a model (--model file, or a built-in --scenario), applies
--input overrides, evaluates the rule base and prints:

  Base Price, Profit margin (percent), Suggested Price`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.basePriceSet = cmd.Flags().Changed("base-price")
			return runModel(cmd, f)
		},
	}
	cmd.Flags().StringVarP(&f.modelPath, "model", "m", "", "Model YAML file (overrides --scenario)")
	cmd.Flags().StringVarP(&f.scenario, "scenario", "s", defaultScenario, "Built-in scenario name")
	cmd.Flags().StringVar(&f.method, "method", "", "Defuzzification method: centroid, bisector, mom, som, lom")
	cmd.Flags().StringArrayVarP(&f.inputs, "input", "i", nil, "Input override name=value (repeatable)")
	cmd.Flags().Float64Var(&f.basePrice, "base-price", 0, "Base price in USD (default: model's base_price)")

	return cmd
}

func loadModel(f *runFlags) (*model.Model, error) {
	if f.modelPath != "" {
		return model.Load(f.modelPath)
	}

	return model.Builtin(f.scenario)
}

func parseInput(s string) (string, float64, error) {
	name, raw, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return "", 0, fmt.Errorf("input %q: want name=value", s)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", 0, fmt.Errorf("input %q: %w", s, err)
	}

	return strings.TrimSpace(name), v, nil
}

func runModel(cmd *cobra.Command, f *runFlags) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	m, err := loadModel(f)
	if err != nil {
		return err
	}
	for _, in := range f.inputs {
		name, v, err := parseInput(in)
		if err != nil {
			return err
		}
		if m, err = m.WithInput(name, v); err != nil {
			return err
		}
	}
	if f.method != "" {
		if _, err := defuzz.ParseMethod(f.method); err != nil {
			return err
		}
		m.Method = f.method
	}
	method, err := m.DefuzzMethod()
	if err != nil {
		return err
	}

	eng, err := m.Engine(inference.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info("Evaluating model",
		zap.String("model", m.Name),
		zap.Stringer("session", eng.ID()),
		zap.Stringer("method", method))

	res, err := eng.Evaluate(method)
	if err != nil {
		return err
	}

	base := m.BasePrice
	if f.basePriceSet {
		base = f.basePrice
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Base Price: $%g\n", base)
	fmt.Fprintf(out, "Profit margin: %%%.3f\n", res.Crisp*100)
	fmt.Fprintf(out, "Suggested Price: $%.3f\n", base+base*res.Crisp)
	logger.Debug("Result",
		zap.Float64("crisp", res.Crisp),
		zap.Float64("membership", res.Membership),
		zap.Strings("contributing", res.Contributing))

	return nil
}

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the built-in scenarios",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, name := range model.Builtins() {
			m, err := model.Builtin(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-16s %s\n", name, m.Description)
		}
		return nil
	},
}
