package main

import (
	"math"
	"strconv"

	"calcurve-go/errcode"
	"calcurve-go/x/mathx"

	"github.com/spf13/cobra"
)

const (
	defaultSteps = 20
	// maxSweepPoints caps the rows one sweep may print.
	maxSweepPoints = 1_000_000
)

func sweepCmd(envFile *string) *cobra.Command {
	var (
		table    string
		policy   string
		step     float64
		from, to float64
	)
	cmd := &cobra.Command{
		Use:   "sweep --table FILE",
		Short: "Evaluate a table over an evenly spaced range of codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*envFile)
			if err != nil {
				return err
			}
			if policy == "" {
				policy = cfg.Policy
			}
			t, _, err := loadTable(table, policy)
			if err != nil {
				return err
			}
			lo, hi := t.Bounds()
			if !cmd.Flags().Changed("from") {
				from = lo
			}
			if !cmd.Flags().Changed("to") {
				to = hi
			}
			if step == 0 {
				step = (to - from) / defaultSteps
				if step == 0 {
					step = 1
				}
			}

			qs, err := sweepPoints(from, to, step)
			if err != nil {
				return err
			}
			out := newPrinter(cmd.OutOrStdout(), cfg.Output)
			for _, q := range qs {
				r := row{Query: ptr(q)}
				v, err := t.Interpolate(q)
				if err == nil {
					r.Value = ptr(v)
				}
				if err := out.print(withErr(r, err)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&table, "table", "", "table file (YAML or JSON)")
	cmd.Flags().StringVar(&policy, "policy", "", "override the out-of-range policy (reject, clamp, extrapolate)")
	cmd.Flags().Float64Var(&step, "step", 0, "distance between codes (default: span/20, at most 1e6 points)")
	cmd.Flags().Float64Var(&from, "from", 0, "first code (default: first knot)")
	cmd.Flags().Float64Var(&to, "to", 0, "last code (default: last knot)")
	_ = cmd.MarkFlagRequired("table")
	return cmd
}

// sweepPoints returns from, from+step, ... up to and including to.
// Points are computed by multiplication so error does not accumulate.
// Bounds must be finite, step positive and finite, and the sweep no longer
// than maxSweepPoints.
func sweepPoints(from, to, step float64) ([]float64, error) {
	const op = "lutcheck.sweep"
	switch {
	case !mathx.IsFinite(from) || !mathx.IsFinite(to):
		return nil, errcode.New(errcode.InvalidParams, op, "--from and --to must be finite")
	case to < from:
		return nil, errcode.New(errcode.InvalidParams, op, "--to is below --from")
	case !(step > 0) || !mathx.IsFinite(step):
		return nil, errcode.New(errcode.InvalidParams, op, "--step must be positive and finite")
	}
	span := (to - from) / step
	if !(span < maxSweepPoints-1) {
		return nil, errcode.New(errcode.InvalidParams, op,
			"--step gives more than "+strconv.Itoa(maxSweepPoints)+" points")
	}
	n := int(math.Floor(span+1e-9)) + 1
	qs := make([]float64, 0, n+1)
	for i := 0; i < n; i++ {
		qs = append(qs, mathx.Min(from+float64(i)*step, to))
	}
	if last := qs[len(qs)-1]; to-last > step*1e-9 {
		qs = append(qs, to)
	}
	return qs, nil
}
