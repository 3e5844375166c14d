package main

import (
	"strconv"

	"calcurve-go/errcode"

	"github.com/spf13/cobra"
)

func evalCmd(envFile *string) *cobra.Command {
	var (
		table   string
		policy  string
		inverse bool
	)
	cmd := &cobra.Command{
		Use:   "eval --table FILE Q...",
		Short: "Interpolate raw codes through a table",
		Args:  cobra.MinimumNArgs(1),
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
			if inverse {
				if t, err = t.Inverse(); err != nil {
					return err
				}
			}
			out := newPrinter(cmd.OutOrStdout(), cfg.Output)

			for _, a := range args {
				q, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return errcode.New(errcode.InvalidParams, "lutcheck.eval", "not a number: "+a)
				}
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
	cmd.Flags().BoolVar(&inverse, "inverse", false, "evaluate the inverse curve (values to codes)")
	_ = cmd.MarkFlagRequired("table")
	return cmd
}
