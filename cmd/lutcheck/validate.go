package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func validateCmd(envFile *string) *cobra.Command {
	var policy string
	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check that table files build into lookup tables",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*envFile)
			if err != nil {
				return err
			}
			if policy == "" {
				policy = cfg.Policy
			}
			log := cfg.logger()
			out := newPrinter(cmd.OutOrStdout(), cfg.Output)

			bad := 0
			for _, path := range args {
				t, name, err := loadTable(path, policy)
				r := row{File: path, Name: name}
				if err != nil {
					bad++
					log.Debug().Err(err).Str("file", path).Msg("invalid table")
				} else {
					lo, hi := t.Bounds()
					r.Knots, r.Lo, r.Hi, r.Policy = t.Len(), ptr(lo), ptr(hi), t.Policy().String()
				}
				if err := out.print(withErr(r, err)); err != nil {
					return err
				}
			}
			if bad > 0 {
				return fmt.Errorf("%d of %d tables invalid", bad, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&policy, "policy", "", "override the out-of-range policy (reject, clamp, extrapolate)")
	return cmd
}
