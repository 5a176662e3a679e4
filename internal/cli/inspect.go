// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/dpchain/dtype"
	"github.com/katalvlaran/dpchain/pipeline"
)

func (a *app) typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the scalar type descriptors and pipeline ops",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scalars := dtype.Scalars()
			ops := pipeline.Ops()
			sort.Strings(ops)
			return a.print(cmd, map[string][]string{"scalars": scalars, "ops": ops}, func() string {
				return "scalars: " + strings.Join(scalars, " ") + "\nops: " + strings.Join(ops, " ") + "\n"
			})
		},
	}
}

func (a *app) ledgerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ledger [accountant-id]",
		Short: "List admissions recorded in the ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.store == nil {
				return errors.New("no ledger configured: set --ledger or DPCHAIN_LEDGER_PATH")
			}
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			entries, err := a.store.Entries(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.print(cmd, entries, func() string {
				var b strings.Builder
				for _, e := range entries {
					fmt.Fprintf(&b, "%s %s #%d cost=%s total=%s %s\n",
						e.RecordedAt.Format("2006-01-02T15:04:05Z"), e.AccountantID, e.Sequence, e.Cost, e.Total, e.Measurement)
				}
				return b.String()
			})
		},
	}
}
