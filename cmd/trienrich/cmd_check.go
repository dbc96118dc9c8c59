// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/trienrich/crow"
)

func (a *app) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the CROW install under $CROW_HOME",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			home := a.cfg.CrowHome()
			if err := crow.CheckInstall(home); err != nil {
				a.logger.Warn("crow install check failed", zap.String("home", home), zap.Error(err))
				fmt.Fprintln(cmd.ErrOrStderr(), "You may need to install CROW framework.")
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "CROW install found at %s\n", home)

			return nil
		},
	}
}
