// Package cli is the matchengine CLI's command tree, in the cobra shape
// VictorVVedtion-perp-dex's client/cli packages use (one GetXCmd()-style
// constructor per command, RunE closures doing the actual work). This CLI
// is not itself part of the matching semantics - it exists to run scripted
// scenarios against the engine for manual exercising and demonstration.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the matchengine command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matchengine",
		Short: "Run scripted scenarios against the simulated venue matching engine",
	}
	cmd.AddCommand(NewDemoCmd())
	return cmd
}
