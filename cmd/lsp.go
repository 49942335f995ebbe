package cmd

import (
	"github.com/chriserin/ftfold/internal/lsp"
	"github.com/spf13/cobra"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Start the Language Server Protocol server on stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server := lsp.NewServer(version)
		return server.RunStdio()
	},
}

func init() {
	rootCmd.AddCommand(lspCmd)
}
