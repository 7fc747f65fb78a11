package cmd

import (
	"bigocheck/internal/analyzer"
	"bigocheck/internal/server"

	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the analyzer as an MCP tool over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		if languageFlag != "" {
			cfg.Analysis.DefaultLanguage = languageFlag
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		// stdout carries the protocol
		return server.ServeMCP(analyzer.NewAnalyzerWithConfig(cfg), Version)
	},
}

func init() {
	mcpCmd.Flags().StringVarP(&languageFlag, "lang", "l", "", "Default source language (java, go)")
	rootCmd.AddCommand(mcpCmd)
}
