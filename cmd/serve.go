package cmd

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"bigocheck/internal/analyzer"
	"bigocheck/internal/server"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	addrFlag     string
	languageFlag string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analyzer page and JSON endpoint over HTTP",
	Long: `Start an HTTP server. GET / returns the analyzer page; POST /analyze
with raw source text returns the per-function estimates as JSON. Use
?lang=go or ?lang=java to select the language.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addrFlag != "" {
			cfg.Server.Addr = addrFlag
		}
		if languageFlag != "" {
			cfg.Analysis.DefaultLanguage = languageFlag
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(analyzer.NewAnalyzerWithConfig(cfg), cfg)
		color.Cyan("🌐 Open %s in your browser\n", pageURL(cfg.Server.Addr))
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "Listen address (default from config, :8080)")
	serveCmd.Flags().StringVarP(&languageFlag, "lang", "l", "", "Default source language (java, go)")
	rootCmd.AddCommand(serveCmd)
}

func pageURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr + "/"
	}
	return "http://" + addr + "/"
}
