// Command docgen renders legal document records against DOCX templates
// without a running broker, database or cache.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"legal-docs-workers/internal/common/logger"
)

var (
	logLevel string
	log      logger.Logger = logger.NewNoOpLogger()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "docgen",
		Short: "Render legal document records offline",
		Long: `docgen fills a DOCX template with a record fixture (YAML or JSON) using the
same engine as the generate-document worker.

Example:
  docgen render --type acta_consejo --record acta.yaml --template plantilla.docx --out salida/
  docgen tokens --template plantilla.docx`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logLevel != "" {
				log = logger.FromConfig(logLevel, "console", "stderr")
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "enable engine logs at this level (debug, info, warn)")

	rootCmd.AddCommand(renderCmd())
	rootCmd.AddCommand(tokensCmd())
	rootCmd.AddCommand(typesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
