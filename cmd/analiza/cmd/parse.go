package cmd

import (
	"context"

	"github.com/spf13/cobra"

	anerror "github.com/msto63/analiza/pkg/core/error"
)

var parseCmd = &cobra.Command{
	Use:   "parse [reporte]",
	Short: "Análisis sintáctico",
	Long: `Lee un reporte de tokens generado por 'analiza lex' y escribe el
reporte de errores sintácticos. Sin argumento se usa el reporte de tokens
configurado.

Ejemplos:
  analiza parse
  analiza parse build/resultados.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	reportPath := a.cfg.TokensPath()
	if len(args) == 1 {
		reportPath = args[0]
	}

	run, err := a.service(nil).Parse(context.Background(), reportPath)
	if anerror.HasCode(err, anerror.CodeNotFound) {
		a.println(a.styles.Fail.Render(a.t("cli.parse.missing_report", map[string]interface{}{"File": reportPath})))
		return errFindings
	}
	if err != nil {
		return err
	}

	a.println(a.t("cli.parse.done", map[string]interface{}{"File": a.cfg.SyntaxPath()}))
	if len(run.SyntaxErrors) > 0 {
		return errFindings
	}
	return nil
}
