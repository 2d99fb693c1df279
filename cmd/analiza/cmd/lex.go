package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/msto63/analiza/internal/analysis"
	anerror "github.com/msto63/analiza/pkg/core/error"
)

var lexCmd = &cobra.Command{
	Use:   "lex <archivo>",
	Short: "Análisis léxico",
	Long: `Divide el archivo en tokens y escribe el reporte de tokens y el
reporte de errores léxicos en el directorio de reportes.

Ejemplos:
  analiza lex programa.txt
  analiza lex --out-dir build programa.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		a.println(a.t("cli.lex.missing_argument"))
		return anerror.New("missing source file").WithCode(anerror.CodeInvalidInput).WithOperation("cmd.lex")
	}
	path := args[0]

	source, err := analysis.ReadSource(path)
	if anerror.HasCode(err, anerror.CodeNotFound) {
		a.println(a.styles.Fail.Render(a.t("cli.lex.file_not_found", map[string]interface{}{"File": path})))
		return errFindings
	}
	if err != nil {
		return err
	}

	run, err := a.service(nil).Lex(context.Background(), path, source)
	if err != nil {
		return err
	}

	a.println(a.t("cli.lex.done", map[string]interface{}{
		"Tokens":  a.cfg.TokensPath(),
		"Lexical": a.cfg.LexicalPath(),
	}))
	if len(run.LexicalErrors) > 0 {
		return errFindings
	}
	return nil
}
