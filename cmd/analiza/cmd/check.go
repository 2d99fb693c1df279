package cmd

import (
	"context"

	"github.com/spf13/cobra"

	anerror "github.com/msto63/analiza/pkg/core/error"
)

var checkCmd = &cobra.Command{
	Use:   "check <archivo>",
	Short: "Análisis léxico y sintáctico",
	Long: `Ejecuta ambas etapas pasando los tokens por el reporte de tokens,
muestra un resumen y registra la ejecución en el historial.

Ejemplos:
  analiza check programa.txt
  analiza check --locale en programa.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	store, err := a.openHistory()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	run, err := a.check(context.Background(), a.service(store), args[0])
	if anerror.HasCode(err, anerror.CodeNotFound) {
		return errFindings
	}
	if err != nil {
		return err
	}
	if run.HasErrors() {
		return errFindings
	}
	return nil
}
