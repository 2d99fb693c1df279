package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	locale  string
	outDir  string
	noColor bool
)

// errFindings marks a run that completed but reported lexical or syntax
// errors. It only sets the exit status.
var errFindings = errors.New("analysis reported errors")

var rootCmd = &cobra.Command{
	Use:   "analiza",
	Short: "Analizador léxico y sintáctico",
	Long: `analiza comprueba programas escritos en un pequeño lenguaje de
enseñanza con palabras clave en español.

Etapas:
  lex    - Análisis léxico: genera el reporte de tokens y de errores léxicos
  parse  - Análisis sintáctico sobre el reporte de tokens
  check  - Ambas etapas, con resumen y registro en el historial
  watch  - Repite check cada vez que cambia el archivo`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errFindings) {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Archivo de configuración (default: ./configs/analiza.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Salida detallada")
	rootCmd.PersistentFlags().StringVar(&locale, "locale", "", "Idioma de los mensajes (es, en)")
	rootCmd.PersistentFlags().StringVarP(&outDir, "out-dir", "o", "", "Directorio de los reportes")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Salida sin colores")
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
