package cmd

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/msto63/analiza/internal/history"
	anerror "github.com/msto63/analiza/pkg/core/error"
	anlog "github.com/msto63/analiza/pkg/core/log"
)

var (
	historySource    string
	historyFailed    bool
	historyLimit     int
	historyOlderThan time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Historial de ejecuciones",
	Long: `Consulta las ejecuciones de 'analiza check' registradas.

Ejemplos:
  analiza history list --failed
  analiza history show 1b4e28ba-2fa1-11d2-883f-0016d3cca427
  analiza history prune --older-than 168h
  analiza history stats`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lista las ejecuciones más recientes",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Muestra una ejecución con sus reportes",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Elimina ejecuciones antiguas",
	Args:  cobra.NoArgs,
	RunE:  runHistoryPrune,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Estadísticas del historial",
	Args:  cobra.NoArgs,
	RunE:  runHistoryStats,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyPruneCmd, historyStatsCmd)

	historyListCmd.Flags().StringVar(&historySource, "source", "", "Solo ejecuciones de este archivo")
	historyListCmd.Flags().BoolVar(&historyFailed, "failed", false, "Solo ejecuciones con errores")
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Número máximo de ejecuciones")

	historyPruneCmd.Flags().DurationVar(&historyOlderThan, "older-than", 0, "Antigüedad mínima (default: history.retention)")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	store, err := a.requireHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(context.Background(), history.Filter{
		Source:     historySource,
		OnlyFailed: historyFailed,
		Limit:      historyLimit,
	})
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		a.println(a.t("cli.history.empty"))
		return nil
	}

	s := a.styles
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Muted).
		Headers("ID", "FECHA", "ARCHIVO", "TOKENS", "LÉXICOS", "SINTÁCTICOS", "DURACIÓN").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Header
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, e := range entries {
		t.Row(
			e.ID,
			e.StartedAt.Local().Format("2006-01-02 15:04:05"),
			e.Source,
			strconv.Itoa(e.TokenCount),
			strconv.Itoa(e.LexicalErrorCount),
			strconv.Itoa(e.SyntaxErrorCount),
			e.Duration.Round(time.Microsecond).String(),
		)
	}
	a.println(t.String())
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	store, err := a.requireHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := store.Get(context.Background(), args[0])
	if anerror.HasCode(err, anerror.CodeNotFound) {
		a.println(a.t("cli.history.not_found", map[string]interface{}{"ID": args[0]}))
		return errFindings
	}
	if err != nil {
		return err
	}

	s := a.styles
	a.println(s.Title.Render(a.t("cli.check.title", map[string]interface{}{"Source": entry.Source})))
	a.println(s.Muted.Render(fmt.Sprintf("%s  %s", entry.ID, entry.StartedAt.Local().Format(time.RFC3339))))
	a.println("")
	for _, r := range []string{entry.TokenReport, entry.LexicalReport, entry.SyntaxReport} {
		fmt.Fprint(a.out, r)
		a.println("")
	}

	if !entry.Clean() {
		a.println(s.Fail.Render(a.t("cli.check.failed")))
	} else {
		a.println(s.OK.Render(a.t("cli.check.clean")))
	}
	return nil
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	store, err := a.requireHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	olderThan := historyOlderThan
	if olderThan <= 0 {
		olderThan = a.cfg.History.Retention.Duration
	}

	deleted, err := store.Prune(context.Background(), olderThan)
	if err != nil {
		return err
	}
	a.logger.Info("history pruned", anlog.Fields{
		"older_than": olderThan.String(),
		"deleted":    deleted,
	})
	a.println(a.t("cli.history.pruned", map[string]interface{}{"Count": deleted}))
	return nil
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	store, err := a.requireHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats(context.Background())
	if err != nil {
		return err
	}
	if stats.Total == 0 {
		a.println(a.t("cli.history.empty"))
		return nil
	}

	s := a.styles
	a.println(a.t("cli.history.total", map[string]interface{}{"Count": stats.Total}))
	a.println("  " + s.OK.Render(a.t("cli.history.clean_runs", map[string]interface{}{"Count": stats.Clean})))
	a.println("  " + s.countStyle(int(stats.Failed)).Render(
		a.t("cli.history.failed_runs", map[string]interface{}{"Count": stats.Failed})))
	a.println(s.Muted.Render(a.t("cli.history.last", map[string]interface{}{
		"Time": stats.LastRun.Local().Format(time.RFC3339),
	})))
	a.println("")

	sources := make([]string, 0, len(stats.BySource))
	for src := range stats.BySource {
		sources = append(sources, src)
	}
	sort.Strings(sources)
	for _, src := range sources {
		a.println(fmt.Sprintf("  %-40s %d", src, stats.BySource[src]))
	}
	return nil
}
