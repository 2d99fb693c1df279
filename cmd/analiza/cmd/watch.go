package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msto63/analiza/internal/watch"
	anerror "github.com/msto63/analiza/pkg/core/error"
)

var watchCmd = &cobra.Command{
	Use:   "watch <archivo>",
	Short: "Repite check en cada cambio",
	Long: `Ejecuta 'analiza check' y lo repite cada vez que el archivo cambia,
hasta que se pulse Ctrl+C.

Ejemplos:
  analiza watch programa.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := a.openHistory()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}
	svc := a.service(store)
	path := args[0]

	w, err := watch.New(path, watch.Options{
		Debounce: a.cfg.Watch.Debounce.Duration,
		Logger:   a.logger,
	})
	if err != nil {
		return err
	}

	if _, err := a.check(ctx, svc, path); err != nil && !anerror.HasCode(err, anerror.CodeNotFound) {
		return err
	}
	a.println(a.styles.Muted.Render(a.t("cli.watch.started", map[string]interface{}{"File": w.Path()})))

	return w.Run(ctx, func(ctx context.Context, changed string) error {
		a.println("")
		a.println(a.styles.Muted.Render(a.t("cli.watch.changed", map[string]interface{}{"File": path})))
		_, err := a.check(ctx, svc, path)
		return err
	})
}
