package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/GregMSThompson/backup-dashboard/internal/bootstrap"
	"github.com/GregMSThompson/backup-dashboard/internal/config"
	"github.com/GregMSThompson/backup-dashboard/internal/models"
	"github.com/GregMSThompson/backup-dashboard/internal/store"
	"github.com/GregMSThompson/backup-dashboard/pkg/logger"
)

// openFunc opens the KV backend at path and returns a closer.
type openFunc func(path string) (store.KV, func() error, error)

func openBadger(path string) (store.KV, func() error, error) {
	db, err := bootstrap.InitBadger(path)
	if err != nil {
		return nil, nil, err
	}
	return store.NewBadgerKV(db), db.Close, nil
}

type showOutput struct {
	Product models.ProductID         `json:"product"`
	Key     string                   `json:"key"`
	Valid   bool                     `json:"valid"`
	Items   []models.WidgetPlacement `json:"items,omitempty"`
}

func newRootCmd(open openFunc) *cobra.Command {
	var path, level string

	root := &cobra.Command{
		Use:           "layoutctl",
		Short:         "Inspect and reset saved dashboard layouts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	defaultPath := "data/layouts"
	if cfg, err := config.New(); err == nil {
		defaultPath = cfg.LayoutStorePath
	}
	root.PersistentFlags().StringVar(&path, "path", defaultPath, "layout database directory")
	root.PersistentFlags().StringVar(&level, "log-level", "warn", "log level")

	// withStore runs fn against the layout store for the product argument.
	withStore := func(cmd *cobra.Command, arg string, fn func(ctx context.Context, ls layoutStore, product models.ProductID) error) error {
		product := models.ProductID(arg)
		if !product.Valid() {
			return fmt.Errorf("unknown product %q (want one of %v)", arg, models.Products)
		}
		kv, closeFn, err := open(path)
		if err != nil {
			return err
		}
		defer closeFn()

		log := logger.New(level, func(l slog.Level) slog.Handler {
			return logger.NewCloudRunHandlerWriter(l, cmd.ErrOrStderr())
		})
		ctx := logger.ToContext(cmd.Context(), log)
		return fn(ctx, store.NewLayoutStore(kv), product)
	}

	root.AddCommand(&cobra.Command{
		Use:   "show <product>",
		Short: "Print the saved layout for a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, args[0], func(ctx context.Context, ls layoutStore, product models.ProductID) error {
				items, ok := ls.Load(ctx, product)
				out := showOutput{Product: product, Key: store.Key(product), Valid: ok, Items: items}
				b, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "exists <product>",
		Short: "Report whether a layout is saved for a product (exit 2 when not)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, args[0], func(ctx context.Context, ls layoutStore, product models.ProductID) error {
				if ls.Exists(ctx, product) {
					fmt.Fprintln(cmd.OutOrStdout(), "customized")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), "default")
				return errNotSaved
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "reset <product>",
		Short: "Delete the saved layout so the product falls back to its default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, args[0], func(ctx context.Context, ls layoutStore, product models.ProductID) error {
				ls.Clear(ctx, product)
				fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", store.Key(product))
				return nil
			})
		},
	})

	return root
}

type layoutStore interface {
	Load(ctx context.Context, product models.ProductID) ([]models.WidgetPlacement, bool)
	Clear(ctx context.Context, product models.ProductID)
	Exists(ctx context.Context, product models.ProductID) bool
}

type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

var errNotSaved = &exitError{code: 2, msg: "no saved layout"}

func exitCode(err error) int {
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return 1
}
