package bootstrap

import (
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	veeamclient "github.com/GregMSThompson/backup-dashboard/internal/client/veeam"
	"github.com/GregMSThompson/backup-dashboard/internal/config"
	"github.com/GregMSThompson/backup-dashboard/internal/store"
	"github.com/GregMSThompson/backup-dashboard/pkg/logger"
)

type Bootstrap struct {
	Log          *slog.Logger
	DB           *badger.DB
	KV           store.KV
	VeeamAdapter *veeamclient.Adapter
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)

	switch cfg.LayoutStore {
	case config.StoreMemory:
		bs.KV = store.NewMemoryKV()
		bs.Log.Warn("layout store is in-memory; layouts are lost on restart")
	default:
		bs.DB, err = InitBadger(cfg.LayoutStorePath)
		if err != nil {
			return bs, err
		}
		bs.KV = store.NewBadgerKV(bs.DB)
	}

	bs.VeeamAdapter = veeamclient.NewAdapter(veeamclient.Config{
		BaseURL:    cfg.VeeamAPIURL,
		APIVersion: cfg.VeeamAPIVersion,
		Timeout:    cfg.RelayTimeout,
	}, bs.Log)
	if !bs.VeeamAdapter.Configured() {
		bs.Log.Warn("VEEAM_API_URL not set; relay requests will fail")
	}

	return bs, nil
}

func (bs *Bootstrap) Close() {
	if bs.DB != nil {
		if err := bs.DB.Close(); err != nil {
			bs.Log.Error("failed to close layout store", "error", err)
		}
	}
}
