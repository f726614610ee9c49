package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/shelfbeat/shelfbeat-server/internal/config"
	"github.com/shelfbeat/shelfbeat-server/internal/logger"
	"github.com/shelfbeat/shelfbeat-server/internal/store"
	"github.com/shelfbeat/shelfbeat-server/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the sqlite-backed store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Data.BasePath, "shelfbeat.db")
	db, err := sqlite.Open(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}
