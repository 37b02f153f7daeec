package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/ConsultoriaImpulso/ZBE/internal/config"
	"github.com/ConsultoriaImpulso/ZBE/internal/export"
)

// worker re-runs the export on a fixed interval so the served files track
// the agency feeds without manual triggers.
type worker struct {
	exports *export.Service
	sources []config.Source
	logger  *slog.Logger
	d       time.Duration
	killCh  <-chan struct{}
}

func (w *worker) start() {
	ticker := time.NewTicker(w.d)

	for {
		select {
		case <-ticker.C:
			w.refresh(context.Background())
		case <-w.killCh:
			ticker.Stop()
			return
		}
	}
}

func (w *worker) refresh(ctx context.Context) {
	result, err := w.exports.Run(ctx, w.sources)
	if err != nil {
		w.logger.Error("scheduled export failed", "err", err)
		return
	}

	for _, c := range result.Cities {
		w.logger.Info("refreshed collection",
			"city", c.City, "features", c.FeatureCount, "path", c.Path)
	}
}
