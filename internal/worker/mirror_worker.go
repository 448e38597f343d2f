package worker

import (
	"context"
	"time"

	"github.com/ledgerkv/account-ledger/internal/kv"
	"github.com/ledgerkv/account-ledger/pkg/logger"
)

// Source is any store that can enumerate its records. All four backends
// implement it.
type Source interface {
	All(ctx context.Context) (map[string][]byte, error)
}

// Worker periodically copies every record from a source store into a
// destination store, so a ledger on a volatile backend survives restarts
// up to the last completed pass.
//
// TODO: prune keys deleted from the source since the previous pass; the
// Store interface would need enumeration on the destination for that.
type Worker struct {
	src        Source
	dst        kv.Store
	interval   time.Duration
	stopChan   chan struct{}
	mirrorDone chan struct{}
}

func NewWorker(src Source, dst kv.Store, interval time.Duration) *Worker {
	return &Worker{
		src:        src,
		dst:        dst,
		interval:   interval,
		stopChan:   make(chan struct{}),
		mirrorDone: make(chan struct{}),
	}
}

func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			close(w.mirrorDone)
			return
		case <-w.stopChan:
			close(w.mirrorDone)
			return
		case <-ticker.C:
			w.runMirror(ctx)
		}
	}
}

func (w *Worker) runMirror(ctx context.Context) {
	records, err := w.src.All(ctx)
	if err != nil {
		logger.Error("Failed to read source store", err)
		return
	}

	for key, value := range records {
		if err := w.dst.Set(ctx, key, value); err != nil {
			logger.Error("Failed to mirror record", err, "key", key)
			return
		}
	}

	logger.Info("Mirror pass completed", "records", len(records))
}

func (w *Worker) Stop() {
	close(w.stopChan)
	<-w.mirrorDone
}
