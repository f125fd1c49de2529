package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"catty/internal/logger"
)

// Handler cancels a context on the first SIGINT/SIGTERM so commands stop
// between items. A second signal exits immediately.
type Handler struct {
	ctx        context.Context
	cancel     context.CancelFunc
	logger     *logger.Logger
	mu         sync.Mutex
	cleanupFns []func()
	once       sync.Once
	exit       func(code int)
}

// New creates a new shutdown handler
func New(log *logger.Logger) *Handler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Handler{
		ctx:    ctx,
		cancel: cancel,
		logger: log,
		exit:   os.Exit,
	}
}

// Context is cancelled once shutdown starts
func (h *Handler) Context() context.Context {
	return h.ctx
}

// AddCleanup registers fn to run on shutdown, in registration order
func (h *Handler) AddCleanup(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cleanupFns = append(h.cleanupFns, fn)
}

// Listen starts watching for signals
func (h *Handler) Listen() {
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go h.watch(sigChan)
}

func (h *Handler) watch(sigChan <-chan os.Signal) {
	<-sigChan
	h.logger.Warn("interrupted, stopping after the current item (press Ctrl+C again to quit now)")
	h.Shutdown()

	<-sigChan
	h.exit(130)
}

// Shutdown cancels the context and runs cleanups once
func (h *Handler) Shutdown() {
	h.once.Do(func() {
		h.cancel()

		h.mu.Lock()
		fns := h.cleanupFns
		h.mu.Unlock()

		for _, fn := range fns {
			fn()
		}
	})
}
