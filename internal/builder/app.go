package builder

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nilecare/advisory-backend/internal/usecase/document"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

// App is the HTTP API together with its background ingestion worker
type App struct {
	server   *http.Server
	ingestor *document.Ingestor
	db       *pgxpool.Pool
	logger   *zap.Logger
}

// Run serves until SIGINT/SIGTERM or a server error, then shuts down gracefully
func (a *App) Run() error {
	workerCtx, stopWorker := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.ingestor.Run(workerCtx)
	}()

	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("starting HTTP server", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case runErr = <-errChan:
		a.logger.Error("server error", zap.Error(runErr))
	case sig := <-sigChan:
		a.logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	}

	stopWorker()
	if err := a.shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	wg.Wait()

	a.logger.Info("closing database connections")
	a.db.Close()

	a.logger.Info("application stopped")
	return runErr
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.logger.Info("shutting down server gracefully")

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error("server shutdown error", zap.Error(err))
		return err
	}
	return nil
}
