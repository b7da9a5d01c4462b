package history

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mark3labs/confwiz/internal/logger"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

const (
	startTimeout    = 4 * time.Second
	drainTimeout    = 2 * time.Second
	shutdownTimeout = 5 * time.Second

	// storeSubdir keeps JetStream files apart from ui-state.json.
	storeSubdir = "history"
)

// embedded is an in-process NATS server with one client connection.
type embedded struct {
	ns *server.Server
	nc *nats.Conn
}

// startEmbedded runs a JetStream server with file storage under dataDir and
// connects to it. It opens no network ports.
func startEmbedded(dataDir string) (*embedded, error) {
	storeDir := filepath.Join(dataDir, storeSubdir)
	logger.Debug("Starting history server in %s", storeDir)

	ns, err := server.NewServer(&server.Options{
		ServerName: "confwiz-history",
		JetStream:  true,
		StoreDir:   storeDir,
		DontListen: true,
		NoSigs:     true,
		NoLog:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating server: %w", err)
	}
	go ns.Start()

	e := &embedded{ns: ns}
	if !ns.ReadyForConnections(startTimeout) {
		_ = e.close()
		return nil, fmt.Errorf("server not ready after %s", startTimeout)
	}

	e.nc, err = nats.Connect("", nats.InProcessServer(ns), nats.Name("confwiz"))
	if err != nil {
		_ = e.close()
		return nil, fmt.Errorf("connecting in-process: %w", err)
	}
	return e, nil
}

// close drains the connection, then stops the server. Both phases are bounded
// so a stuck server cannot hang the CLI on exit.
func (e *embedded) close() error {
	if e.nc != nil {
		done := make(chan error, 1)
		go func() { done <- e.nc.Drain() }()
		select {
		case err := <-done:
			if err != nil {
				logger.Warn("History drain failed: %v", err)
				e.nc.Close()
			}
		case <-time.After(drainTimeout):
			logger.Warn("History drain timed out after %s", drainTimeout)
			e.nc.Close()
		}
		e.nc = nil
	}

	if e.ns == nil {
		return nil
	}
	ns := e.ns
	e.ns = nil
	ns.Shutdown()

	stopped := make(chan struct{})
	go func() {
		ns.WaitForShutdown()
		close(stopped)
	}()
	select {
	case <-stopped:
		logger.Debug("History server stopped")
		return nil
	case <-time.After(shutdownTimeout):
		return errors.New("history server shutdown timed out")
	}
}
