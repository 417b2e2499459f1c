package shutdown

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"triaxis/internal/logger"
)

// DefaultTimeout bounds how long a single component may take to stop.
const DefaultTimeout = 5 * time.Second

// Shutdownable is a component stopped when the application exits.
type Shutdownable interface {
	Shutdown()
}

// Func adapts a plain function to Shutdownable.
type Func func()

// Shutdown calls f.
func (f Func) Shutdown() { f() }

type entry struct {
	name      string
	component Shutdownable
}

// Manager stops registered components in reverse registration order,
// at most once.
type Manager struct {
	mu         sync.Mutex
	components []entry
	logger     logger.Logger
	timeout    time.Duration
	once       sync.Once
	stop       chan struct{}
}

// NewManager creates a manager with DefaultTimeout.
func NewManager(log logger.Logger) *Manager {
	return &Manager{
		logger:  log,
		timeout: DefaultTimeout,
		stop:    make(chan struct{}),
	}
}

// SetTimeout changes the per-component timeout.
func (m *Manager) SetTimeout(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeout = d
}

// Register adds a named component.
func (m *Manager) Register(name string, component Shutdownable) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.components = append(m.components, entry{name: name, component: component})
}

// Listen waits in the background for SIGINT or SIGTERM, then shuts down
// and calls onSignal. It returns once the listener is installed.
func (m *Manager) Listen(onSignal func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			m.logger.Info("ShutdownManager", "shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})
			m.Shutdown()
			if onSignal != nil {
				onSignal()
			}
		case <-m.stop:
		}
	}()
}

// Shutdown stops every component. Calls after the first return immediately.
func (m *Manager) Shutdown() {
	m.once.Do(func() {
		close(m.stop)

		m.mu.Lock()
		components := append([]entry(nil), m.components...)
		timeout := m.timeout
		m.mu.Unlock()

		m.logger.Info("ShutdownManager", "shutdown sequence initiated", map[string]interface{}{
			"components": len(components),
		})

		for i := len(components) - 1; i >= 0; i-- {
			c := components[i]

			finished := make(chan struct{})
			go func() {
				defer close(finished)
				c.component.Shutdown()
			}()

			select {
			case <-finished:
				m.logger.Debug("ShutdownManager", "component stopped", map[string]interface{}{
					"component": c.name,
				})
			case <-time.After(timeout):
				m.logger.Warning("ShutdownManager", "component shutdown timeout", map[string]interface{}{
					"component": c.name,
					"timeout":   timeout.String(),
				})
			}
		}

		m.logger.Info("ShutdownManager", "shutdown sequence completed", nil)
	})
}
