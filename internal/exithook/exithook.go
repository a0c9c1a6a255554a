// ABOUTME: Termination hook registry: callbacks run once, newest first, before the process exits.
// ABOUTME: Covers normal exit, fatal exit and termination signals through one Exit path.

// Package exithook runs cleanup callbacks at process termination. Go has
// no atexit; callers exit through Exit (or a signal handled by
// HandleSignals) so registered hooks always run first.
package exithook

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Registry holds termination hooks.
type Registry struct {
	mu    sync.Mutex
	hooks []func()
	once  sync.Once
	exit  func(code int)
}

// New returns an empty Registry that exits through os.Exit.
func New() *Registry {
	return &Registry{exit: os.Exit}
}

// Register queues fn to run at termination.
func (r *Registry) Register(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.hooks = append(r.hooks, fn)
}

// Len returns the number of registered hooks.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.hooks)
}

// Run executes the registered hooks in reverse registration order. Only the
// first call has any effect. A panicking hook does not stop the rest.
func (r *Registry) Run() {
	r.once.Do(func() {
		r.mu.Lock()
		hooks := r.hooks
		r.mu.Unlock()

		for i := len(hooks) - 1; i >= 0; i-- {
			runHook(hooks[i])
		}
	})
}

func runHook(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

// Exit runs the hooks and terminates the process with code.
func (r *Registry) Exit(code int) {
	r.Run()
	r.exit(code)
}

// HandleSignals runs the hooks and exits with 128+signo when one of sigs
// arrives. The returned stop function detaches the handler; a process that
// ends through Exit should leave it installed, since a signal arriving after
// stop gets the default action and skips the hooks.
func (r *Registry) HandleSignals(sigs ...os.Signal) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)
	done := make(chan struct{})

	go func() {
		select {
		case sig := <-ch:
			r.Exit(128 + signum(sig))
		case <-done:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(ch)
			close(done)
		})
	}
}

func signum(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok {
		return int(s)
	}
	return 1
}

// Default is the process-wide registry.
var Default = New()

// Register queues fn on the Default registry.
func Register(fn func()) { Default.Register(fn) }

// Run executes the Default registry's hooks.
func Run() { Default.Run() }

// Exit runs the Default registry's hooks and terminates the process.
func Exit(code int) { Default.Exit(code) }

// HandleSignals installs a signal handler on the Default registry.
func HandleSignals(sigs ...os.Signal) (stop func()) { return Default.HandleSignals(sigs...) }
