package wiki2pdf

import (
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// ErrPoolClosed is returned by Acquire after Close.
var ErrPoolClosed = errors.New("converter pool is closed")

// ConverterPool manages Converter instances for parallel conversion.
// Each converter has its own browser instance, enabling true parallelism.
// Converters are created lazily on first acquire to avoid startup delay.
type ConverterPool struct {
	size       int
	opts       []Option
	newFn      func(...Option) (*Converter, error)
	converters []*Converter
	sem        chan *Converter
	mu         sync.Mutex
	created    int
	closed     bool
}

// NewConverterPool creates a pool with capacity for n converters, each
// created with opts. Converters are created when acquired, not here.
func NewConverterPool(n int, opts ...Option) *ConverterPool {
	if n < MinPoolSize {
		n = MinPoolSize
	}

	return &ConverterPool{
		size:       n,
		opts:       opts,
		newFn:      NewConverter,
		converters: make([]*Converter, 0, n),
		sem:        make(chan *Converter, n),
	}
}

// Acquire gets a converter from the pool, creating one if needed.
// Blocks if all converters are in use.
func (p *ConverterPool) Acquire() (*Converter, error) {
	// Try to get an existing converter (non-blocking)
	select {
	case conv, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return conv, nil
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Create new converter outside the lock
		conv, err := p.newFn(p.opts...)
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, err
		}

		p.mu.Lock()
		p.converters = append(p.converters, conv)
		p.mu.Unlock()

		return conv, nil
	}
	p.mu.Unlock()

	// All converters created, wait for one to be released
	conv, ok := <-p.sem
	if !ok {
		return nil, ErrPoolClosed
	}
	return conv, nil
}

// Release returns a converter to the pool. The lock is held while sending
// so Close cannot close the channel under a sender; the channel has room
// for every converter, so the send never blocks.
func (p *ConverterPool) Release(conv *Converter) {
	if conv == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.sem <- conv
}

// Close releases all browser resources.
// Returns an aggregated error if multiple converters fail to close.
func (p *ConverterPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	converters := p.converters
	p.mu.Unlock()

	var errs []error
	for _, conv := range converters {
		if err := conv.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *ConverterPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the optimal pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
