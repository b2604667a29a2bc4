package publisher

import (
	"context"
	"sync"

	"ledger/pkg/platform/audit"
)

// Memory buffers events in-process. Test sink.
type Memory struct {
	mu     sync.Mutex
	events []audit.Event
}

func NewMemory() *Memory {
	return &Memory{}
}

func (p *Memory) Emit(_ context.Context, event audit.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// Events returns a snapshot of emitted events in emission order.
func (p *Memory) Events() []audit.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]audit.Event{}, p.events...)
}

func (p *Memory) Close() error {
	return nil
}
