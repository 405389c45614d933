package notify

import (
	"context"
	"sync"
)

// CaptureGateway records delivered messages in memory for tests.
type CaptureGateway struct {
	mu       sync.Mutex
	messages []Message
	// Err, when set, is returned from Deliver to simulate a transport
	// failure.
	Err error
}

// NewCaptureGateway creates an in-memory gateway.
func NewCaptureGateway() *CaptureGateway {
	return &CaptureGateway{}
}

// Deliver records the message.
func (g *CaptureGateway) Deliver(_ context.Context, msg Message) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return g.Err
	}
	g.messages = append(g.messages, msg)
	return nil
}

// Messages returns a copy of everything delivered so far.
func (g *CaptureGateway) Messages() []Message {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Message, len(g.messages))
	copy(out, g.messages)
	return out
}

// ByKind returns delivered messages of the given kind.
func (g *CaptureGateway) ByKind(kind Kind) []Message {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []Message
	for _, msg := range g.messages {
		if msg.Kind == kind {
			out = append(out, msg)
		}
	}
	return out
}
