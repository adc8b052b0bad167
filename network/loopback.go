package network

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/automoto/stratcam/shared/netcomponents"
)

// Loopback is an in-process movement link. Payloads go through the wire
// codec and can be dropped or delivered out of order, so the receiving side
// sees what a lossy network would give it.
type Loopback struct {
	mu      sync.Mutex
	queue   [][]byte
	rng     *rand.Rand
	drop    float64
	reorder bool

	sent    int
	dropped int
}

type LoopbackOption func(*Loopback)

// WithDropRate drops each payload with probability p.
func WithDropRate(p float64) LoopbackOption {
	return func(l *Loopback) { l.drop = p }
}

// WithReorder shuffles every flushed batch.
func WithReorder() LoopbackOption {
	return func(l *Loopback) { l.reorder = true }
}

func NewLoopback(seed uint64, opts ...LoopbackOption) *Loopback {
	l := &Loopback{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loopback) SendMovement(m netcomponents.NetMovementData) error {
	payload, err := netcomponents.EncodeMovement(m)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.sent++
	if l.drop > 0 && l.rng.Float64() < l.drop {
		l.dropped++
		return nil
	}
	l.queue = append(l.queue, payload)
	return nil
}

// Flush delivers everything queued to deliver and returns how many states
// arrived.
func (l *Loopback) Flush(deliver func(netcomponents.NetMovementData)) (int, error) {
	l.mu.Lock()
	batch := l.queue
	l.queue = nil
	if l.reorder {
		l.rng.Shuffle(len(batch), func(i, j int) { batch[i], batch[j] = batch[j], batch[i] })
	}
	l.mu.Unlock()

	for i, payload := range batch {
		m, err := netcomponents.DecodeMovement(payload)
		if err != nil {
			return i, fmt.Errorf("loopback payload %d: %w", i, err)
		}
		deliver(m)
	}
	return len(batch), nil
}

// Reverse flips the pending queue, the worst case for an ordering bug.
func (l *Loopback) Reverse() {
	l.mu.Lock()
	defer l.mu.Unlock()
	slices.Reverse(l.queue)
}

func (l *Loopback) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Stats reports payloads sent and dropped since creation.
func (l *Loopback) Stats() (sent, dropped int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sent, l.dropped
}
