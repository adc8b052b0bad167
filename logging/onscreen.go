package logging

import (
	"image/color"
	"sort"
	"sync"
	"time"
)

// OnScreenMessage is a keyed message shown over the game for a while.
type OnScreenMessage struct {
	Key      uint64
	Duration time.Duration
	Color    color.RGBA
	Text     string
}

// OnScreen receives messages to draw over the game.
type OnScreen interface {
	AddMessage(msg OnScreenMessage)
}

type onScreenEntry struct {
	msg     OnScreenMessage
	expires time.Time
	seq     uint64
}

// OnScreenBuffer keeps the live on-screen messages. A message with a key that
// is already shown replaces it. Safe for concurrent use.
type OnScreenBuffer struct {
	mu      sync.Mutex
	entries map[uint64]*onScreenEntry
	seq     uint64
	now     func() time.Time
}

func NewOnScreenBuffer() *OnScreenBuffer {
	return &OnScreenBuffer{
		entries: make(map[uint64]*onScreenEntry),
		now:     time.Now,
	}
}

func (b *OnScreenBuffer) AddMessage(msg OnScreenMessage) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	b.entries[msg.Key] = &onScreenEntry{
		msg:     msg,
		expires: b.now().Add(msg.Duration),
		seq:     b.seq,
	}
}

// Messages returns the unexpired messages, oldest first, and drops the rest.
func (b *OnScreenBuffer) Messages() []OnScreenMessage {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	live := make([]*onScreenEntry, 0, len(b.entries))
	for key, e := range b.entries {
		if !now.Before(e.expires) {
			delete(b.entries, key)
			continue
		}
		live = append(live, e)
	}
	sort.Slice(live, func(i, j int) bool { return live[i].seq < live[j].seq })

	out := make([]OnScreenMessage, len(live))
	for i, e := range live {
		out[i] = e.msg
	}
	return out
}
