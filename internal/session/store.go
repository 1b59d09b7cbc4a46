// Package session keeps per-sender conversation history in process memory.
//
// History is intentionally not persisted: it lives for the lifetime of the
// process, keyed by the opaque sender identifier, with no size cap.
package session

import (
	"hash/fnv"
	"sync"

	"github.com/inmobot-ai/realty-platform/internal/model"
)

const shardCount = 32

// Store is a sharded, concurrency-safe conversation history store.
type Store struct {
	shards [shardCount]shard
}

type shard struct {
	mu        sync.Mutex
	histories map[string][]model.Turn
	senders   map[string]*sync.Mutex
}

// NewStore creates an empty history store.
func NewStore() *Store {
	s := &Store{}
	for i := range s.shards {
		s.shards[i].histories = make(map[string][]model.Turn)
		s.shards[i].senders = make(map[string]*sync.Mutex)
	}
	return s
}

func (s *Store) shardFor(sender string) *shard {
	h := fnv.New32a()
	h.Write([]byte(sender))
	return &s.shards[h.Sum32()%shardCount]
}

// Append adds a turn to the sender's history, creating it if needed.
func (s *Store) Append(sender string, turn model.Turn) {
	sh := s.shardFor(sender)
	sh.mu.Lock()
	sh.histories[sender] = append(sh.histories[sender], turn)
	sh.mu.Unlock()
}

// History returns a copy of the sender's accumulated turns, oldest first.
func (s *Store) History(sender string) []model.Turn {
	sh := s.shardFor(sender)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	turns := sh.histories[sender]
	out := make([]model.Turn, len(turns))
	copy(out, turns)
	return out
}

// Len returns the number of turns recorded for a sender.
func (s *Store) Len(sender string) int {
	sh := s.shardFor(sender)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return len(sh.histories[sender])
}

// Lock serializes a full conversation exchange for one sender so that
// concurrent webhooks for the same sender cannot interleave their
// read-modify-append on the history. Senders never block each other.
// The returned function releases the lock.
func (s *Store) Lock(sender string) func() {
	sh := s.shardFor(sender)

	sh.mu.Lock()
	mu, ok := sh.senders[sender]
	if !ok {
		mu = &sync.Mutex{}
		sh.senders[sender] = mu
	}
	sh.mu.Unlock()

	mu.Lock()
	return mu.Unlock
}
