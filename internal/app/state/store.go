package state

import (
	"sync"

	"github.com/telefwd/tg-forwarder/internal/utils/logger"
	"go.uber.org/zap"
)

const defaultMaxEntries = 10000

// Store keeps the in-memory forwarding state: the processed-message and
// processed-group dedup sets, the high-water mark and the counters. Both sets
// are pruned oldest-first once they exceed the size threshold so Continuous
// mode stays bounded over long uptimes. Nothing survives a restart.
type Store struct {
	mu sync.Mutex

	processedMessages map[int64]struct{}
	messageOrder      []int64
	processedGroups   map[string]struct{}
	groupOrder        []string

	lastMessageID int64
	forwarded     int
	failed        int

	maxEntries int
}

func CreateStore(maxEntries int) *Store {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	return &Store{
		processedMessages: make(map[int64]struct{}),
		processedGroups:   make(map[string]struct{}),
		maxEntries:        maxEntries,
	}
}

func (s *Store) MarkMessageProcessed(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.processedMessages[id]; exists {
		return
	}
	s.processedMessages[id] = struct{}{}
	s.messageOrder = append(s.messageOrder, id)
	s.pruneMessagesLocked()
}

func (s *Store) IsMessageProcessed(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.processedMessages[id]
	return exists
}

func (s *Store) MarkGroupProcessed(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.processedGroups[key]; exists {
		return
	}
	s.processedGroups[key] = struct{}{}
	s.groupOrder = append(s.groupOrder, key)
	s.pruneGroupsLocked()
}

func (s *Store) IsGroupProcessed(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.processedGroups[key]
	return exists
}

// AdvanceMark moves the high-water mark forward, never backward.
func (s *Store) AdvanceMark(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id > s.lastMessageID {
		s.lastMessageID = id
	}
}

func (s *Store) Mark() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastMessageID
}

func (s *Store) AddForwarded(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forwarded += n
}

func (s *Store) AddFailed(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed += n
}

func (s *Store) ForwardedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.forwarded
}

func (s *Store) FailedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

// Sizes returns the current dedup set sizes.
func (s *Store) Sizes() (messages, groups int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.processedMessages), len(s.processedGroups)
}

func (s *Store) pruneMessagesLocked() {
	if len(s.messageOrder) <= s.maxEntries {
		return
	}

	drop := len(s.messageOrder) - s.maxEntries/2
	for _, id := range s.messageOrder[:drop] {
		delete(s.processedMessages, id)
	}
	s.messageOrder = append([]int64(nil), s.messageOrder[drop:]...)

	logger.Debug("pruned processed message set",
		zap.String("function", "Store.pruneMessagesLocked"),
		zap.Int("dropped", drop),
		zap.Int("remaining", len(s.messageOrder)),
	)
}

func (s *Store) pruneGroupsLocked() {
	if len(s.groupOrder) <= s.maxEntries {
		return
	}

	drop := len(s.groupOrder) - s.maxEntries/2
	for _, key := range s.groupOrder[:drop] {
		delete(s.processedGroups, key)
	}
	s.groupOrder = append([]string(nil), s.groupOrder[drop:]...)

	logger.Debug("pruned processed media group set",
		zap.String("function", "Store.pruneGroupsLocked"),
		zap.Int("dropped", drop),
		zap.Int("remaining", len(s.groupOrder)),
	)
}
