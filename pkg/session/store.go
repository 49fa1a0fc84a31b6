// Package session keeps per-conversation transcripts in process memory.
// Sessions live until explicitly deleted; nothing survives a restart.
package session

import (
	"fmt"
	"sync"
)

// ErrNotFound reports an unknown conversation id.
var ErrNotFound = fmt.Errorf("conversation not found")

// Turn is one exchange: what the user said and what the agent replied.
type Turn struct {
	UserText  string `json:"user_text"`
	AgentText string `json:"agent_text"`
}

// Store maps conversation ids to ordered turn histories. It is safe for
// concurrent use across conversations; callers must serialize turns
// within one conversation to keep their order meaningful.
type Store struct {
	mu       sync.Mutex
	sessions map[string][]Turn
	created  int // sessions ever created, drives generated ids
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string][]Turn)}
}

// GetOrCreate returns id after ensuring a session exists for it. An
// empty id synthesizes one as "conv_{n}" from a monotonic counter of
// sessions created so far. The counter never rewinds, so ids stay
// distinct unless a generated id is deleted and the numbering catches
// back up to it; that collision window is an accepted limitation.
func (s *Store) GetOrCreate(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		id = fmt.Sprintf("conv_%d", s.created)
	}
	if _, ok := s.sessions[id]; !ok {
		s.sessions[id] = []Turn{}
		s.created++
	}
	return id
}

// Append records one turn, creating the session if absent.
func (s *Store) Append(id, userText, agentText string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		s.sessions[id] = []Turn{}
		s.created++
	}
	s.sessions[id] = append(s.sessions[id], Turn{UserText: userText, AgentText: agentText})
}

// Get returns a copy of the session's turns, or ErrNotFound.
func (s *Store) Get(id string) ([]Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out, nil
}

// List returns every known conversation id.
func (s *Store) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Delete removes a session and its history irreversibly, or returns
// ErrNotFound.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}
