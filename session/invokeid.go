package session

import (
	"sync"

	"github.com/andaru/cdap/cdaperr"
)

// InvokeIDManager tracks the invoke-ids in use by one session.
//
// Ids are tracked per direction: sent ids are those the local side
// assigned to its own outstanding requests, received ids those the
// peer assigned to requests we have yet to answer. The two sets are
// independent since each side allocates ids from its own space.
type InvokeIDManager struct {
	mu       sync.Mutex
	sent     map[int32]struct{}
	received map[int32]struct{}
}

// NewInvokeIDManager returns a new, empty InvokeIDManager
func NewInvokeIDManager() *InvokeIDManager {
	return &InvokeIDManager{
		sent:     map[int32]struct{}{},
		received: map[int32]struct{}{},
	}
}

func (m *InvokeIDManager) set(sent bool) map[int32]struct{} {
	if sent {
		return m.sent
	}
	return m.received
}

// NewInvokeID returns the lowest positive invoke-id not in use by the
// local side and marks it in use. It never returns 0.
func (m *InvokeIDManager) NewInvokeID() int32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := int32(1)
	for ; ; id++ {
		if _, ok := m.sent[id]; !ok {
			break
		}
	}
	m.sent[id] = struct{}{}
	return id
}

// Free releases id in the given direction. Freeing an id not in use
// has no effect.
func (m *InvokeIDManager) Free(id int32, sent bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.set(sent), id)
}

// Reserve marks the externally supplied id in use in the given
// direction. It fails with a duplicate invoke-id error if id is
// already in use, and with an invalid message error if id is not
// positive.
func (m *InvokeIDManager) Reserve(id int32, sent bool) error {
	if id <= 0 {
		return cdaperr.InvalidMessage(cdaperr.WithInvokeID(id), cdaperr.WithMessage("invoke-id must be positive"))
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	set := m.set(sent)
	if _, ok := set[id]; ok {
		return cdaperr.DuplicateInvokeID(cdaperr.WithInvokeID(id), cdaperr.WithMessage("invoke-id already in use"))
	}
	set[id] = struct{}{}
	return nil
}

// InUse returns true if id is in use in the given direction
func (m *InvokeIDManager) InUse(id int32, sent bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.set(sent)[id]
	return ok
}

// Len returns the number of ids in use in the given direction
func (m *InvokeIDManager) Len(sent bool) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.set(sent))
}

// Reset frees all ids in both directions
func (m *InvokeIDManager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = map[int32]struct{}{}
	m.received = map[int32]struct{}{}
}
