package session

import (
	"sort"
	"sync"

	"github.com/andaru/cdap/cdaperr"
	"github.com/andaru/cdap/message"
	"github.com/sirupsen/logrus"
)

// Manager owns the CDAP sessions of an application process, keyed by
// the port-id of the flow each runs over.
type Manager struct {
	config  Config
	log     *logrus.Entry
	metrics *metrics

	mu       sync.RWMutex
	sessions map[int]*Session
}

// NewManager returns a new Manager with no sessions
func NewManager(config Config) *Manager {
	config = config.withDefaults()
	return &Manager{
		config:   config,
		log:      config.Logger,
		metrics:  newMetrics(config.Registerer),
		sessions: map[int]*Session{},
	}
}

// CreateSession creates a session in StateNone for portID. It fails if
// portID already has a session.
func (m *Manager) CreateSession(portID int) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[portID]; ok {
		return nil, cdaperr.SessionExists(cdaperr.WithPortID(portID))
	}
	return m.create(portID), nil
}

// create adds a new session. Called with m.mu held.
func (m *Manager) create(portID int) *Session {
	s := newSession(portID, m.config, m.metrics)
	m.sessions[portID] = s
	m.metrics.sessionAdded()
	m.log.WithField("port-id", portID).Debug("session created")
	return s
}

// Session returns the session of portID, or nil if there is none
func (m *Manager) Session(portID int) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[portID]
}

// RemoveSession drops the session of portID, e.g. when its flow is
// deallocated. Message operations on the removed *Session fail with a
// session-not-found error.
func (m *Manager) RemoveSession(portID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[portID]; !ok {
		return cdaperr.SessionNotFound(cdaperr.WithPortID(portID))
	}
	m.remove(portID)
	return nil
}

// remove drops and closes the session of portID. Called with m.mu held.
func (m *Manager) remove(portID int) {
	m.sessions[portID].close()
	delete(m.sessions, portID)
	m.metrics.sessionRemoved()
	m.log.WithField("port-id", portID).Debug("session removed")
}

// SessionIDs returns the port-ids of all sessions in ascending order
func (m *Manager) SessionIDs() []int {
	m.mu.RLock()
	ids := make([]int, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()
	sort.Ints(ids)
	return ids
}

// EncodeNextMessageToBeSent encodes msg on the session of portID. A
// session is created for an M_CONNECT if portID has none.
func (m *Manager) EncodeNextMessageToBeSent(msg *message.Message, portID int) ([]byte, error) {
	s, created, err := m.lookup(portID, msg.Opcode)
	if err != nil {
		return nil, err
	}
	b, err := s.EncodeNextMessageToBeSent(msg)
	if err != nil && created {
		m.discard(s)
	}
	return b, err
}

// MessageSent reports msg sent on the session of portID. The session is
// removed once a release completes.
func (m *Manager) MessageSent(msg *message.Message, portID int) error {
	s, _, err := m.lookup(portID, -1)
	if err != nil {
		return err
	}
	if err := s.MessageSent(msg); err != nil {
		return err
	}
	m.removeReleased(s, msg)
	return nil
}

// MessageReceived decodes b and passes it to the session of portID,
// creating the session if the message is an M_CONNECT. The session is
// removed once a release completes.
func (m *Manager) MessageReceived(b []byte, portID int) (*message.Message, error) {
	if s := m.Session(portID); s != nil {
		msg, err := s.MessageReceived(b)
		if err == nil {
			m.removeReleased(s, msg)
		}
		return msg, err
	}
	msg, err := m.config.Codec.Decode(b)
	if err != nil {
		if _, ok := cdaperr.KindOf(err); !ok {
			err = cdaperr.Decoding(cdaperr.WithCause(err))
		}
		m.metrics.failed(err)
		return nil, err
	}
	s, created, err := m.lookup(portID, msg.Opcode)
	if err != nil {
		return nil, err
	}
	if err := s.MessageReceivedMessage(msg); err != nil {
		if created {
			m.discard(s)
		}
		return nil, err
	}
	m.removeReleased(s, msg)
	return msg, nil
}

// lookup returns the session of portID, creating it if op is M_CONNECT.
// created is true if the session was created by this call.
func (m *Manager) lookup(portID int, op message.Opcode) (s *Session, created bool, err error) {
	if s := m.Session(portID); s != nil {
		return s, false, nil
	}
	if op != message.MConnect {
		err := cdaperr.SessionNotFound(cdaperr.WithPortID(portID))
		m.metrics.failed(err)
		return nil, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[portID]; ok {
		return s, false, nil
	}
	return m.create(portID), true, nil
}

// discard removes s, created for an M_CONNECT which was then refused,
// unless it has since left StateNone.
func (m *Manager) discard(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessions[s.PortID()] == s && s.State() == StateNone {
		m.remove(s.PortID())
	}
}

func (m *Manager) removeReleased(s *Session, msg *message.Message) {
	if msg.Opcode.Request() != message.MRelease || s.State() != StateNone {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessions[s.PortID()] == s {
		m.remove(s.PortID())
	}
}

// Close removes all sessions
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for portID := range m.sessions {
		m.remove(portID)
	}
	return nil
}
