package session

import (
	"sync"

	"github.com/andaru/cdap/cdaperr"
	"github.com/andaru/cdap/codec/gpb"
	"github.com/andaru/cdap/message"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Config contains Session and Manager configuration
type Config struct {
	// Codec converts messages to and from the wire. Defaults to the
	// CDAP protocol buffers codec.
	Codec Codec
	// Logger is the base logger. Defaults to the package logger (see
	// SetLogger).
	Logger *logrus.Entry
	// Registerer, if set, has the Manager's metrics registered on it.
	// Sessions created with NewSession record no metrics.
	Registerer prometheus.Registerer
}

func (c Config) withDefaults() Config {
	if c.Codec == nil {
		c.Codec = gpb.Codec{}
	}
	if c.Logger == nil {
		c.Logger = sessionLog
	}
	return c
}

// Session is the CDAP session state machine of one flow.
//
// Outgoing messages are first passed to EncodeNextMessageToBeSent,
// which checks them against the session state without changing it.
// Once the encoded bytes have been transmitted, MessageSent performs
// the state and invoke-id transition. Incoming messages are passed to
// MessageReceived, which checks and transitions in one step. A message
// failing any check leaves the session unchanged.
//
// A Session is safe for concurrent use by one receiving goroutine and
// any number of sending goroutines.
type Session struct {
	portID  int
	codec   Codec
	log     *logrus.Entry
	metrics *metrics

	mu    sync.Mutex
	state State
	desc  Descriptor
	ids   *InvokeIDManager
	// sentPending holds the requests we sent awaiting the peer's
	// response, recvPending those we received awaiting ours.
	sentPending map[int32]*pending
	recvPending map[int32]*pending
	// encoded counts messages encoded but not yet reported sent
	encoded  map[encodedKey]int
	counters Counters
	// closed is set once the session's Manager removes it
	closed bool
}

type pending struct {
	opcode          message.Opcode
	cancelRequested bool
}

type encodedKey struct {
	opcode   message.Opcode
	invokeID int32
}

func keyOf(m *message.Message) encodedKey { return encodedKey{m.Opcode, m.InvokeID} }

// NewSession returns a new Session in StateNone for the flow portID
func NewSession(portID int, config Config) *Session {
	return newSession(portID, config.withDefaults(), nil)
}

func newSession(portID int, config Config, m *metrics) *Session {
	s := &Session{
		portID:  portID,
		codec:   config.Codec,
		log:     config.Logger.WithField("port-id", portID),
		metrics: m,
		ids:     NewInvokeIDManager(),
	}
	s.reset()
	return s
}

// PortID returns the port-id of the flow the session is bound to
func (s *Session) PortID() int { return s.portID }

// InvokeIDManager returns the session's invoke-id manager. Callers use
// it to allocate invoke-ids for their requests.
func (s *Session) InvokeIDManager() *InvokeIDManager { return s.ids }

// State returns the current session state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Descriptor returns a copy of the session descriptor
func (s *Session) Descriptor() Descriptor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.desc.clone()
}

// Counters returns a copy of the session counters
func (s *Session) Counters() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters
}

// Pending returns the number of requests awaiting a response, sent by
// us (sent) or received from the peer (!sent).
func (s *Session) Pending(sent bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests(sent))
}

// EncodeNextMessageToBeSent checks m against the session state and
// returns its encoding. The session state is not changed; call
// MessageSent once the returned bytes have been transmitted.
func (s *Session) EncodeNextMessageToBeSent(m *message.Message) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.removed(m); err != nil {
		return nil, err
	}
	if _, err := s.check(m, true); err != nil {
		return nil, s.reject(m, true, err)
	}
	b, err := s.codec.Encode(m)
	if err != nil {
		if _, ok := cdaperr.KindOf(err); !ok {
			err = cdaperr.Encoding(cdaperr.WithOpcode(m.Opcode), cdaperr.WithInvokeID(m.InvokeID), cdaperr.WithCause(err))
		}
		return nil, s.reject(m, true, err)
	}
	s.encoded[keyOf(m)]++
	return b, nil
}

// MessageSent performs the transition for m, which must have been
// returned by a successful EncodeNextMessageToBeSent and since
// transmitted. m is checked again, since messages received in the
// meantime may have changed the session state.
//
// Each successful encode permits one MessageSent, whether or not it
// succeeds. Encodings are matched by opcode and invoke-id only, so
// encoded messages sharing both (e.g. two M_KEEPALIVE with invoke-id
// 0) are interchangeable.
func (s *Session) MessageSent(m *message.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.removed(m); err != nil {
		return err
	}
	k := keyOf(m)
	if s.encoded[k] == 0 {
		return s.reject(m, true, cdaperr.IllegalState(cdaperr.WithOpcode(m.Opcode), cdaperr.WithInvokeID(m.InvokeID),
			cdaperr.WithMessage("message sent without being encoded")))
	}
	if s.encoded[k]--; s.encoded[k] == 0 {
		delete(s.encoded, k)
	}
	t, err := s.check(m, true)
	if err != nil {
		return s.reject(m, true, err)
	}
	s.apply(t)
	s.counters.TxMsgs++
	s.metrics.pdu(m.Opcode, true)
	return nil
}

// MessageReceived decodes b, checks the message against the session
// state and performs its transition, returning the decoded message.
func (s *Session) MessageReceived(b []byte) (*message.Message, error) {
	if err := s.isClosed(); err != nil {
		return nil, err
	}
	m, err := s.codec.Decode(b)
	if err != nil {
		if _, ok := cdaperr.KindOf(err); !ok {
			err = cdaperr.Decoding(cdaperr.WithCause(err))
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		return nil, s.reject(nil, false, err)
	}
	if err := s.MessageReceivedMessage(m); err != nil {
		return nil, err
	}
	return m, nil
}

// MessageReceivedMessage is MessageReceived for an already decoded
// message.
func (s *Session) MessageReceivedMessage(m *message.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.removed(m); err != nil {
		return err
	}
	t, err := s.check(m, false)
	if err != nil {
		return s.reject(m, false, err)
	}
	s.apply(t)
	s.counters.RxMsgs++
	s.metrics.pdu(m.Opcode, false)
	return nil
}

// close marks the session removed from its Manager. Every later
// message operation fails with a session-not-found error.
func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Session) isClosed() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removed(nil)
}

// removed returns an error if the session is closed. Called with s.mu
// held.
func (s *Session) removed(m *message.Message) error {
	if !s.closed {
		return nil
	}
	opts := []cdaperr.Option{cdaperr.WithPortID(s.portID), cdaperr.WithMessage("session removed")}
	if m != nil {
		opts = append(opts, cdaperr.WithOpcode(m.Opcode), cdaperr.WithInvokeID(m.InvokeID))
	}
	return cdaperr.SessionNotFound(opts...)
}

// reject records err for m. Called with s.mu held.
func (s *Session) reject(m *message.Message, sent bool, err error) error {
	s.counters.Errors++
	s.metrics.failed(err)
	log := s.log.WithError(err).WithField("direction", direction(sent))
	if m != nil {
		log = log.WithFields(logrus.Fields{"opcode": m.Opcode, "invoke-id": m.InvokeID})
	}
	log.WithField("state", s.state).Warn("message rejected")
	return err
}

func (s *Session) reset() {
	s.state = StateNone
	s.desc = Descriptor{PortID: s.portID}
	s.sentPending = map[int32]*pending{}
	s.recvPending = map[int32]*pending{}
	s.encoded = map[encodedKey]int{}
	s.ids.Reset()
}

// requests returns the table of requests initiated by this side (sent)
// or by the peer (!sent)
func (s *Session) requests(sent bool) map[int32]*pending {
	if sent {
		return s.sentPending
	}
	return s.recvPending
}
