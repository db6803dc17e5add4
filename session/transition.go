package session

import (
	"github.com/andaru/cdap/cdaperr"
	"github.com/andaru/cdap/message"
	"github.com/sirupsen/logrus"
)

// transition is the effect of one legal message on a session
type transition struct {
	m    *message.Message
	sent bool
	next State
	// connect populates the descriptor from an M_CONNECT
	connect bool
	// record adds m to the table of requests initiated by its sender
	record bool
	// complete removes the request answered by m and frees its id
	complete bool
	// cancel marks the read named by an M_CANCELREAD as cancelled
	cancel bool
}

// check returns the transition m causes when sent (or received, if
// !sent) in the current state, or the error making m illegal. The
// session is not modified. Called with s.mu held.
func (s *Session) check(m *message.Message, sent bool) (transition, error) {
	if err := m.Validate(); err != nil {
		return transition{}, err
	}
	t := transition{m: m, sent: sent, next: s.state}
	id := m.InvokeID

	switch m.Opcode {
	case message.MConnect:
		if s.state != StateNone {
			return t, s.illegalState(m)
		}
		t.connect = true
		switch {
		case id == 0:
			t.next = StateConnected
		case sent:
			t.record, t.next = true, StateAwaitConnectionR
		default:
			t.record, t.next = true, StateAwaitConnection
		}

	case message.MConnectR:
		if want := pick(sent, StateAwaitConnection, StateAwaitConnectionR); s.state != want {
			return t, s.illegalState(m)
		}
		if _, err := s.answered(m, sent); err != nil {
			return t, err
		}
		t.complete = true
		t.next = StateNone
		if m.Succeeded() {
			t.next = StateConnected
		}

	case message.MRelease:
		if s.state != StateConnected {
			return t, s.illegalState(m)
		}
		switch {
		case id == 0:
			t.next = StateNone
		case sent:
			t.record, t.next = true, StateAwaitReleaseR
		default:
			t.record, t.next = true, StateAwaitRelease
		}

	case message.MReleaseR:
		if want := pick(sent, StateAwaitRelease, StateAwaitReleaseR); s.state != want {
			return t, s.illegalState(m)
		}
		if _, err := s.answered(m, sent); err != nil {
			return t, err
		}
		t.complete, t.next = true, StateNone

	case message.MCancelRead:
		if s.state != StateConnected {
			return t, s.illegalState(m)
		}
		p := s.requests(sent)[id]
		switch {
		case p == nil || p.opcode != message.MRead:
			return t, s.unknownInvokeID(m, "no outstanding M_READ to cancel")
		case p.cancelRequested:
			return t, cdaperr.IllegalState(cdaperr.WithOpcode(m.Opcode), cdaperr.WithInvokeID(id),
				cdaperr.WithMessage("cancel already requested"))
		}
		t.cancel = true

	case message.MCancelReadR:
		if s.state != StateConnected {
			return t, s.illegalState(m)
		}
		if p := s.requests(!sent)[id]; p == nil || p.opcode != message.MRead || !p.cancelRequested {
			return t, s.unknownInvokeID(m, "no cancelled M_READ outstanding")
		}
		t.complete = true

	default:
		if s.state != StateConnected {
			return t, s.illegalState(m)
		}
		if !m.Opcode.IsResponse() {
			t.record = id != 0
			break
		}
		p, err := s.answered(m, sent)
		if err != nil {
			return t, err
		}
		// a multi-part read reply, or a read whose cancellation is
		// outstanding, stays open until the final response
		t.complete = !(m.Opcode == message.MReadR && (m.Flags == message.FlagReadIncomplete || p.cancelRequested))
	}

	if t.record {
		if s.requests(sent)[id] != nil || (!sent && s.ids.InUse(id, false)) {
			return t, cdaperr.DuplicateInvokeID(cdaperr.WithOpcode(m.Opcode), cdaperr.WithInvokeID(id),
				cdaperr.WithMessage("invoke-id already awaiting a response"))
		}
	}
	return t, nil
}

// answered returns the outstanding request answered by response m
func (s *Session) answered(m *message.Message, sent bool) (*pending, error) {
	p := s.requests(!sent)[m.InvokeID]
	if p == nil || p.opcode != m.Opcode.Request() {
		return nil, s.unknownInvokeID(m, "no matching outstanding "+m.Opcode.Request().String())
	}
	return p, nil
}

func (s *Session) illegalState(m *message.Message) error {
	return cdaperr.IllegalState(cdaperr.WithOpcode(m.Opcode), cdaperr.WithInvokeID(m.InvokeID),
		cdaperr.WithMessagef("not permitted in state %v", s.state))
}

func (s *Session) unknownInvokeID(m *message.Message, msg string) error {
	return cdaperr.UnknownInvokeID(cdaperr.WithOpcode(m.Opcode), cdaperr.WithInvokeID(m.InvokeID), cdaperr.WithMessage(msg))
}

// apply performs transition t. Called with s.mu held.
func (s *Session) apply(t transition) {
	id := t.m.InvokeID
	if t.connect {
		s.desc.connect(t.m, t.sent)
	}
	if t.record {
		s.requests(t.sent)[id] = &pending{opcode: t.m.Opcode}
		if t.sent {
			// usually already allocated by NewInvokeID
			_ = s.ids.Reserve(id, true)
		} else if err := s.ids.Reserve(id, false); err != nil {
			s.log.WithError(err).WithField("invoke-id", id).Error("received invoke-id out of sync")
		}
	}
	if t.cancel {
		s.requests(t.sent)[id].cancelRequested = true
	}
	if t.complete {
		delete(s.requests(!t.sent), id)
		s.ids.Free(id, !t.sent)
	}

	prev := s.state
	switch s.state = t.next; {
	case t.next == StateNone && prev != StateNone:
		s.reset()
	case t.next == StateConnected && prev != StateConnected:
		s.desc.established = true
	}
	if prev != t.next {
		s.log.WithFields(logrus.Fields{
			"opcode":    t.m.Opcode,
			"invoke-id": id,
			"direction": direction(t.sent),
		}).Debugf("state %v -> %v", prev, t.next)
	}
}

func pick(sent bool, ifSent, ifReceived State) State {
	if sent {
		return ifSent
	}
	return ifReceived
}
