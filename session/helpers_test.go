package session

import (
	"io"
	"testing"

	"github.com/andaru/cdap/message"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

var (
	namingA = message.Naming{ProcessName: "a.ipcp", ProcessInstance: "1", EntityName: "Management", EntityInstance: "1"}
	namingB = message.Naming{ProcessName: "b.ipcp", ProcessInstance: "1", EntityName: "Management", EntityInstance: "1"}
)

func testConfig() Config {
	l := logrus.New()
	l.Out = io.Discard
	l.Level = logrus.DebugLevel
	return Config{Logger: logrus.NewEntry(l)}
}

func connectMsg(id int32) *message.Message {
	return &message.Message{
		Opcode:         message.MConnect,
		InvokeID:       id,
		AbstractSyntax: 115,
		Version:        1,
		AuthPolicy:     message.AuthPolicy{Mechanism: message.AuthPassword, Name: "admin", Password: "secret"},
		Source:         namingA,
		Destination:    namingB,
	}
}

func responseMsg(op message.Opcode, id int32, result int32) *message.Message {
	return &message.Message{Opcode: op, InvokeID: id, Result: result}
}

func objectMsg(op message.Opcode, id int32) *message.Message {
	m := &message.Message{Opcode: op, InvokeID: id, ObjectClass: "flow", ObjectName: "/dif/flows"}
	if op == message.MWrite {
		m.ObjectValue = message.Int64Value(1)
	}
	return m
}

// send encodes m on s and reports it sent, returning the encoding
func send(t *testing.T, s *Session, m *message.Message) []byte {
	t.Helper()
	b, err := s.EncodeNextMessageToBeSent(m)
	require.NoError(t, err)
	require.NoError(t, s.MessageSent(m))
	return b
}

// exchange sends m on from and receives it on to
func exchange(t *testing.T, from, to *Session, m *message.Message) *message.Message {
	t.Helper()
	got, err := to.MessageReceived(send(t, from, m))
	require.NoError(t, err)
	return got
}

// connectedPair returns two connected sessions; a initiated the
// connection using invoke-id 1.
func connectedPair(t *testing.T) (a, b *Session) {
	t.Helper()
	a, b = NewSession(1, testConfig()), NewSession(2, testConfig())
	exchange(t, a, b, connectMsg(a.InvokeIDManager().NewInvokeID()))
	exchange(t, b, a, responseMsg(message.MConnectR, 1, 0))
	require.Equal(t, StateConnected, a.State())
	require.Equal(t, StateConnected, b.State())
	return a, b
}

type snapshot struct {
	state       State
	desc        Descriptor
	sentPending int
	recvPending int
	sentIDs     int
	recvIDs     int
}

func snap(s *Session) snapshot {
	return snapshot{
		state:       s.State(),
		desc:        s.Descriptor(),
		sentPending: s.Pending(true),
		recvPending: s.Pending(false),
		sentIDs:     s.InvokeIDManager().Len(true),
		recvIDs:     s.InvokeIDManager().Len(false),
	}
}
