package flow

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/andaru/cdap/cdaperr"
	"github.com/andaru/cdap/message"
	"github.com/andaru/cdap/session"
	"github.com/andaru/cdap/transport"
	"github.com/sirupsen/logrus"
)

var flowLog = logrus.WithField("source", "cdap/flow")

// SetLogger sets the default logger of flows configured without one
func SetLogger(logger *logrus.Entry) {
	fields := flowLog.Data
	flowLog = logger.WithFields(fields)
}

// Config contains Flow configuration
type Config struct {
	// MaxPDU is the largest PDU accepted from the peer. Defaults to
	// transport.DefaultMaxPDU.
	MaxPDU int
	// Backlog is the number of PDUs read ahead of processing. Defaults
	// to DefaultBacklog.
	Backlog int
	// Logger defaults to the package logger (see SetLogger)
	Logger *logrus.Entry
}

// DefaultBacklog is the default Config.Backlog
const DefaultBacklog = 64

// Flow binds an allocated flow, the byte stream to a peer application
// process, to the CDAP session of its port-id.
type Flow struct {
	portID  int
	manager *session.Manager
	rwc     io.ReadWriteCloser
	reader  *transport.Reader
	writer  *transport.Writer
	log     *logrus.Entry
	backlog int

	// mu orders message processing against Send
	mu        sync.Mutex
	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// New returns a new Flow for portID over rwc, whose session is managed
// by manager.
func New(portID int, rwc io.ReadWriteCloser, manager *session.Manager, config Config) *Flow {
	if config.Logger == nil {
		config.Logger = flowLog
	}
	if config.Backlog <= 0 {
		config.Backlog = DefaultBacklog
	}
	return &Flow{
		portID:  portID,
		manager: manager,
		rwc:     rwc,
		reader:  transport.NewReader(rwc, config.MaxPDU),
		writer:  transport.NewWriter(rwc),
		log:     config.Logger.WithField("port-id", portID),
		backlog: config.Backlog,
	}
}

// Handler is the Flow handler interface. CDAP applications implement
// it to receive messages; see Run.
type Handler interface {
	// OnMessage is called with each message accepted by the session
	OnMessage(*Flow, *message.Message)
	// OnError is called when a PDU cannot be decoded or is refused by
	// the session. The flow continues with the next PDU.
	OnError(*Flow, error)
	// OnClose is called once, after the flow is closed
	OnClose(*Flow)
}

// Run reads PDUs from f and passes them to its session until the peer
// closes the flow, ctx is done, or a transport error occurs. The
// session is then removed from the manager and f is closed. Run
// returns nil if the flow ended normally.
//
// Handler methods are called from a single goroutine, and may call
// Send.
func Run(ctx context.Context, f *Flow, h Handler) (err error) {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			f.Close()
		case <-stop:
		}
	}()

	// PDUs are read ahead of processing so that a peer's writes
	// complete while a local Send holds the flow.
	pdus := make(chan []byte, f.backlog)
	readErr := make(chan error, 1)
	go func() {
		defer close(pdus)
		for {
			pdu, err := f.reader.ReadPDU()
			if err != nil {
				readErr <- err
				return
			}
			pdus <- pdu
		}
	}()

	for pdu := range pdus {
		f.mu.Lock()
		m, merr := f.manager.MessageReceived(pdu, f.portID)
		f.mu.Unlock()
		if merr != nil {
			h.OnError(f, merr)
			continue
		}
		h.OnMessage(f, m)
	}

	switch rerr := <-readErr; {
	case ctx.Err() != nil:
		err = ctx.Err()
	case rerr != io.EOF && !f.closed.Load():
		err = rerr
		f.log.WithError(rerr).Error("flow read failed")
	}
	if rerr := f.manager.RemoveSession(f.portID); rerr != nil && !cdaperr.IsKind(rerr, cdaperr.KindSessionNotFound) {
		f.log.WithError(rerr).Warn("session removal failed")
	}
	f.Close()
	h.OnClose(f)
	return err
}

// Run executes the flow using Handler h
func (f *Flow) Run(ctx context.Context, h Handler) error { return Run(ctx, f, h) }

// PortID returns the flow's port-id
func (f *Flow) PortID() int { return f.portID }

// Session returns the flow's session, or nil if it has none
func (f *Flow) Session() *session.Session { return f.manager.Session(f.portID) }

// Send encodes m on the flow's session, writes it to the peer and
// reports it sent. A session is created if m is an M_CONNECT. Received
// messages are not processed while a Send is in progress, so a
// response cannot overtake the transition of its request.
func (f *Flow) Send(m *message.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := f.manager.EncodeNextMessageToBeSent(m, f.portID)
	if err != nil {
		return err
	}
	if err := f.writer.WritePDU(b); err != nil {
		f.log.WithError(err).WithField("opcode", m.Opcode).Error("flow write failed")
		return err
	}
	return f.manager.MessageSent(m, f.portID)
}

// Close closes the flow's byte stream
func (f *Flow) Close() error {
	f.closeOnce.Do(func() {
		f.closed.Store(true)
		f.closeErr = f.rwc.Close()
	})
	return f.closeErr
}
