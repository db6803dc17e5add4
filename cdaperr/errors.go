package cdaperr

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// Kind represents the class of a CDAP session error
type Kind int

const (
	// KindIllegalState is a protocol sequence error: the message is not
	// legal in the session's current state.
	KindIllegalState Kind = iota
	// KindUnknownInvokeID indicates a response (or cancel) refers to an
	// invoke-id with no matching outstanding request.
	KindUnknownInvokeID
	// KindDuplicateInvokeID indicates a request reuses an invoke-id still
	// outstanding in the same direction.
	KindDuplicateInvokeID
	// KindEncoding is a failure to encode a message for transmission
	KindEncoding
	// KindDecoding is a failure to decode received bytes
	KindDecoding
	// KindObjectValueMissing indicates an operation requiring an object
	// value was built without one.
	KindObjectValueMissing
	// KindInvalidMessage indicates a message carries fields not permitted
	// (or lacks fields required) for its opcode.
	KindInvalidMessage
	// KindSessionExists is returned when creating a session for a port-id
	// which already has one.
	KindSessionExists
	// KindSessionNotFound is returned when operating on a port-id with no
	// session.
	KindSessionNotFound
)

var kindNames = map[Kind]string{
	KindIllegalState:       "illegal-state",
	KindUnknownInvokeID:    "unknown-invoke-id",
	KindDuplicateInvokeID:  "duplicate-invoke-id",
	KindEncoding:           "encoding",
	KindDecoding:           "decoding",
	KindObjectValueMissing: "object-value-missing",
	KindInvalidMessage:     "invalid-message",
	KindSessionExists:      "session-exists",
	KindSessionNotFound:    "session-not-found",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k *Kind) UnmarshalText(b []byte) error {
	b = bytes.TrimSpace(b)
	for kind, name := range kindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return errors.New("unknown value")
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Error represents a CDAP session error.
//
// All state machine, invoke-id and codec failures surfaced by the
// session layer are of this type. Use IsKind or errors.As to inspect
// them.
type Error struct {
	Kind     Kind   `json:"kind"`
	Opcode   string `json:"opcode,omitempty"`
	InvokeID int32  `json:"invoke-id,omitempty"`
	PortID   int    `json:"port-id,omitempty"`
	Message  string `json:"message,omitempty"`

	portSet bool
	cause   error
}

func (e *Error) Error() string {
	s := "cdap " + e.Kind.String() + " error"
	if e.Opcode != "" {
		s += ": " + e.Opcode
	}
	if e.InvokeID != 0 {
		s += " invoke-id:" + strconv.FormatInt(int64(e.InvokeID), 10)
	}
	if e.portSet {
		s += " port-id:" + strconv.Itoa(e.PortID)
	}
	if e.Message != "" {
		s += " " + e.Message
	}
	if e.cause != nil {
		s += ": " + e.cause.Error()
	}
	return s
}

// Cause returns the underlying error, if any (github.com/pkg/errors causer)
func (e *Error) Cause() error { return e.cause }

// Unwrap returns the underlying error, if any
func (e *Error) Unwrap() error { return e.cause }

// New returns a new Error of kind k
func New(k Kind, opts ...Option) *Error {
	e := &Error{Kind: k}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func IllegalState(opts ...Option) *Error       { return New(KindIllegalState, opts...) }
func UnknownInvokeID(opts ...Option) *Error    { return New(KindUnknownInvokeID, opts...) }
func DuplicateInvokeID(opts ...Option) *Error  { return New(KindDuplicateInvokeID, opts...) }
func Encoding(opts ...Option) *Error           { return New(KindEncoding, opts...) }
func Decoding(opts ...Option) *Error           { return New(KindDecoding, opts...) }
func ObjectValueMissing(opts ...Option) *Error { return New(KindObjectValueMissing, opts...) }
func InvalidMessage(opts ...Option) *Error     { return New(KindInvalidMessage, opts...) }
func SessionExists(opts ...Option) *Error      { return New(KindSessionExists, opts...) }
func SessionNotFound(opts ...Option) *Error    { return New(KindSessionNotFound, opts...) }

// IsKind returns true if err is (or wraps) an *Error of kind k
func IsKind(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}

// KindOf returns the kind of the *Error found in err's chain, if any
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
