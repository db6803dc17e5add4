package message

import (
	"bytes"
	"fmt"
	"strings"
)

// Naming is the naming information of one application process
// endpoint: the process name and instance plus the entity name and
// instance within it.
type Naming struct {
	ProcessName     string
	ProcessInstance string
	EntityName      string
	EntityInstance  string
}

// IsZero returns true if no naming field is set
func (n Naming) IsZero() bool { return n == Naming{} }

func (n Naming) String() string {
	return strings.Join([]string{n.ProcessName, n.ProcessInstance, n.EntityName, n.EntityInstance}, "/")
}

// AuthMechanism is the CDAP connection authentication mechanism
type AuthMechanism int32

const (
	AuthNone AuthMechanism = iota
	AuthPassword
	AuthSSHRSA
	AuthSSHDSA
)

func (a AuthMechanism) String() string {
	switch a {
	case AuthNone:
		return "AUTH_NONE"
	case AuthPassword:
		return "AUTH_PASSWD"
	case AuthSSHRSA:
		return "AUTH_SSHRSA"
	case AuthSSHDSA:
		return "AUTH_SSHDSA"
	default:
		return fmt.Sprintf("AuthMechanism(%d)", int32(a))
	}
}

// ParseAuthMechanism returns the AuthMechanism named s
func ParseAuthMechanism(s string) (AuthMechanism, bool) {
	for _, a := range []AuthMechanism{AuthNone, AuthPassword, AuthSSHRSA, AuthSSHDSA} {
		if a.String() == s {
			return a, true
		}
	}
	return AuthNone, false
}

// AuthPolicy carries the authentication mechanism and value exchanged
// in M_CONNECT and M_CONNECT_R.
type AuthPolicy struct {
	Mechanism AuthMechanism
	Name      string
	Password  string
	Other     []byte
}

// IsZero returns true if no authentication is carried
func (a AuthPolicy) IsZero() bool {
	return a.Mechanism == AuthNone && a.Name == "" && a.Password == "" && len(a.Other) == 0
}

// Equal reports whether a and o are identical
func (a AuthPolicy) Equal(o AuthPolicy) bool {
	return a.Mechanism == o.Mechanism && a.Name == o.Name && a.Password == o.Password && bytes.Equal(a.Other, o.Other)
}

// Message is one CDAP protocol data unit.
//
// An InvokeID of zero on a request means no response is expected. A
// response echoes the InvokeID of the request it answers.
type Message struct {
	Opcode   Opcode
	InvokeID int32
	Flags    Flags

	ObjectClass    string
	ObjectName     string
	ObjectInstance int64
	ObjectValue    ObjectValue
	Scope          int32
	Filter         []byte

	Result       int32
	ResultReason string

	// connection establishment fields (M_CONNECT and M_CONNECT_R only)
	AuthPolicy     AuthPolicy
	AbstractSyntax int32
	Version        int64
	Source         Naming
	Destination    Naming
}

// ExpectsResponse returns true for requests carrying a non-zero invoke-id
func (m *Message) ExpectsResponse() bool { return !m.Opcode.IsResponse() && m.InvokeID != 0 }

// Succeeded returns true if the result code indicates success
func (m *Message) Succeeded() bool { return m.Result == 0 }

// Clone returns a deep copy of m
func (m *Message) Clone() *Message {
	c := *m
	if m.Filter != nil {
		c.Filter = append([]byte(nil), m.Filter...)
	}
	if m.AuthPolicy.Other != nil {
		c.AuthPolicy.Other = append([]byte(nil), m.AuthPolicy.Other...)
	}
	if b, ok := m.ObjectValue.Bytes(); ok && b != nil {
		c.ObjectValue = BytesValue(append([]byte(nil), b...))
	}
	return &c
}

// Equal reports whether m and o carry identical content
func (m *Message) Equal(o *Message) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.Opcode == o.Opcode &&
		m.InvokeID == o.InvokeID &&
		m.Flags == o.Flags &&
		m.ObjectClass == o.ObjectClass &&
		m.ObjectName == o.ObjectName &&
		m.ObjectInstance == o.ObjectInstance &&
		m.ObjectValue.Equal(o.ObjectValue) &&
		m.Scope == o.Scope &&
		bytes.Equal(m.Filter, o.Filter) &&
		m.Result == o.Result &&
		m.ResultReason == o.ResultReason &&
		m.AuthPolicy.Equal(o.AuthPolicy) &&
		m.AbstractSyntax == o.AbstractSyntax &&
		m.Version == o.Version &&
		m.Source == o.Source &&
		m.Destination == o.Destination
}

// String returns a compact, single line summary of m for logging
func (m *Message) String() string {
	s := m.Opcode.String()
	if m.InvokeID != 0 {
		s += fmt.Sprintf(" invoke-id:%d", m.InvokeID)
	}
	if m.Flags != FlagNone {
		s += " flags:" + m.Flags.String()
	}
	if m.ObjectClass != "" || m.ObjectName != "" {
		s += fmt.Sprintf(" obj:%s/%s", m.ObjectClass, m.ObjectName)
	}
	if m.ObjectInstance != 0 {
		s += fmt.Sprintf(" inst:%d", m.ObjectInstance)
	}
	if !m.ObjectValue.IsZero() {
		s += " value:" + m.ObjectValue.String()
	}
	if m.Opcode.IsResponse() {
		s += fmt.Sprintf(" result:%d", m.Result)
		if m.ResultReason != "" {
			s += fmt.Sprintf(" reason:%q", m.ResultReason)
		}
	}
	if !m.Source.IsZero() {
		s += " src:" + m.Source.String()
	}
	if !m.Destination.IsZero() {
		s += " dst:" + m.Destination.String()
	}
	return s
}
