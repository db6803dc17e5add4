package session

import "github.com/andaru/cdap/message"

// Descriptor describes the two endpoints and the connection parameters
// of a CDAP session. It is populated when an M_CONNECT is sent or
// received and does not change until the session returns to StateNone.
type Descriptor struct {
	// PortID is the port-id of the flow the session runs over
	PortID         int
	AbstractSyntax int32
	AuthPolicy     message.AuthPolicy
	Version        int64
	// Local and Remote are the naming of this side and of the peer
	Local  message.Naming
	Remote message.Naming
	// LocalInitiated is true if this side sent the M_CONNECT
	LocalInitiated bool

	established bool
}

// Established returns true once the connect exchange has completed
// successfully.
func (d Descriptor) Established() bool { return d.established }

// SourceNaming returns the naming of the side which sent the M_CONNECT
func (d Descriptor) SourceNaming() message.Naming {
	if d.LocalInitiated {
		return d.Local
	}
	return d.Remote
}

// DestinationNaming returns the naming of the side which received the
// M_CONNECT
func (d Descriptor) DestinationNaming() message.Naming {
	if d.LocalInitiated {
		return d.Remote
	}
	return d.Local
}

// Equal reports whether d and o have the same content
func (d Descriptor) Equal(o Descriptor) bool {
	return d.PortID == o.PortID &&
		d.AbstractSyntax == o.AbstractSyntax &&
		d.AuthPolicy.Equal(o.AuthPolicy) &&
		d.Version == o.Version &&
		d.Local == o.Local &&
		d.Remote == o.Remote &&
		d.LocalInitiated == o.LocalInitiated &&
		d.established == o.established
}

func (d Descriptor) clone() Descriptor {
	if d.AuthPolicy.Other != nil {
		d.AuthPolicy.Other = append([]byte(nil), d.AuthPolicy.Other...)
	}
	return d
}

// connect populates d from an M_CONNECT sent (or received, if !sent)
// by this side
func (d *Descriptor) connect(m *message.Message, sent bool) {
	d.AbstractSyntax = m.AbstractSyntax
	d.AuthPolicy = m.AuthPolicy
	d.Version = m.Version
	d.LocalInitiated = sent
	if sent {
		d.Local, d.Remote = m.Source, m.Destination
	} else {
		d.Local, d.Remote = m.Destination, m.Source
	}
	d.established = false
}
