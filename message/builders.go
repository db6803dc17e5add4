package message

// Connection holds the connection establishment parameters carried by
// M_CONNECT and M_CONNECT_R. Source is the sender of the message being
// built and Destination its peer.
type Connection struct {
	AuthPolicy     AuthPolicy
	AbstractSyntax int32
	Version        int64
	Source         Naming
	Destination    Naming
}

// Object identifies the object an operation applies to, and carries
// the object value, if any.
type Object struct {
	Class    string
	Name     string
	Instance int64
	Value    ObjectValue
}

// Result is the outcome reported by a response message. A zero Code
// indicates success.
type Result struct {
	Code   int32
	Reason string
}

// The functions below build one message per opcode. They do not
// allocate invoke-ids or consult any session; a request invokeID of 0
// means no response is expected. Every built message is validated.

func OpenConnectionRequest(c Connection, invokeID int32) (*Message, error) {
	return build(connection(MConnect, c, Result{}, invokeID))
}

func OpenConnectionResponse(c Connection, r Result, invokeID int32) (*Message, error) {
	return build(connection(MConnectR, c, r, invokeID))
}

func ReleaseConnectionRequest(flags Flags, invokeID int32) (*Message, error) {
	return build(&Message{Opcode: MRelease, Flags: flags, InvokeID: invokeID})
}

func ReleaseConnectionResponse(flags Flags, r Result, invokeID int32) (*Message, error) {
	return build(&Message{Opcode: MReleaseR, Flags: flags, InvokeID: invokeID, Result: r.Code, ResultReason: r.Reason})
}

func CreateObjectRequest(obj Object, flags Flags, scope int32, filter []byte, invokeID int32) (*Message, error) {
	return build(objectRequest(MCreate, obj, flags, scope, filter, invokeID))
}

func CreateObjectResponse(obj Object, flags Flags, r Result, invokeID int32) (*Message, error) {
	return build(objectResponse(MCreateR, obj, flags, r, invokeID))
}

func DeleteObjectRequest(obj Object, flags Flags, scope int32, filter []byte, invokeID int32) (*Message, error) {
	return build(objectRequest(MDelete, obj, flags, scope, filter, invokeID))
}

func DeleteObjectResponse(obj Object, flags Flags, r Result, invokeID int32) (*Message, error) {
	return build(objectResponse(MDeleteR, obj, flags, r, invokeID))
}

func ReadObjectRequest(obj Object, flags Flags, scope int32, filter []byte, invokeID int32) (*Message, error) {
	return build(objectRequest(MRead, obj, flags, scope, filter, invokeID))
}

// ReadObjectResponse builds an M_READ_R. Set flags to FlagReadIncomplete
// on every part but the last of a multi-part reply.
func ReadObjectResponse(obj Object, flags Flags, r Result, invokeID int32) (*Message, error) {
	return build(objectResponse(MReadR, obj, flags, r, invokeID))
}

func WriteObjectRequest(obj Object, flags Flags, scope int32, filter []byte, invokeID int32) (*Message, error) {
	return build(objectRequest(MWrite, obj, flags, scope, filter, invokeID))
}

func WriteObjectResponse(obj Object, flags Flags, r Result, invokeID int32) (*Message, error) {
	return build(objectResponse(MWriteR, obj, flags, r, invokeID))
}

func StartObjectRequest(obj Object, flags Flags, scope int32, filter []byte, invokeID int32) (*Message, error) {
	return build(objectRequest(MStart, obj, flags, scope, filter, invokeID))
}

func StartObjectResponse(obj Object, flags Flags, r Result, invokeID int32) (*Message, error) {
	return build(objectResponse(MStartR, obj, flags, r, invokeID))
}

func StopObjectRequest(obj Object, flags Flags, scope int32, filter []byte, invokeID int32) (*Message, error) {
	return build(objectRequest(MStop, obj, flags, scope, filter, invokeID))
}

func StopObjectResponse(obj Object, flags Flags, r Result, invokeID int32) (*Message, error) {
	return build(objectResponse(MStopR, obj, flags, r, invokeID))
}

// CancelReadRequest builds an M_CANCELREAD for the outstanding M_READ
// with invoke-id invokeID.
func CancelReadRequest(flags Flags, invokeID int32) (*Message, error) {
	return build(&Message{Opcode: MCancelRead, Flags: flags, InvokeID: invokeID})
}

func CancelReadResponse(flags Flags, r Result, invokeID int32) (*Message, error) {
	return build(&Message{Opcode: MCancelReadR, Flags: flags, InvokeID: invokeID, Result: r.Code, ResultReason: r.Reason})
}

func KeepaliveRequest(invokeID int32) (*Message, error) {
	return build(&Message{Opcode: MKeepalive, InvokeID: invokeID})
}

func KeepaliveResponse(r Result, invokeID int32) (*Message, error) {
	return build(&Message{Opcode: MKeepaliveR, InvokeID: invokeID, Result: r.Code, ResultReason: r.Reason})
}

func build(m *Message) (*Message, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func connection(op Opcode, c Connection, r Result, invokeID int32) *Message {
	return &Message{
		Opcode:         op,
		InvokeID:       invokeID,
		AuthPolicy:     c.AuthPolicy,
		AbstractSyntax: c.AbstractSyntax,
		Version:        c.Version,
		Source:         c.Source,
		Destination:    c.Destination,
		Result:         r.Code,
		ResultReason:   r.Reason,
	}
}

func objectRequest(op Opcode, obj Object, flags Flags, scope int32, filter []byte, invokeID int32) *Message {
	return &Message{
		Opcode:         op,
		InvokeID:       invokeID,
		Flags:          flags,
		ObjectClass:    obj.Class,
		ObjectName:     obj.Name,
		ObjectInstance: obj.Instance,
		ObjectValue:    obj.Value,
		Scope:          scope,
		Filter:         filter,
	}
}

func objectResponse(op Opcode, obj Object, flags Flags, r Result, invokeID int32) *Message {
	return &Message{
		Opcode:         op,
		InvokeID:       invokeID,
		Flags:          flags,
		ObjectClass:    obj.Class,
		ObjectName:     obj.Name,
		ObjectInstance: obj.Instance,
		ObjectValue:    obj.Value,
		Result:         r.Code,
		ResultReason:   r.Reason,
	}
}
