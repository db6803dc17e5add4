package message

import "fmt"

// Opcode is the CDAP operation code. Values match the CDAP
// protocol buffers opCode_t enumeration; every response opcode is its
// request opcode plus one.
type Opcode int32

const (
	MConnect      Opcode = 0
	MConnectR     Opcode = 1
	MRelease      Opcode = 2
	MReleaseR     Opcode = 3
	MCreate       Opcode = 4
	MCreateR      Opcode = 5
	MDelete       Opcode = 6
	MDeleteR      Opcode = 7
	MRead         Opcode = 8
	MReadR        Opcode = 9
	MCancelRead   Opcode = 10
	MCancelReadR  Opcode = 11
	MWrite        Opcode = 12
	MWriteR       Opcode = 13
	MStart        Opcode = 14
	MStartR       Opcode = 15
	MStop         Opcode = 16
	MStopR        Opcode = 17
	MKeepalive    Opcode = 18
	MKeepaliveR   Opcode = 19
	opcodeInvalid Opcode = 20
)

var opcodeNames = [...]string{
	MConnect:     "M_CONNECT",
	MConnectR:    "M_CONNECT_R",
	MRelease:     "M_RELEASE",
	MReleaseR:    "M_RELEASE_R",
	MCreate:      "M_CREATE",
	MCreateR:     "M_CREATE_R",
	MDelete:      "M_DELETE",
	MDeleteR:     "M_DELETE_R",
	MRead:        "M_READ",
	MReadR:       "M_READ_R",
	MCancelRead:  "M_CANCELREAD",
	MCancelReadR: "M_CANCELREAD_R",
	MWrite:       "M_WRITE",
	MWriteR:      "M_WRITE_R",
	MStart:       "M_START",
	MStartR:      "M_START_R",
	MStop:        "M_STOP",
	MStopR:       "M_STOP_R",
	MKeepalive:   "M_KEEPALIVE",
	MKeepaliveR:  "M_KEEPALIVE_R",
}

func (o Opcode) String() string {
	if o.IsValid() {
		return opcodeNames[o]
	}
	return fmt.Sprintf("Opcode(%d)", int32(o))
}

// ParseOpcode returns the Opcode named s (e.g. "M_READ_R")
func ParseOpcode(s string) (Opcode, bool) {
	for i, name := range opcodeNames {
		if name == s {
			return Opcode(i), true
		}
	}
	return opcodeInvalid, false
}

// IsValid returns true if o is a defined opcode
func (o Opcode) IsValid() bool { return o >= MConnect && o < opcodeInvalid }

// IsResponse returns true for the _R (response) opcodes
func (o Opcode) IsResponse() bool { return o.IsValid() && o%2 == 1 }

// Request returns the request opcode of o's family
func (o Opcode) Request() Opcode { return o &^ 1 }

// Response returns the response opcode of o's family
func (o Opcode) Response() Opcode { return o | 1 }

// IsObjectOperation returns true for the create, delete, read, write,
// start and stop families, which operate on a named object.
func (o Opcode) IsObjectOperation() bool {
	switch o.Request() {
	case MCreate, MDelete, MRead, MWrite, MStart, MStop:
		return true
	}
	return false
}

// Flags are the CDAP message flags (protocol buffers flagValues_t)
type Flags int32

const (
	FlagNone Flags = 0
	// FlagSync requests synchronous operation handling
	FlagSync Flags = 1
	// FlagReadIncomplete marks an M_READ_R as one part of a multi-part
	// reply; more M_READ_R messages for the same invoke-id follow.
	FlagReadIncomplete Flags = 2
)

func (f Flags) String() string {
	switch f {
	case FlagNone:
		return "F_NO_FLAGS"
	case FlagSync:
		return "F_SYNC"
	case FlagReadIncomplete:
		return "F_RD_INCOMPLETE"
	default:
		return fmt.Sprintf("Flags(%d)", int32(f))
	}
}

// ParseFlags returns the Flags named s (e.g. "F_SYNC")
func ParseFlags(s string) (Flags, bool) {
	for _, f := range []Flags{FlagNone, FlagSync, FlagReadIncomplete} {
		if f.String() == s {
			return f, true
		}
	}
	return FlagNone, false
}
