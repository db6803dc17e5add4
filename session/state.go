package session

import "fmt"

// State is a CDAP session's connection state
type State int

const (
	// StateNone is the initial state; only M_CONNECT is legal
	StateNone State = iota
	// StateAwaitConnectionR is entered after sending an M_CONNECT
	// expecting a response
	StateAwaitConnectionR
	// StateAwaitConnection is entered after receiving an M_CONNECT
	// expecting a response
	StateAwaitConnection
	// StateConnected is the data transfer state
	StateConnected
	// StateAwaitReleaseR is entered after sending an M_RELEASE
	// expecting a response
	StateAwaitReleaseR
	// StateAwaitRelease is entered after receiving an M_RELEASE
	// expecting a response
	StateAwaitRelease
)

var stateNames = [...]string{
	StateNone:             "NONE",
	StateAwaitConnectionR: "AWAIT_CONNECTION_R",
	StateAwaitConnection:  "AWAIT_CONNECTION",
	StateConnected:        "CONNECTED",
	StateAwaitReleaseR:    "AWAIT_RELEASE_R",
	StateAwaitRelease:     "AWAIT_RELEASE",
}

func (s State) String() string {
	if s >= StateNone && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Counters contains session message counters
type Counters struct {
	// RxMsgs is the number of messages received and accepted
	RxMsgs int
	// TxMsgs is the number of messages reported sent
	TxMsgs int
	// Errors is the number of messages rejected in either direction
	Errors int
}
