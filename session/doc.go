/*
Package session implements the CDAP session layer.

A Session is the protocol state machine of one flow. It checks every
message sent or received against the connection state and the
invoke-ids of outstanding requests, and advances both. A Manager owns
the sessions of an application process, keyed by flow port-id.

Session states

	NONE --send M_CONNECT--> AWAIT_CONNECTION_R --recv M_CONNECT_R--> CONNECTED
	NONE --recv M_CONNECT--> AWAIT_CONNECTION   --send M_CONNECT_R--> CONNECTED
	CONNECTED --send M_RELEASE--> AWAIT_RELEASE_R --recv M_RELEASE_R--> NONE
	CONNECTED --recv M_RELEASE--> AWAIT_RELEASE   --send M_RELEASE_R--> NONE

An M_CONNECT_R with a non-zero result returns the session to NONE. An
M_CONNECT or M_RELEASE carrying invoke-id 0 expects no response and
moves directly to CONNECTED or NONE respectively. Object operations,
M_CANCELREAD and M_KEEPALIVE are only legal while CONNECTED, and a
response is only legal while its request is outstanding.

Sending

Sending is split in two so that a failed transmission leaves the
session unchanged:

	b, err := s.EncodeNextMessageToBeSent(m)
	// ... write b to the flow ...
	err = s.MessageSent(m)

Errors

All errors are *cdaperr.Error values; use cdaperr.IsKind to inspect
them.
*/
package session
