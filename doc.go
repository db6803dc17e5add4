/*
Package cdap is a set of Common Distributed Application Protocol (CDAP)
support libraries.

CDAP is the application protocol used between the application
processes of a recursive internetwork: a small set of operations
(create, delete, read, write, start and stop) on named objects, plus
connection establishment, release and keepalive.

These libraries do the session bookkeeping a CDAP peer needs. For each
port they track the connection state machine and the invoke-ids of
outstanding requests, and they pair every response with its request.
Messages the protocol does not permit in the current state are refused
before they reach the wire.

The sub-packages are:

	message    the CDAP message, its opcodes and per-opcode validation
	session    the Session state machine, invoke-id allocation and the Manager
	codec/gpb  the protocol buffers wire encoding
	codec/xmlcodec  an XML encoding, for logging and tests
	framing    length-delimited PDU framing
	transport  PDU Reader and Writer over byte streams
	flow       runs a session over an io.ReadWriteCloser
	cdaperr    the error kinds returned by all of the above

See the session sub-directory for more information about Session
objects and the send and receive sequence.
*/
package cdap
