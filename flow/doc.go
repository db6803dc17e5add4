/*
Package flow runs CDAP sessions over allocated flows.

A Flow pairs the byte stream of a flow with the session of its port-id
in a session.Manager. Run executes the receive loop, passing each PDU
to the session and the resulting message to a Handler; Send performs
the encode, write and message-sent sequence for outgoing messages and
may be called from any goroutine.

	f := flow.New(portID, conn, manager, flow.Config{})
	go f.Run(ctx, handler)
	err := f.Send(connectRequest)
*/
package flow
