/*
Package transport provides the CDAP transport layer.

The transport layer reads and writes whole PDUs over the byte stream
of an allocated flow, delimiting them with the length prefix framing
of package framing. The session layer consumes and produces PDUs only.
*/
package transport
