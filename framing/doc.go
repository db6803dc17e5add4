/*
Package framing offers length-delimited CDAP PDU framing.

Each PDU on a byte stream is preceded by its length encoded as a
protocol buffers varint. SplitDelimited returns a bufio.SplitFunc for
use with a *bufio.Scanner, producing one token per PDU, and returns
io.ErrUnexpectedEOF when input terminates other than at the end of a
PDU. AppendDelimited produces the framed form of a PDU.
*/
package framing
