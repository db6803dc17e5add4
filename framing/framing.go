package framing

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protowire"
)

// MaxPrefixLen is the longest length prefix, in bytes
const MaxPrefixLen = binary.MaxVarintLen64

// ErrBadFrame is returned for malformed length-delimited input
type ErrBadFrame struct {
	Message string
	Size    uint64
}

func (e ErrBadFrame) Error() string {
	msg := "cdap bad frame"
	if e.Message != "" {
		msg = msg + ": " + e.Message
	}
	if e.Size < 1 {
		return msg
	}
	return fmt.Sprintf("%s (%d bytes)", msg, e.Size)
}

// SplitDelimited returns a bufio.SplitFunc for streams of PDUs each
// prefixed by its length as a protocol buffers varint. Each token is
// one PDU, without its prefix.
//
// PDUs larger than max bytes are refused with an ErrBadFrame; a max
// of zero or less permits any size the scanner's buffer can hold.
func SplitDelimited(max int) bufio.SplitFunc {
	return func(b []byte, atEOF bool) (advance int, token []byte, err error) {
		if atEOF && len(b) == 0 {
			return
		}
		size, n := protowire.ConsumeVarint(b)
		if n < 0 {
			switch err = protowire.ParseError(n); {
			case err != io.ErrUnexpectedEOF:
				err = ErrBadFrame{Message: "invalid length prefix"}
			case !atEOF:
				// ask for the rest of the prefix
				err = nil
			}
			return
		}
		if max > 0 && size > uint64(max) {
			err = ErrBadFrame{Message: "frame too large", Size: size}
			return
		}
		if rem := uint64(len(b) - n); rem < size {
			if atEOF {
				err = io.ErrUnexpectedEOF
			}
			return
		}
		advance = n + int(size)
		token = b[n:advance]
		return
	}
}

// AppendDelimited appends pdu to dst, preceded by its length prefix
func AppendDelimited(dst, pdu []byte) []byte {
	dst = protowire.AppendVarint(dst, uint64(len(pdu)))
	return append(dst, pdu...)
}
