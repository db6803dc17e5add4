package transport

import (
	"bufio"
	"io"

	"github.com/andaru/cdap/framing"
)

// DefaultMaxPDU is the largest PDU a Reader accepts unless configured
// otherwise
const DefaultMaxPDU = 64 * 1024

// Reader is a CDAP transport decoder, reading length-delimited PDUs
// from a flow.
type Reader struct {
	src     io.Reader
	max     int
	scanner *bufio.Scanner
}

// NewReader returns a new Reader of source, refusing PDUs larger than
// maxPDU bytes (DefaultMaxPDU if maxPDU <= 0).
func NewReader(source io.Reader, maxPDU int) *Reader {
	if source == nil {
		panic("NewReader: source must be non-nil")
	}
	if maxPDU <= 0 {
		maxPDU = DefaultMaxPDU
	}
	return &Reader{src: source, max: maxPDU}
}

const readerBufsize = 4 * 1024

// setup performs one time scanner setup
func (r *Reader) setup() {
	if r.scanner != nil {
		return
	}
	r.scanner = bufio.NewScanner(r.src)
	r.scanner.Buffer(make([]byte, readerBufsize), r.max+framing.MaxPrefixLen)
	r.scanner.Split(framing.SplitDelimited(r.max))
}

// ReadPDU returns the next PDU. It returns io.EOF at the end of input,
// and io.ErrUnexpectedEOF if input ends within a PDU. Any framing
// error is permanent, since the stream's PDU boundaries are lost.
func (r *Reader) ReadPDU() ([]byte, error) {
	r.setup()
	if !r.scanner.Scan() {
		err := r.scanner.Err()
		if err == nil {
			err = io.EOF
		}
		return nil, err
	}
	in := r.scanner.Bytes()
	pdu := make([]byte, len(in))
	copy(pdu, in)
	return pdu, nil
}
