package transport

import (
	"io"
	"sync"

	"github.com/andaru/cdap/framing"
)

// Writer is a CDAP transport encoder, writing length-delimited PDUs to
// a flow. It is safe for concurrent use; each PDU is written with a
// single call to the destination's Write.
type Writer struct {
	mu  sync.Mutex
	dst io.WriteCloser
	buf []byte
}

// NewWriter returns a new Writer writing to the destination dst
func NewWriter(dst io.WriteCloser) *Writer { return &Writer{dst: dst} }

// WritePDU writes pdu, preceded by its length prefix
func (w *Writer) WritePDU(pdu []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf = framing.AppendDelimited(w.buf[:0], pdu)
	n, err := w.dst.Write(w.buf)
	if err == nil && n < len(w.buf) {
		err = io.ErrShortWrite
	}
	return err
}

// Close closes the underlying writer
func (w *Writer) Close() error { return w.dst.Close() }
