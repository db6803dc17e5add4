package transport

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter(t *testing.T) {
	a := assert.New(t)
	b := closeBuffer{&bytes.Buffer{}}
	w := NewWriter(b)
	a.NoError(w.WritePDU([]byte("foo")))
	a.NoError(w.WritePDU(nil))
	a.Equal("\x03foo\x00", b.String())
	a.NoError(w.Close())
}

func TestWriterErrors(t *testing.T) {
	a := assert.New(t)
	a.Equal(io.ErrShortWrite, NewWriter(shortWriter{}).WritePDU([]byte("foo")))
	a.Equal(io.ErrClosedPipe, NewWriter(failWriter{}).WritePDU([]byte("foo")))
}

func TestWriterConcurrent(t *testing.T) {
	a := assert.New(t)
	b := &lockedBuffer{}
	w := NewWriter(b)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				a.NoError(w.WritePDU([]byte(fmt.Sprintf("writer-%d-%d", i, j))))
			}
		}(i)
	}
	wg.Wait()

	r := NewReader(bytes.NewReader(b.Bytes()), 0)
	seen := map[string]bool{}
	for {
		pdu, err := r.ReadPDU()
		if err != nil {
			a.Equal(io.EOF, err)
			break
		}
		seen[string(pdu)] = true
	}
	a.Len(seen, 800)
}

type closeBuffer struct{ *bytes.Buffer }

func (cb closeBuffer) Close() error { return nil }

type lockedBuffer struct {
	mu sync.Mutex
	bytes.Buffer
}

func (lb *lockedBuffer) Write(p []byte) (int, error) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.Buffer.Write(p)
}

func (lb *lockedBuffer) Close() error { return nil }

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return len(p) - 1, nil }
func (shortWriter) Close() error                { return nil }

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, io.ErrClosedPipe }
func (failWriter) Close() error                { return nil }
