package transport

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/andaru/cdap/framing"
	"github.com/stretchr/testify/assert"
)

func TestReader(t *testing.T) {
	for _, tc := range []struct {
		name    string
		in      string
		max     int
		want    []string
		wantErr error
	}{
		{name: "empty", wantErr: io.EOF},
		{name: "pdus", in: "\x03foo\x03bar\x00", want: []string{"foo", "bar", ""}, wantErr: io.EOF},
		{name: "truncated", in: "\x03foo\x03ba", want: []string{"foo"}, wantErr: io.ErrUnexpectedEOF},
		{name: "too large", in: "\x03foo\x05abcde", max: 4, want: []string{"foo"}, wantErr: framing.ErrBadFrame{Message: "frame too large", Size: 5}},
		{name: "large", in: "\x80\x40" + strings.Repeat("z", 8192), want: []string{strings.Repeat("z", 8192)}, wantErr: io.EOF},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a := assert.New(t)
			r := NewReader(strings.NewReader(tc.in), tc.max)
			var got []string
			for {
				pdu, err := r.ReadPDU()
				if err != nil {
					a.Equal(tc.wantErr, err)
					break
				}
				got = append(got, string(pdu))
			}
			a.Equal(tc.want, got)
		})
	}
}

func TestReaderCopies(t *testing.T) {
	a := assert.New(t)
	r := NewReader(bytes.NewReader([]byte("\x01a\x01b")), 0)
	first, err := r.ReadPDU()
	a.NoError(err)
	second, err := r.ReadPDU()
	a.NoError(err)
	a.Equal("a", string(first))
	a.Equal("b", string(second))
}

func TestReaderRoundTrip(t *testing.T) {
	a := assert.New(t)
	b := closeBuffer{&bytes.Buffer{}}
	w := NewWriter(b)
	pdus := [][]byte{[]byte("hello"), {}, bytes.Repeat([]byte{0xee}, 200)}
	for _, pdu := range pdus {
		a.NoError(w.WritePDU(pdu))
	}
	r := NewReader(b, 0)
	for _, want := range pdus {
		got, err := r.ReadPDU()
		a.NoError(err)
		a.Equal(want, got)
	}
	_, err := r.ReadPDU()
	a.Equal(io.EOF, err)
}
