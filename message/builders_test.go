package message

import (
	"testing"

	"github.com/andaru/cdap/cdaperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilders(t *testing.T) {
	obj := Object{Class: "flow", Name: "/dif/flows/1", Instance: 1}
	value := Object{Class: "flow", Name: "/dif/flows/1", Value: StringValue("qos-cube-1")}
	ok := Result{}
	conn := Connection{AbstractSyntax: 115, Version: 1, Source: testSource, Destination: testDest}

	for _, tc := range []struct {
		name   string
		build  func() (*Message, error)
		opcode Opcode
		id     int32
	}{
		{"open connection request", func() (*Message, error) { return OpenConnectionRequest(conn, 1) }, MConnect, 1},
		{"open connection response", func() (*Message, error) { return OpenConnectionResponse(conn, ok, 1) }, MConnectR, 1},
		{"release request", func() (*Message, error) { return ReleaseConnectionRequest(FlagNone, 0) }, MRelease, 0},
		{"release response", func() (*Message, error) { return ReleaseConnectionResponse(FlagNone, ok, 2) }, MReleaseR, 2},
		{"create request", func() (*Message, error) { return CreateObjectRequest(value, FlagNone, 0, nil, 3) }, MCreate, 3},
		{"create response", func() (*Message, error) { return CreateObjectResponse(value, FlagNone, ok, 3) }, MCreateR, 3},
		{"delete request", func() (*Message, error) { return DeleteObjectRequest(obj, FlagNone, 0, nil, 4) }, MDelete, 4},
		{"delete response", func() (*Message, error) { return DeleteObjectResponse(obj, FlagNone, ok, 4) }, MDeleteR, 4},
		{"read request", func() (*Message, error) { return ReadObjectRequest(obj, FlagNone, 1, []byte("f"), 7) }, MRead, 7},
		{"read response", func() (*Message, error) { return ReadObjectResponse(value, FlagReadIncomplete, ok, 7) }, MReadR, 7},
		{"write request", func() (*Message, error) { return WriteObjectRequest(value, FlagSync, 0, nil, 8) }, MWrite, 8},
		{"write response", func() (*Message, error) { return WriteObjectResponse(obj, FlagNone, ok, 8) }, MWriteR, 8},
		{"start request", func() (*Message, error) { return StartObjectRequest(obj, FlagNone, 0, nil, 0) }, MStart, 0},
		{"start response", func() (*Message, error) { return StartObjectResponse(obj, FlagNone, ok, 9) }, MStartR, 9},
		{"stop request", func() (*Message, error) { return StopObjectRequest(obj, FlagNone, 0, nil, 10) }, MStop, 10},
		{"stop response", func() (*Message, error) { return StopObjectResponse(obj, FlagNone, Result{Code: 2, Reason: "busy"}, 10) }, MStopR, 10},
		{"cancel read request", func() (*Message, error) { return CancelReadRequest(FlagNone, 7) }, MCancelRead, 7},
		{"cancel read response", func() (*Message, error) { return CancelReadResponse(FlagNone, ok, 7) }, MCancelReadR, 7},
		{"keepalive request", func() (*Message, error) { return KeepaliveRequest(11) }, MKeepalive, 11},
		{"keepalive response", func() (*Message, error) { return KeepaliveResponse(ok, 11) }, MKeepaliveR, 11},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m, err := tc.build()
			require.NoError(t, err)
			a := assert.New(t)
			a.Equal(tc.opcode, m.Opcode)
			a.Equal(tc.id, m.InvokeID)
			a.Equal(tc.id != 0 && !tc.opcode.IsResponse(), m.ExpectsResponse())
		})
	}
}

func TestBuildersReject(t *testing.T) {
	a := assert.New(t)

	_, err := WriteObjectRequest(Object{Class: "c", Name: "n"}, FlagNone, 0, nil, 1)
	a.True(cdaperr.IsKind(err, cdaperr.KindObjectValueMissing), "%v", err)

	_, err = OpenConnectionRequest(Connection{}, 1)
	a.True(cdaperr.IsKind(err, cdaperr.KindInvalidMessage), "%v", err)

	_, err = ReadObjectResponse(Object{}, FlagNone, Result{}, 0)
	a.True(cdaperr.IsKind(err, cdaperr.KindInvalidMessage), "%v", err)

	_, err = CancelReadRequest(FlagNone, 0)
	a.True(cdaperr.IsKind(err, cdaperr.KindInvalidMessage), "%v", err)
}

func TestMessageCloneEqual(t *testing.T) {
	a := assert.New(t)
	m, err := WriteObjectRequest(Object{Class: "c", Name: "n", Value: BytesValue([]byte{1, 2})}, FlagNone, 1, []byte("x"), 3)
	a.NoError(err)
	c := m.Clone()
	a.True(m.Equal(c))
	c.Filter[0] = 'y'
	a.False(m.Equal(c))
	b, _ := c.ObjectValue.Bytes()
	b[0] = 9
	orig, _ := m.ObjectValue.Bytes()
	a.Equal(byte(1), orig[0])
	a.Equal("M_WRITE invoke-id:3 obj:c/n value:bytes:0102", m.String())
}
