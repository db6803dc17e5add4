package xmlcodec

import (
	"testing"

	"github.com/andaru/cdap/cdaperr"
	"github.com/andaru/cdap/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	for _, tc := range []struct {
		name  string
		codec Codec
		m     *message.Message
		want  string
	}{
		{
			name: "read response",
			m: &message.Message{Opcode: message.MReadR, InvokeID: 7, Flags: message.FlagReadIncomplete,
				ObjectClass: "flow", ObjectName: "/dif/flows", ObjectInstance: 3, ObjectValue: message.StringValue("qos-cube-1")},
			want: `<cdap-message opcode="M_READ_R" invoke-id="7" flags="F_RD_INCOMPLETE">` +
				`<object class="flow" name="/dif/flows" instance="3"><value kind="string">qos-cube-1</value></object>` +
				`<result code="0"></result></cdap-message>`,
		},
		{
			name: "release without response",
			m:    &message.Message{Opcode: message.MRelease},
			want: `<cdap-message opcode="M_RELEASE"></cdap-message>`,
		},
		{
			name: "connect",
			m: &message.Message{
				Opcode:         message.MConnect,
				InvokeID:       1,
				AbstractSyntax: 115,
				AuthPolicy:     message.AuthPolicy{Mechanism: message.AuthPassword, Name: "admin", Other: []byte{0xab}},
				Source:         message.Naming{ProcessName: "a", ProcessInstance: "1"},
				Destination:    message.Naming{ProcessName: "b"},
			},
			want: `<cdap-message opcode="M_CONNECT" invoke-id="1"><connection abstract-syntax="115">` +
				`<auth mechanism="AUTH_PASSWD" name="admin" other="ab"></auth>` +
				`<source process-name="a" process-instance="1"></source>` +
				`<destination process-name="b"></destination></connection></cdap-message>`,
		},
		{
			name:  "indented",
			codec: Codec{Indent: " "},
			m:     &message.Message{Opcode: message.MDelete, InvokeID: 2, ObjectClass: "c", ObjectName: "n", Filter: []byte("x")},
			want: "<cdap-message opcode=\"M_DELETE\" invoke-id=\"2\">\n" +
				" <object class=\"c\" name=\"n\">\n" +
				"  <filter>78</filter>\n" +
				" </object>\n" +
				"</cdap-message>",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a := assert.New(t)
			b, err := tc.codec.Encode(tc.m)
			require.NoError(t, err)
			a.Equal(tc.want, string(b))

			got, err := tc.codec.Decode(b)
			require.NoError(t, err)
			a.True(tc.m.Equal(got), "got %v", got)
		})
	}
}

func TestEncodeInvalid(t *testing.T) {
	_, err := Codec{}.Encode(&message.Message{Opcode: message.MCreateR})
	assert.True(t, cdaperr.IsKind(err, cdaperr.KindEncoding), "%v", err)
}

func TestDecodeErrors(t *testing.T) {
	for _, tc := range []struct {
		input   string
		wantErr string
	}{
		{input: `<cdap-message`, wantErr: "cdap decoding error"},
		{input: `<hello/>`, wantErr: "cdap decoding error missing <cdap-message> element"},
		{input: `<cdap-message opcode="M_FOO"/>`, wantErr: `cdap decoding error unknown opcode "M_FOO"`},
		{input: `<cdap-message opcode="M_READ" invoke-id="x"/>`, wantErr: `cdap decoding error: M_READ: attribute invoke-id`},
		{input: `<cdap-message opcode="M_READ" flags="F_BOGUS"/>`, wantErr: `cdap decoding error: M_READ: unknown flags "F_BOGUS"`},
		{input: `<cdap-message opcode="M_WRITE"><object><value kind="int32">1.5</value></object></cdap-message>`, wantErr: `cdap decoding error: M_WRITE: value`},
		{input: `<cdap-message opcode="M_WRITE"><object><value kind="blob">1</value></object></cdap-message>`, wantErr: `cdap decoding error: M_WRITE: unknown value kind "blob"`},
		{input: `<cdap-message opcode="M_READ"><object><filter>zz</filter></object></cdap-message>`, wantErr: `cdap decoding error: M_READ: filter`},
		{input: `<cdap-message opcode="M_CONNECT"><connection><auth mechanism="KERBEROS"/></connection></cdap-message>`, wantErr: `cdap decoding error: M_CONNECT: unknown auth mechanism "KERBEROS"`},
	} {
		t.Run(tc.input, func(t *testing.T) {
			a := assert.New(t)
			m, err := Codec{}.Decode([]byte(tc.input))
			a.Nil(m)
			if a.Error(err) {
				a.Contains(err.Error(), tc.wantErr)
				a.True(cdaperr.IsKind(err, cdaperr.KindDecoding))
			}
		})
	}
}

func TestDecodeWhitespace(t *testing.T) {
	a := assert.New(t)
	m, err := Codec{}.Decode([]byte(`
<cdap-message opcode="M_WRITE" invoke-id="4">
  <object class="c" name="n">
    <value kind="bytes">0102</value>
  </object>
</cdap-message>`))
	require.NoError(t, err)
	a.Equal(message.MWrite, m.Opcode)
	a.Equal(int32(4), m.InvokeID)
	a.True(message.BytesValue([]byte{1, 2}).Equal(m.ObjectValue))
	a.NoError(m.Validate())
}
