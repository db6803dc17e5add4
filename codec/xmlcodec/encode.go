package xmlcodec

import (
	"bytes"
	"encoding/hex"
	"encoding/xml"
	"io"
	"strconv"

	"github.com/andaru/cdap/cdaperr"
	"github.com/andaru/cdap/message"
)

// Codec is the CDAP XML codec
type Codec struct {
	// Indent, if set, is the per-level indent of encoded output
	Indent string
}

// Encode returns the XML encoding of m. m must be valid.
func (c Codec) Encode(m *message.Message) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, cdaperr.Encoding(cdaperr.WithOpcode(m.Opcode), cdaperr.WithInvokeID(m.InvokeID), cdaperr.WithCause(err))
	}
	var buf bytes.Buffer
	if err := c.Write(&buf, m); err != nil {
		return nil, cdaperr.Encoding(cdaperr.WithOpcode(m.Opcode), cdaperr.WithInvokeID(m.InvokeID), cdaperr.WithCause(err))
	}
	return buf.Bytes(), nil
}

// Write writes the XML encoding of m to w without validating it
func (c Codec) Write(w io.Writer, m *message.Message) error {
	xe := xml.NewEncoder(w)
	if c.Indent != "" {
		xe.Indent("", c.Indent)
	}
	e := &encoder{xe: xe}

	start := xml.StartElement{Name: xn("cdap-message"), Attr: []xml.Attr{attr("opcode", m.Opcode.String())}}
	if m.InvokeID != 0 {
		start.Attr = append(start.Attr, attr("invoke-id", strconv.FormatInt(int64(m.InvokeID), 10)))
	}
	if m.Flags != message.FlagNone {
		start.Attr = append(start.Attr, attr("flags", m.Flags.String()))
	}
	e.token(start)
	e.object(m)
	if m.Opcode.IsResponse() {
		e.token(xml.StartElement{Name: xn("result"), Attr: []xml.Attr{attr("code", strconv.FormatInt(int64(m.Result), 10))}})
		e.text(m.ResultReason)
		e.token(xml.EndElement{Name: xn("result")})
	}
	e.connection(m)
	e.token(start.End())
	if e.err == nil {
		e.err = xe.Flush()
	}
	return e.err
}

// encoder writes tokens until the first error
type encoder struct {
	xe  *xml.Encoder
	err error
}

func (e *encoder) token(t xml.Token) {
	if e.err == nil {
		e.err = e.xe.EncodeToken(t)
	}
}

func (e *encoder) text(s string) {
	if s != "" {
		e.token(xml.CharData(s))
	}
}

func (e *encoder) element(name string, attrs []xml.Attr, text string) {
	e.token(xml.StartElement{Name: xn(name), Attr: attrs})
	e.text(text)
	e.token(xml.EndElement{Name: xn(name)})
}

func (e *encoder) object(m *message.Message) {
	if m.ObjectClass == "" && m.ObjectName == "" && m.ObjectInstance == 0 && m.Scope == 0 &&
		m.ObjectValue.IsZero() && len(m.Filter) == 0 {
		return
	}
	var attrs []xml.Attr
	attrs = appendAttr(attrs, "class", m.ObjectClass)
	attrs = appendAttr(attrs, "name", m.ObjectName)
	if m.ObjectInstance != 0 {
		attrs = append(attrs, attr("instance", strconv.FormatInt(m.ObjectInstance, 10)))
	}
	if m.Scope != 0 {
		attrs = append(attrs, attr("scope", strconv.FormatInt(int64(m.Scope), 10)))
	}
	start := xml.StartElement{Name: xn("object"), Attr: attrs}
	e.token(start)
	if !m.ObjectValue.IsZero() {
		e.element("value", []xml.Attr{attr("kind", m.ObjectValue.Kind().String())}, m.ObjectValue.Text())
	}
	if len(m.Filter) > 0 {
		e.element("filter", nil, hex.EncodeToString(m.Filter))
	}
	e.token(start.End())
}

func (e *encoder) connection(m *message.Message) {
	if m.AbstractSyntax == 0 && m.Version == 0 && m.AuthPolicy.IsZero() && m.Source.IsZero() && m.Destination.IsZero() {
		return
	}
	var attrs []xml.Attr
	if m.AbstractSyntax != 0 {
		attrs = append(attrs, attr("abstract-syntax", strconv.FormatInt(int64(m.AbstractSyntax), 10)))
	}
	if m.Version != 0 {
		attrs = append(attrs, attr("version", strconv.FormatInt(m.Version, 10)))
	}
	start := xml.StartElement{Name: xn("connection"), Attr: attrs}
	e.token(start)
	if a := m.AuthPolicy; !a.IsZero() {
		attrs := []xml.Attr{attr("mechanism", a.Mechanism.String())}
		attrs = appendAttr(attrs, "name", a.Name)
		attrs = appendAttr(attrs, "password", a.Password)
		attrs = appendAttr(attrs, "other", hex.EncodeToString(a.Other))
		e.element("auth", attrs, "")
	}
	e.naming("source", m.Source)
	e.naming("destination", m.Destination)
	e.token(start.End())
}

func (e *encoder) naming(name string, n message.Naming) {
	if n.IsZero() {
		return
	}
	var attrs []xml.Attr
	attrs = appendAttr(attrs, "process-name", n.ProcessName)
	attrs = appendAttr(attrs, "process-instance", n.ProcessInstance)
	attrs = appendAttr(attrs, "entity-name", n.EntityName)
	attrs = appendAttr(attrs, "entity-instance", n.EntityInstance)
	e.element(name, attrs, "")
}

func xn(local string) xml.Name { return xml.Name{Local: local} }

func attr(name, value string) xml.Attr { return xml.Attr{Name: xn(name), Value: value} }

func appendAttr(attrs []xml.Attr, name, value string) []xml.Attr {
	if value == "" {
		return attrs
	}
	return append(attrs, attr(name, value))
}
