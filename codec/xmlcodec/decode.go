package xmlcodec

import (
	"bytes"
	"encoding/hex"
	"strconv"

	"github.com/andaru/cdap/cdaperr"
	"github.com/andaru/cdap/message"
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/pkg/errors"
)

var (
	xpMessage     = xpath.MustCompile(`/cdap-message`)
	xpObject      = xpath.MustCompile(`/cdap-message/object`)
	xpValue       = xpath.MustCompile(`/cdap-message/object/value`)
	xpFilter      = xpath.MustCompile(`/cdap-message/object/filter`)
	xpResult      = xpath.MustCompile(`/cdap-message/result`)
	xpConnection  = xpath.MustCompile(`/cdap-message/connection`)
	xpAuth        = xpath.MustCompile(`/cdap-message/connection/auth`)
	xpSource      = xpath.MustCompile(`/cdap-message/connection/source`)
	xpDestination = xpath.MustCompile(`/cdap-message/connection/destination`)
)

// Decode parses the XML encoded message in b. The message is not
// validated.
func (Codec) Decode(b []byte) (*message.Message, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(b))
	if err != nil {
		return nil, cdaperr.Decoding(cdaperr.WithCause(err))
	}
	root := xmlquery.QuerySelector(doc, xpMessage)
	if root == nil {
		return nil, cdaperr.Decoding(cdaperr.WithMessage("missing <cdap-message> element"))
	}
	m := &message.Message{}
	d := &decoder{}
	op, ok := message.ParseOpcode(root.SelectAttr("opcode"))
	if !ok {
		return nil, cdaperr.Decoding(cdaperr.WithMessagef("unknown opcode %q", root.SelectAttr("opcode")))
	}
	m.Opcode = op
	m.InvokeID = int32(d.int(root, "invoke-id", 32))
	if s := root.SelectAttr("flags"); s != "" {
		if m.Flags, ok = message.ParseFlags(s); !ok {
			d.fail(errors.Errorf("unknown flags %q", s))
		}
	}

	if obj := xmlquery.QuerySelector(doc, xpObject); obj != nil {
		m.ObjectClass = obj.SelectAttr("class")
		m.ObjectName = obj.SelectAttr("name")
		m.ObjectInstance = d.int(obj, "instance", 64)
		m.Scope = int32(d.int(obj, "scope", 32))
	}
	if v := xmlquery.QuerySelector(doc, xpValue); v != nil {
		kind, ok := message.ParseValueKind(v.SelectAttr("kind"))
		if !ok {
			d.fail(errors.Errorf("unknown value kind %q", v.SelectAttr("kind")))
		} else if ov, err := message.ParseValue(kind, v.InnerText()); err != nil {
			d.fail(errors.Wrap(err, "value"))
		} else {
			m.ObjectValue = ov
		}
	}
	if f := xmlquery.QuerySelector(doc, xpFilter); f != nil {
		m.Filter = d.hex(f.InnerText(), "filter")
	}
	if r := xmlquery.QuerySelector(doc, xpResult); r != nil {
		m.Result = int32(d.int(r, "code", 32))
		m.ResultReason = r.InnerText()
	}

	if c := xmlquery.QuerySelector(doc, xpConnection); c != nil {
		m.AbstractSyntax = int32(d.int(c, "abstract-syntax", 32))
		m.Version = d.int(c, "version", 64)
	}
	if a := xmlquery.QuerySelector(doc, xpAuth); a != nil {
		mech, ok := message.ParseAuthMechanism(a.SelectAttr("mechanism"))
		if !ok {
			d.fail(errors.Errorf("unknown auth mechanism %q", a.SelectAttr("mechanism")))
		}
		m.AuthPolicy = message.AuthPolicy{
			Mechanism: mech,
			Name:      a.SelectAttr("name"),
			Password:  a.SelectAttr("password"),
			Other:     d.hex(a.SelectAttr("other"), "auth other"),
		}
	}
	m.Source = naming(xmlquery.QuerySelector(doc, xpSource))
	m.Destination = naming(xmlquery.QuerySelector(doc, xpDestination))

	if d.err != nil {
		return nil, cdaperr.Decoding(cdaperr.WithOpcode(m.Opcode), cdaperr.WithCause(d.err))
	}
	return m, nil
}

func naming(n *xmlquery.Node) message.Naming {
	if n == nil {
		return message.Naming{}
	}
	return message.Naming{
		ProcessName:     n.SelectAttr("process-name"),
		ProcessInstance: n.SelectAttr("process-instance"),
		EntityName:      n.SelectAttr("entity-name"),
		EntityInstance:  n.SelectAttr("entity-instance"),
	}
}

// decoder records the first attribute parsing error
type decoder struct{ err error }

func (d *decoder) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

func (d *decoder) int(n *xmlquery.Node, name string, bits int) int64 {
	s := n.SelectAttr(name)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, bits)
	if err != nil {
		d.fail(errors.Wrapf(err, "attribute %s", name))
	}
	return v
}

func (d *decoder) hex(s, what string) []byte {
	if s == "" {
		return nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		d.fail(errors.Wrap(err, what))
	}
	return b
}
