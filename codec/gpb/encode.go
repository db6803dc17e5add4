package gpb

import (
	"math"

	"github.com/andaru/cdap/cdaperr"
	"github.com/andaru/cdap/message"
	"google.golang.org/protobuf/encoding/protowire"
)

// Codec is the CDAP protocol buffers codec. The zero value is ready
// for use.
type Codec struct{}

// Encode returns the protocol buffers encoding of m. m must be valid.
func (Codec) Encode(m *message.Message) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, cdaperr.Encoding(cdaperr.WithOpcode(m.Opcode), cdaperr.WithInvokeID(m.InvokeID), cdaperr.WithCause(err))
	}
	return Append(nil, m), nil
}

// Append appends the encoding of m to b. Unlike Encode, m is not
// validated.
func Append(b []byte, m *message.Message) []byte {
	b = appendInt(b, fieldAbstractSyntax, int64(m.AbstractSyntax))
	b = protowire.AppendTag(b, fieldOpCode, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Opcode))
	b = appendInt(b, fieldInvokeID, int64(m.InvokeID))
	b = appendInt(b, fieldFlags, int64(m.Flags))
	b = appendString(b, fieldObjClass, m.ObjectClass)
	b = appendString(b, fieldObjName, m.ObjectName)
	b = appendInt(b, fieldObjInst, m.ObjectInstance)
	if !m.ObjectValue.IsZero() {
		b = protowire.AppendTag(b, fieldObjValue, protowire.BytesType)
		b = protowire.AppendBytes(b, appendValue(nil, m.ObjectValue))
	}
	b = appendInt(b, fieldResult, int64(m.Result))
	b = appendInt(b, fieldScope, int64(m.Scope))
	if len(m.Filter) > 0 {
		b = protowire.AppendTag(b, fieldFilter, protowire.BytesType)
		b = protowire.AppendBytes(b, m.Filter)
	}
	b = appendInt(b, fieldAuthMech, int64(m.AuthPolicy.Mechanism))
	if a := m.AuthPolicy; a.Name != "" || a.Password != "" || len(a.Other) > 0 {
		var v []byte
		v = appendString(v, authName, a.Name)
		v = appendString(v, authPassword, a.Password)
		if len(a.Other) > 0 {
			v = protowire.AppendTag(v, authOther, protowire.BytesType)
			v = protowire.AppendBytes(v, a.Other)
		}
		b = protowire.AppendTag(b, fieldAuthValue, protowire.BytesType)
		b = protowire.AppendBytes(b, v)
	}
	b = appendString(b, fieldDestAEInst, m.Destination.EntityInstance)
	b = appendString(b, fieldDestAEName, m.Destination.EntityName)
	b = appendString(b, fieldDestApInst, m.Destination.ProcessInstance)
	b = appendString(b, fieldDestApName, m.Destination.ProcessName)
	b = appendString(b, fieldSrcAEInst, m.Source.EntityInstance)
	b = appendString(b, fieldSrcAEName, m.Source.EntityName)
	b = appendString(b, fieldSrcApInst, m.Source.ProcessInstance)
	b = appendString(b, fieldSrcApName, m.Source.ProcessName)
	b = appendString(b, fieldResultReason, m.ResultReason)
	b = appendInt(b, fieldVersion, m.Version)
	return b
}

// appendInt appends a non-zero int32, int64 or enum field. Negative
// values are sign extended to ten bytes, as protocol buffers requires.
func appendInt(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

// appendValue appends the objVal_t encoding of v. The populated member
// is always written, so zero values keep their kind.
func appendValue(b []byte, v message.ObjectValue) []byte {
	switch v.Kind() {
	case message.ValueInt32:
		i, _ := v.Int32()
		b = protowire.AppendTag(b, valueInt32, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(int64(i)))
	case message.ValueSInt32:
		i, _ := v.Int32()
		b = protowire.AppendTag(b, valueSInt32, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(i)))
	case message.ValueInt64:
		i, _ := v.Int64()
		b = protowire.AppendTag(b, valueInt64, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(i))
	case message.ValueSInt64:
		i, _ := v.Int64()
		b = protowire.AppendTag(b, valueSInt64, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(i))
	case message.ValueString:
		s, _ := v.Str()
		b = protowire.AppendTag(b, valueString, protowire.BytesType)
		b = protowire.AppendString(b, s)
	case message.ValueBytes:
		p, _ := v.Bytes()
		b = protowire.AppendTag(b, valueBytes, protowire.BytesType)
		b = protowire.AppendBytes(b, p)
	case message.ValueFloat:
		f, _ := v.Float()
		b = protowire.AppendTag(b, valueFloat, protowire.Fixed32Type)
		b = protowire.AppendFixed32(b, math.Float32bits(f))
	case message.ValueDouble:
		f, _ := v.Double()
		b = protowire.AppendTag(b, valueDouble, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, math.Float64bits(f))
	case message.ValueBool:
		t, _ := v.Bool()
		b = protowire.AppendTag(b, valueBoolean, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(t))
	}
	return b
}
