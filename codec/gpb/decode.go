package gpb

import (
	"math"

	"github.com/andaru/cdap/cdaperr"
	"github.com/andaru/cdap/message"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// Decode parses the CDAPMessage encoded in b. It fails with a
// cdaperr.KindDecoding error if b is truncated or malformed, lacks an
// opcode, or carries an unknown opcode. The message is not validated.
func (Codec) Decode(b []byte) (*message.Message, error) {
	m := &message.Message{}
	haveOpcode := false
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, v uint64, p []byte) error {
		switch {
		case typ == protowire.VarintType:
			switch num {
			case fieldAbstractSyntax:
				m.AbstractSyntax = int32(v)
			case fieldOpCode:
				m.Opcode, haveOpcode = message.Opcode(int32(v)), true
				if !m.Opcode.IsValid() {
					return errors.Errorf("unknown opcode %d", int64(v))
				}
			case fieldInvokeID:
				m.InvokeID = int32(v)
			case fieldFlags:
				m.Flags = message.Flags(int32(v))
			case fieldObjInst:
				m.ObjectInstance = int64(v)
			case fieldResult:
				m.Result = int32(v)
			case fieldScope:
				m.Scope = int32(v)
			case fieldAuthMech:
				m.AuthPolicy.Mechanism = message.AuthMechanism(int32(v))
			case fieldVersion:
				m.Version = int64(v)
			}
		case typ == protowire.BytesType:
			switch num {
			case fieldObjClass:
				m.ObjectClass = string(p)
			case fieldObjName:
				m.ObjectName = string(p)
			case fieldObjValue:
				ov, err := decodeValue(p)
				if err != nil {
					return errors.Wrap(err, "objValue")
				}
				m.ObjectValue = ov
			case fieldFilter:
				m.Filter = append([]byte(nil), p...)
			case fieldAuthValue:
				if err := decodeAuth(p, &m.AuthPolicy); err != nil {
					return errors.Wrap(err, "authValue")
				}
			case fieldDestAEInst:
				m.Destination.EntityInstance = string(p)
			case fieldDestAEName:
				m.Destination.EntityName = string(p)
			case fieldDestApInst:
				m.Destination.ProcessInstance = string(p)
			case fieldDestApName:
				m.Destination.ProcessName = string(p)
			case fieldSrcAEInst:
				m.Source.EntityInstance = string(p)
			case fieldSrcAEName:
				m.Source.EntityName = string(p)
			case fieldSrcApInst:
				m.Source.ProcessInstance = string(p)
			case fieldSrcApName:
				m.Source.ProcessName = string(p)
			case fieldResultReason:
				m.ResultReason = string(p)
			}
		}
		return nil
	})
	if err == nil && !haveOpcode {
		err = errors.New("missing opCode")
	}
	if err != nil {
		return nil, cdaperr.Decoding(cdaperr.WithCause(err))
	}
	return m, nil
}

func decodeValue(b []byte) (message.ObjectValue, error) {
	var v message.ObjectValue
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, x uint64, p []byte) error {
		switch {
		case num == valueInt32 && typ == protowire.VarintType:
			v = message.Int32Value(int32(x))
		case num == valueSInt32 && typ == protowire.VarintType:
			v = message.SInt32Value(int32(protowire.DecodeZigZag(x & math.MaxUint32)))
		case num == valueInt64 && typ == protowire.VarintType:
			v = message.Int64Value(int64(x))
		case num == valueSInt64 && typ == protowire.VarintType:
			v = message.SInt64Value(protowire.DecodeZigZag(x))
		case num == valueString && typ == protowire.BytesType:
			v = message.StringValue(string(p))
		case num == valueBytes && typ == protowire.BytesType:
			v = message.BytesValue(append([]byte{}, p...))
		case num == valueFloat && typ == protowire.Fixed32Type:
			v = message.FloatValue(math.Float32frombits(uint32(x)))
		case num == valueDouble && typ == protowire.Fixed64Type:
			v = message.DoubleValue(math.Float64frombits(x))
		case num == valueBoolean && typ == protowire.VarintType:
			v = message.BoolValue(protowire.DecodeBool(x))
		}
		return nil
	})
	return v, err
}

func decodeAuth(b []byte, a *message.AuthPolicy) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, _ uint64, p []byte) error {
		if typ != protowire.BytesType {
			return nil
		}
		switch num {
		case authName:
			a.Name = string(p)
		case authPassword:
			a.Password = string(p)
		case authOther:
			a.Other = append([]byte(nil), p...)
		}
		return nil
	})
}

// consumeFields calls fn for each field in b. Scalar fields are passed
// in v, length-delimited fields in p; groups are skipped.
func consumeFields(b []byte, fn func(num protowire.Number, typ protowire.Type, v uint64, p []byte) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		var (
			v uint64
			p []byte
		)
		switch typ {
		case protowire.VarintType:
			v, n = protowire.ConsumeVarint(b)
		case protowire.Fixed32Type:
			var x uint32
			x, n = protowire.ConsumeFixed32(b)
			v = uint64(x)
		case protowire.Fixed64Type:
			v, n = protowire.ConsumeFixed64(b)
		case protowire.BytesType:
			p, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return errors.Wrapf(protowire.ParseError(n), "field %d", num)
		}
		b = b[n:]
		if typ == protowire.StartGroupType {
			continue
		}
		if err := fn(num, typ, v, p); err != nil {
			return err
		}
	}
	return nil
}
