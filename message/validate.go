package message

import "github.com/andaru/cdap/cdaperr"

// Validate checks that m carries only the fields permitted for its
// opcode, and every field its opcode requires. It returns a
// *cdaperr.Error of kind KindInvalidMessage (or KindObjectValueMissing)
// describing the first problem found.
func (m *Message) Validate() error {
	for _, check := range []func(*Message) *cdaperr.Error{
		validateOpcode,
		validateInvokeID,
		validateConnectionFields,
		validateObjectFields,
		validateObjectValue,
		validateScopeAndFilter,
		validateResult,
		validateFlags,
	} {
		if err := check(m); err != nil {
			return err
		}
	}
	return nil
}

func invalid(m *Message, msg string) *cdaperr.Error {
	return cdaperr.InvalidMessage(cdaperr.WithOpcode(m.Opcode), cdaperr.WithInvokeID(m.InvokeID), cdaperr.WithMessage(msg))
}

func isConnectFamily(op Opcode) bool { return op == MConnect || op == MConnectR }

func validateOpcode(m *Message) *cdaperr.Error {
	if !m.Opcode.IsValid() {
		return invalid(m, "unknown opcode")
	}
	return nil
}

func validateInvokeID(m *Message) *cdaperr.Error {
	switch {
	case m.InvokeID < 0:
		return invalid(m, "invoke-id must not be negative")
	case m.InvokeID == 0 && m.Opcode.IsResponse():
		return invalid(m, "response must echo the request invoke-id")
	case m.InvokeID == 0 && m.Opcode == MCancelRead:
		return invalid(m, "cancel-read must carry the invoke-id of the read")
	}
	return nil
}

func validateConnectionFields(m *Message) *cdaperr.Error {
	if isConnectFamily(m.Opcode) {
		if m.Opcode == MConnect {
			if m.Source.ProcessName == "" {
				return invalid(m, "source application process name is required")
			}
			if m.Destination.ProcessName == "" {
				return invalid(m, "destination application process name is required")
			}
		}
		return nil
	}
	switch {
	case m.AbstractSyntax != 0:
		return invalid(m, "abstract syntax only permitted on connection messages")
	case !m.AuthPolicy.IsZero():
		return invalid(m, "authentication only permitted on connection messages")
	case !m.Source.IsZero(), !m.Destination.IsZero():
		return invalid(m, "endpoint naming only permitted on connection messages")
	case m.Version != 0:
		return invalid(m, "version only permitted on connection messages")
	}
	return nil
}

func validateObjectFields(m *Message) *cdaperr.Error {
	if !m.Opcode.IsObjectOperation() {
		if m.ObjectClass != "" || m.ObjectName != "" || m.ObjectInstance != 0 {
			return invalid(m, "object class, name and instance only permitted on object operations")
		}
		return nil
	}
	if (m.ObjectClass == "") != (m.ObjectName == "") {
		return invalid(m, "object class and object name must be set together")
	}
	return nil
}

func validateObjectValue(m *Message) *cdaperr.Error {
	switch m.Opcode {
	case MWrite:
		if m.ObjectValue.IsZero() {
			return cdaperr.ObjectValueMissing(cdaperr.WithOpcode(m.Opcode), cdaperr.WithInvokeID(m.InvokeID),
				cdaperr.WithMessage("object value is required"))
		}
	case MConnect, MConnectR, MRelease, MReleaseR, MCancelRead, MCancelReadR, MDelete, MRead:
		if !m.ObjectValue.IsZero() {
			return invalid(m, "object value not permitted")
		}
	}
	return nil
}

func validateScopeAndFilter(m *Message) *cdaperr.Error {
	if m.Opcode.IsObjectOperation() && !m.Opcode.IsResponse() {
		return nil
	}
	if m.Scope != 0 {
		return invalid(m, "scope only permitted on object operation requests")
	}
	if len(m.Filter) > 0 {
		return invalid(m, "filter only permitted on object operation requests")
	}
	return nil
}

func validateResult(m *Message) *cdaperr.Error {
	if !m.Opcode.IsResponse() && (m.Result != 0 || m.ResultReason != "") {
		return invalid(m, "result only permitted on responses")
	}
	return nil
}

func validateFlags(m *Message) *cdaperr.Error {
	switch m.Flags {
	case FlagNone, FlagSync:
		return nil
	case FlagReadIncomplete:
		if m.Opcode != MReadR {
			return invalid(m, "read-incomplete flag only permitted on M_READ_R")
		}
		return nil
	}
	return invalid(m, "unknown flags value")
}
