package session

import "github.com/andaru/cdap/message"

// Codec converts between messages and their wire representation.
//
// Encode fails with a cdaperr.KindEncoding error on malformed or
// unsupported message content, Decode with a cdaperr.KindDecoding
// error on truncated or corrupt input. Implementations must be safe
// for concurrent use.
type Codec interface {
	Encode(*message.Message) ([]byte, error)
	Decode([]byte) (*message.Message, error)
}
