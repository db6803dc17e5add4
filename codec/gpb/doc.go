/*
Package gpb implements the CDAP protocol buffers wire codec.

Messages are encoded according to the CDAP.proto schema (message
CDAPMessage, with the nested objVal_t and authValue_t messages)
directly with the protowire package, without generated code. Unknown
fields are skipped when decoding.
*/
package gpb
