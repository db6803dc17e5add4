/*
Package message defines the CDAP message (PDU) model.

A Message carries an Opcode, an invoke-id correlating requests with
their responses, flags, the target object's class, name and instance,
an ObjectValue and, on responses, a result code and reason. M_CONNECT
and M_CONNECT_R additionally carry the abstract syntax, version,
authentication policy and the naming of both endpoints.

ObjectValue is a tagged union decoded centrally by the codecs; callers
switch on its Kind rather than on dynamic types.

Validate enforces the per-opcode field legality rules. The builder
functions (OpenConnectionRequest, ReadObjectRequest and friends) return
validated messages and never touch session state: a request built with
an invoke-id of zero expects no response.
*/
package message
