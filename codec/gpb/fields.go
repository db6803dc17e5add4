package gpb

import "google.golang.org/protobuf/encoding/protowire"

// CDAPMessage field numbers
const (
	fieldAbstractSyntax protowire.Number = 1
	fieldOpCode         protowire.Number = 2
	fieldInvokeID       protowire.Number = 3
	fieldFlags          protowire.Number = 4
	fieldObjClass       protowire.Number = 5
	fieldObjName        protowire.Number = 6
	fieldObjInst        protowire.Number = 7
	fieldObjValue       protowire.Number = 8
	fieldResult         protowire.Number = 9
	fieldScope          protowire.Number = 10
	fieldFilter         protowire.Number = 11
	fieldAuthMech       protowire.Number = 17
	fieldAuthValue      protowire.Number = 18
	fieldDestAEInst     protowire.Number = 19
	fieldDestAEName     protowire.Number = 20
	fieldDestApInst     protowire.Number = 21
	fieldDestApName     protowire.Number = 22
	fieldSrcAEInst      protowire.Number = 23
	fieldSrcAEName      protowire.Number = 24
	fieldSrcApInst      protowire.Number = 25
	fieldSrcApName      protowire.Number = 26
	fieldResultReason   protowire.Number = 27
	fieldVersion        protowire.Number = 28
)

// objVal_t field numbers
const (
	valueInt32   protowire.Number = 1
	valueSInt32  protowire.Number = 2
	valueInt64   protowire.Number = 3
	valueSInt64  protowire.Number = 4
	valueString  protowire.Number = 5
	valueBytes   protowire.Number = 6
	valueFloat   protowire.Number = 7
	valueDouble  protowire.Number = 8
	valueBoolean protowire.Number = 9
)

// authValue_t field numbers
const (
	authName     protowire.Number = 1
	authPassword protowire.Number = 2
	authOther    protowire.Number = 3
)
