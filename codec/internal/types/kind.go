package types

// Kind is a column type of an MBE table.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindIntID
	KindString
	KindStringID
)

// File-format codes as stored in the EXPA header.
const (
	CodeInt      uint32 = 0x2
	CodeString   uint32 = 0x7
	CodeStringID uint32 = 0x8
	CodeIntID    uint32 = 0x9
)

var kindNames = [...]string{
	KindInvalid:  "Invalid",
	KindInt:      "Int",
	KindIntID:    "IntID",
	KindString:   "String",
	KindStringID: "StringID",
}

var kindCodes = [...]uint32{
	KindInt:      CodeInt,
	KindIntID:    CodeIntID,
	KindString:   CodeString,
	KindStringID: CodeStringID,
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindInvalid]
}

// Code returns the header code, or 0 for KindInvalid.
func (k Kind) Code() uint32 {
	if k == KindInvalid || int(k) >= len(kindCodes) {
		return 0
	}
	return kindCodes[k]
}

func (k Kind) Valid() bool {
	return k >= KindInt && k <= KindStringID
}

// IsInt reports whether cells are stored inline as int32.
func (k Kind) IsInt() bool {
	return k == KindInt || k == KindIntID
}

// IsString reports whether cells are 8-byte slots resolved through CHNK.
func (k Kind) IsString() bool {
	return k == KindString || k == KindStringID
}

// Size is the inline storage size in a row.
func (k Kind) Size() uint32 {
	if k.IsString() {
		return 8
	}
	return 4
}

// Align equals Size for every column type.
func (k Kind) Align() uint32 {
	return k.Size()
}

// FromCode maps a header code to a Kind. Unknown codes yield KindInvalid, false.
func FromCode(code uint32) (Kind, bool) {
	switch code {
	case CodeInt:
		return KindInt, true
	case CodeIntID:
		return KindIntID, true
	case CodeString:
		return KindString, true
	case CodeStringID:
		return KindStringID, true
	}
	return KindInvalid, false
}

// FromName maps a header type name ("Int", "StringID", ...) to a Kind.
func FromName(name string) (Kind, bool) {
	for k := KindInt; k <= KindStringID; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return KindInvalid, false
}
