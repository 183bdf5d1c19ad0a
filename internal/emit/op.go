package emit

import (
	"strings"

	"fastreflect/primitive"
)

//go:generate go tool stringer -type=OpEnum -output=op_string.go

type OpEnum int

const (
	_ OpEnum = iota // skip zero value, use it as a default (invalid) value for OpEnum

	OpLoadReceiver  // push the receiver argument
	OpCheckReceiver // pop the receiver, push it checked against the owner type
	OpGetField      // pop a checked receiver, push the field value
	OpGetStatic     // push the variable value
	OpConvert       // pop From, push To (numeric conversion)
	OpBox           // pop primitive From, push object
	OpLoadValue     // push the value argument of a setter
	OpUnbox         // pop object, push primitive To
	OpCheckCast     // pop object, push object assignable to the field type
	OpPutField      // pop value and checked receiver, store into the field
	OpPutStatic     // pop value, store into the variable
	OpReturn        // return the top of stack (getter) or nothing (setter)
	OpThrow         // fail with ErrIllegalArgument

	// OpTotal is a constant that represents the total number of opcodes defined
	OpTotal = int(iota)
)

// Mnemonic is the lower case opcode name used in listings.
func (o OpEnum) Mnemonic() string {
	return strings.ToLower(strings.TrimPrefix(o.String(), "Op"))
}

// Instr is a single instruction. From and To are only meaningful for
// OpConvert (both), OpBox (From) and OpUnbox (To).
type Instr struct {
	Op   OpEnum
	From primitive.SortEnum
	To   primitive.SortEnum
}

func (in Instr) String() string {
	switch in.Op {
	case OpConvert:
		return in.Op.Mnemonic() + " " + in.From.GoType() + " -> " + in.To.GoType()
	case OpBox:
		return in.Op.Mnemonic() + " " + in.From.GoType()
	case OpUnbox:
		return in.Op.Mnemonic() + " " + in.To.GoType()
	default:
		return in.Op.Mnemonic()
	}
}

// MethodKind tells getters from setters.
type MethodKind int

const (
	KindGetter MethodKind = iota + 1
	KindSetter
)

func (k MethodKind) String() string {
	switch k {
	case KindGetter:
		return "getter"
	case KindSetter:
		return "setter"
	default:
		return "unknown"
	}
}

// EntryName returns the accessor entry point name for kind and access, e.g.
// Get, GetInt8, Set, SetChar.
func EntryName(kind MethodKind, access primitive.SortEnum) string {
	prefix := "Get"
	if kind == KindSetter {
		prefix = "Set"
	}

	switch access {
	case primitive.SortObject:
		return prefix
	case primitive.SortChar:
		return prefix + "Char"
	default:
		goType := access.GoType()
		return prefix + strings.ToUpper(goType[:1]) + goType[1:]
	}
}
