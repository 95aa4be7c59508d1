// Package trace reads memory-access traces and reports what the simulated
// cache does with every entry.
package trace

import "fmt"

// Op is the operation code of a trace entry.
type Op byte

// The operations that can appear in a trace.
const (
	OpInstruction Op = 'I'
	OpLoad        Op = 'L'
	OpStore       Op = 'S'
	OpModify      Op = 'M'
)

// ParseOp converts an operation code into an Op.
func ParseOp(code string) (Op, bool) {
	if len(code) != 1 {
		return 0, false
	}

	op := Op(code[0])
	switch op {
	case OpInstruction, OpLoad, OpStore, OpModify:
		return op, true
	default:
		return 0, false
	}
}

// NumAccesses returns the number of data-cache accesses the operation makes.
// A modify is a load followed by a store to the same address.
func (o Op) NumAccesses() int {
	switch o {
	case OpLoad, OpStore:
		return 1
	case OpModify:
		return 2
	default:
		return 0
	}
}

func (o Op) String() string {
	return string(rune(o))
}

// An Entry is a single line of a trace.
type Entry struct {
	Op      Op
	Address uint64
	Size    int

	// Line is the 1-based line number in the trace.
	Line int
}

func (e Entry) String() string {
	return fmt.Sprintf("%c %x,%d", e.Op, e.Address, e.Size)
}
