package assembler

import "github.com/raymyers/tritc/pkg/vasm"

// Instruction word layout: [4 op][5 arg1][6 arg2], 15 trits in all.
const (
	OpTrits   = 4
	Arg1Trits = 5
	Arg2Trits = 6
	InstTrits = OpTrits + Arg1Trits + Arg2Trits
)

// slot says what an operand position accepts and where it is encoded
type slot int

const (
	slotReg1   slot = iota // register in arg1
	slotReg2               // register in arg2
	slotImm2               // immediate in arg2
	slotTarget             // instruction index or label in arg2
)

// opInfo describes one opcode
type opInfo struct {
	code  int
	slots []slot
}

var (
	regReg = []slot{slotReg1, slotReg2}
	regImm = []slot{slotReg1, slotImm2}
	target = []slot{slotTarget}
)

// opcodes maps mnemonics to numeric opcodes. 0-20 are the machine's base
// opcode map; 21 onwards cover the remaining instructions the translator
// emits.
var opcodes = map[vasm.Opcode]opInfo{
	vasm.SLP:  {0, nil},
	vasm.HALT: {0, nil},
	vasm.ADD:  {1, regReg},
	vasm.SUB:  {2, regReg},
	vasm.MUL:  {3, regReg},
	vasm.DIV:  {4, regReg},
	vasm.MIN:  {5, regReg},
	vasm.MAX:  {6, regReg},
	vasm.TRI:  {7, regReg},
	vasm.JMP:  {8, target},
	vasm.BRZ:  {9, target},
	vasm.BRP:  {10, target},
	vasm.BRN:  {11, target},
	vasm.TSL:  {12, regImm},
	vasm.TSR:  {13, regImm},
	vasm.WAK:  {14, regImm},
	vasm.LOD:  {15, regReg},
	vasm.STR:  {16, regReg},
	vasm.CPY:  {17, regReg},
	vasm.RECT: {20, nil},
	vasm.SET:  {21, regImm},
	vasm.CAL:  {22, target},
	vasm.RET:  {23, nil},
	vasm.CLS:  {24, nil},
	vasm.KEY:  {25, regImm},
}

// Numeric opcodes, for the emulator's decoder
const (
	OpSLP  = 0
	OpADD  = 1
	OpSUB  = 2
	OpMUL  = 3
	OpDIV  = 4
	OpMIN  = 5
	OpMAX  = 6
	OpTRI  = 7
	OpJMP  = 8
	OpBRZ  = 9
	OpBRP  = 10
	OpBRN  = 11
	OpTSL  = 12
	OpTSR  = 13
	OpWAK  = 14
	OpLOD  = 15
	OpSTR  = 16
	OpCPY  = 17
	OpRECT = 20
	OpSET  = 21
	OpCAL  = 22
	OpRET  = 23
	OpCLS  = 24
	OpKEY  = 25
)

// Mnemonic returns the canonical mnemonic for a numeric opcode.
func Mnemonic(code int) (vasm.Opcode, bool) {
	for op, info := range opcodes {
		if info.code == code && op != vasm.HALT {
			return op, true
		}
	}
	return "", false
}
