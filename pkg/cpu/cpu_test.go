package cpu_test

import (
	"bytes"
	"strings"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/raymyers/tritc/pkg/assembler"
	"github.com/raymyers/tritc/pkg/cpu"
	"github.com/raymyers/tritc/pkg/machine"
	"github.com/raymyers/tritc/pkg/translate"
	"github.com/raymyers/tritc/pkg/trit"
)

func assemble(src string) *assembler.Program {
	prog, err := assembler.New(machine.DefaultLayout).Assemble(strings.NewReader(src))
	Expect(err).NotTo(HaveOccurred())
	return prog
}

var _ = Describe("CPU", func() {
	var (
		mockCtrl *gomock.Controller
		input    *MockInput
		c        *cpu.CPU
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		input = NewMockInput(mockCtrl)
		c = cpu.New(machine.DefaultLayout, cpu.Options{Input: input})
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	load := func(src string) {
		Expect(c.Load(assemble(src))).To(Succeed())
	}

	run := func(src string) {
		load(src)
		_, err := c.Run(1000)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Halted()).To(BeTrue())
	}

	It("should refuse to step without a program", func() {
		Expect(c.Step()).To(MatchError(cpu.ErrNotLoaded))
	})

	Context("Arithmetic Instructions", func() {
		It("should add and subtract registers", func() {
			run("SET 7 5\nSET 8 -3\nCPY 9 7\nADD 9 8\nSUB 7 8\n")
			Expect(c.Reg(9)).To(Equal(int64(2)))
			Expect(c.Reg(7)).To(Equal(int64(8)))
		})

		It("should multiply", func() {
			run("SET 7 6\nSET 8 -7\nMUL 7 8\n")
			Expect(c.Reg(7)).To(Equal(int64(-42)))
		})

		It("should yield zero on division by zero", func() {
			run("SET 7 9\nDIV 7 8\n")
			Expect(c.Reg(7)).To(Equal(int64(0)))
		})

		It("should truncate division", func() {
			run("SET 7 -7\nSET 8 2\nDIV 7 8\n")
			Expect(c.Reg(7)).To(Equal(int64(-3)))
		})

		It("should take min and max", func() {
			run("SET 7 4\nSET 8 -2\nCPY 9 7\nMIN 9 8\nMAX 8 7\n")
			Expect(c.Reg(9)).To(Equal(int64(-2)))
			Expect(c.Reg(8)).To(Equal(int64(4)))
		})

		It("should shift by powers of three", func() {
			run("SET 7 5\nTSL 7 2\nSET 8 45\nTSR 8 2\n")
			Expect(c.Reg(7)).To(Equal(int64(45)))
			Expect(c.Reg(8)).To(Equal(int64(5)))
		})

		It("should wrap at the word size", func() {
			load("ADD 7 7\n")
			c.SetReg(7, trit.Max(trit.WordTrits))
			_, err := c.Run(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(trit.Fits(c.Reg(7), trit.WordTrits)).To(BeTrue())
			Expect(c.Reg(7)).To(Equal(int64(-1)))
		})
	})

	Context("Control Flow", func() {
		It("should set the status register from TRI", func() {
			run("SET 7 1\nSET 8 4\nTRI 7 8\n")
			Expect(c.Reg(machine.DefaultLayout.StatusReg)).To(Equal(int64(-1)))
		})

		It("should loop with TRI and BRN", func() {
			run(`SET 7 0
SET 8 1
SET 9 5
Lloop:
ADD 7 8
TRI 7 9
BRN Lloop
SLP
`)
			Expect(c.Reg(7)).To(Equal(int64(5)))
		})

		It("should branch on zero and positive", func() {
			run(`SET 7 3
TRI 7 7
BRZ zero
SET 8 1
zero:
SET 9 1
TRI 9 8
BRP done
SET 10 1
done:
`)
			Expect(c.Reg(8)).To(Equal(int64(0)))
			Expect(c.Reg(10)).To(Equal(int64(0)))
		})

		It("should call and return", func() {
			run(`CAL paint
SET 8 2
SLP
Lpaint:
SET 7 1
RET
`)
			Expect(c.Reg(7)).To(Equal(int64(1)))
			Expect(c.Reg(8)).To(Equal(int64(2)))
			Expect(c.Reg(machine.DefaultLayout.StackReg)).To(Equal(int64(cpu.MemoryTrits)))
		})

		It("should halt on return with an empty stack", func() {
			run("RET\nSET 7 1\n")
			Expect(c.Reg(7)).To(Equal(int64(0)))
			Expect(c.Steps()).To(Equal(1))
		})

		It("should halt when running off the end", func() {
			run("SET 7 1\n")
			Expect(c.PC()).To(Equal(1))
		})

		It("should stop at the step limit", func() {
			load("L0:\nJMP L0\n")
			n, err := c.Run(10)
			Expect(err).To(MatchError(cpu.ErrStepLimit))
			Expect(n).To(Equal(10))
			Expect(c.Halted()).To(BeFalse())
		})

		It("should overflow the stack on unbounded recursion", func() {
			load("Lf:\nCAL f\n")
			_, err := c.Run(0)
			Expect(err).To(MatchError(cpu.ErrStackOverflow))
		})

		It("should reject an illegal opcode", func() {
			Expect(c.Load(&assembler.Program{Instrs: []assembler.Instr{{Op: 19}}})).To(Succeed())
			Expect(c.Step()).To(MatchError(cpu.ErrIllegal))
		})
	})

	Context("Memory", func() {
		It("should store and load through a pointer", func() {
			run("SET 7 100\nSET 8 -77\nSTR 8 7\nLOD 9 7\n")
			Expect(c.Reg(9)).To(Equal(int64(-77)))
		})

		It("should reject an address outside memory", func() {
			load("SET 7 -1\nSTR 8 7\n")
			_, err := c.Run(0)
			Expect(err).To(MatchError(cpu.ErrAddress))
		})
	})

	Context("Devices", func() {
		It("should read the mouse through WAK", func() {
			input.EXPECT().MouseX().Return(int64(42))
			input.EXPECT().MouseY().Return(int64(-7))
			run("WAK 7 50\nWAK 8 51\nWAK 9 1\n")
			Expect(c.Reg(7)).To(Equal(int64(42)))
			Expect(c.Reg(8)).To(Equal(int64(-7)))
			Expect(c.Reg(9)).To(Equal(int64(1)))
		})

		It("should read key state", func() {
			input.EXPECT().KeyPressed(int64(32)).Return(true)
			input.EXPECT().KeyPressed(int64(13)).Return(false)
			run("KEY 7 32\nKEY 8 13\n")
			Expect(c.Reg(7)).To(Equal(int64(1)))
			Expect(c.Reg(8)).To(Equal(int64(-1)))
		})

		It("should treat a missing input device as idle", func() {
			c = cpu.New(machine.DefaultLayout, cpu.Options{})
			run("WAK 7 50\nKEY 8 32\n")
			Expect(c.Reg(7)).To(Equal(int64(0)))
			Expect(c.Reg(8)).To(Equal(int64(-1)))
		})
	})

	Context("Graphics", func() {
		It("should fill a rectangle", func() {
			run(`SET 0 13
SET 1 -13
SET 2 0
SET 3 10
SET 4 20
SET 5 3
SET 6 2
RECT
`)
			r, g, b := c.Pixel(10, 20)
			Expect([]int64{r, g, b}).To(Equal([]int64{13, -13, 0}))
			r, _, _ = c.Pixel(12, 21)
			Expect(r).To(Equal(int64(13)))
			r, _, _ = c.Pixel(13, 20)
			Expect(r).To(Equal(int64(0)))
			r, _, _ = c.Pixel(10, 22)
			Expect(r).To(Equal(int64(0)))
		})

		It("should clip to the screen and saturate channels", func() {
			run("SET 0 100\nSET 3 240\nSET 4 -5\nSET 5 10\nSET 6 10\nRECT\n")
			r, _, _ := c.Pixel(242, 0)
			Expect(r).To(Equal(int64(13)))
			r, _, _ = c.Pixel(242, 4)
			Expect(r).To(Equal(int64(13)))
			r, _, _ = c.Pixel(242, 5)
			Expect(r).To(Equal(int64(0)))
		})

		It("should clear the screen", func() {
			run("SET 0 5\nSET 5 1\nSET 6 1\nRECT\nCLS\n")
			for _, t := range c.VRAM() {
				if t != 0 {
					Fail("VRAM not cleared")
				}
			}
		})
	})

	It("should dump registers as a table", func() {
		run("SET 7 5\n")
		var buf bytes.Buffer
		c.Dump(&buf)
		Expect(buf.String()).To(MatchRegexp(`halted\s*\|\s*state\s*\|\s*true`))
		Expect(buf.String()).To(MatchRegexp(`steps\s*\|\s*state\s*\|\s*1\s`))
		Expect(buf.String()).To(ContainSubstring("status"))
		Expect(buf.String()).To(ContainSubstring("gp"))
	})

	It("should run translated Trit-C", func() {
		src := `int w = 10
int h = 5
size(w, h)
pos(1, 2)
color(13, 0, -13)
draw()
`
		var out bytes.Buffer
		_, err := translate.New(machine.Default(), translate.Options{Header: true}).
			Run(translate.NewLineReader(strings.NewReader(src)), translate.NewLineWriter(&out))
		Expect(err).NotTo(HaveOccurred())

		run(out.String())
		r, g, b := c.Pixel(1, 2)
		Expect([]int64{r, g, b}).To(Equal([]int64{13, 0, -13}))
		r, _, _ = c.Pixel(10, 6)
		Expect(r).To(Equal(int64(13)))
		r, _, _ = c.Pixel(11, 2)
		Expect(r).To(Equal(int64(0)))
	})
})
