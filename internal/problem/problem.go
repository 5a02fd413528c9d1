// Package problem generates multiplication problems for drill sessions.
package problem

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"
)

// Operand bounds. Both operands of every problem lie in [MinOperand, MaxOperand].
const (
	MinOperand = 0
	MaxOperand = 12

	// MinTable and MaxTable bound the fixed operand of a practice session.
	MinTable = 1
	MaxTable = 12
)

// Mode selects how operands are drawn.
type Mode string

const (
	// ModePractice keeps the first operand fixed to the chosen table.
	ModePractice Mode = "practice"
	// ModePro draws both operands at random and runs against the clock.
	ModePro Mode = "pro"
)

// String returns the mode name.
func (m Mode) String() string { return string(m) }

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModePractice || m == ModePro
}

// ParseMode converts a user-supplied name into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown mode %q (want %q or %q)", s, ModePractice, ModePro)
	}
	return m, nil
}

// ValidTable reports whether table can be practiced.
func ValidTable(table int) bool {
	return table >= MinTable && table <= MaxTable
}

// Problem is a single multiplication question A × B.
type Problem struct {
	A int
	B int
}

// Answer returns the product. It is always derived from the operands.
func (p Problem) Answer() int {
	return p.A * p.B
}

// AnswerLen returns the number of decimal digits in the answer.
func (p Problem) AnswerLen() int {
	return len(strconv.Itoa(p.Answer()))
}

// String renders the problem the way the game screen shows it.
func (p Problem) String() string {
	return fmt.Sprintf("%d × %d", p.A, p.B)
}

// Source yields operands in [MinOperand, MaxOperand].
type Source interface {
	Operand() int
}

// Generator produces problems from a Source.
type Generator struct {
	src Source
}

// NewGenerator creates a Generator drawing from src. A nil src uses
// NewRandomSource(nil).
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = NewRandomSource(nil)
	}
	return &Generator{src: src}
}

// Next returns a fresh problem for mode. In practice mode table becomes
// the first operand; in pro mode table is ignored. Repeats are allowed.
func (g *Generator) Next(mode Mode, table int) Problem {
	if mode == ModePractice {
		return Problem{A: table, B: g.src.Operand()}
	}
	a := g.src.Operand()
	b := g.src.Operand()
	return Problem{A: a, B: b}
}

// RandomSource draws uniformly over the inclusive operand range.
// It is safe for concurrent use.
type RandomSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSource wraps rng. A nil rng is seeded from the runtime.
func NewRandomSource(rng *rand.Rand) *RandomSource {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &RandomSource{rng: rng}
}

// Operand returns a uniform value in [MinOperand, MaxOperand].
func (s *RandomSource) Operand() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return MinOperand + s.rng.IntN(MaxOperand-MinOperand+1)
}

// SequenceSource replays a fixed list of operands, cycling when exhausted.
// Used to make sessions deterministic.
type SequenceSource struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewSequenceSource returns a source that yields values in order.
// It panics if values is empty.
func NewSequenceSource(values ...int) *SequenceSource {
	if len(values) == 0 {
		panic("problem: NewSequenceSource needs at least one value")
	}
	return &SequenceSource{values: values}
}

// Operand returns the next value in the sequence.
func (s *SequenceSource) Operand() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}
