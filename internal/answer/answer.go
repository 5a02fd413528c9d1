// Package answer evaluates a partially typed answer against a problem.
//
// Evaluation is eager: it runs after every digit and commits as soon as the
// outcome is known, so there is no explicit submit step.
package answer

import (
	"strconv"

	"github.com/Iron-Ham/mathmaster/internal/problem"
)

// Result is the outcome of evaluating the current input.
type Result int

const (
	// Empty means there is no input to evaluate.
	Empty Result = iota
	// Pending means the input is wrong so far but shorter than the answer.
	Pending
	// Correct means the input's numeric value equals the answer.
	Correct
	// Incorrect means the input is wrong and at least as long as the answer.
	Incorrect
)

// String returns a lowercase name for the result.
func (r Result) String() string {
	switch r {
	case Empty:
		return "empty"
	case Pending:
		return "pending"
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "unknown"
	}
}

// Committed reports whether r is terminal for the current attempt.
func (r Result) Committed() bool {
	return r == Correct || r == Incorrect
}

// Evaluate checks buffer, a string of decimal digits, against p.
//
// Numeric equality wins over length, so "042" is correct for 42. A value that
// overflows int can never equal a product of small operands and is judged on
// length alone.
func Evaluate(buffer string, p problem.Problem) Result {
	if buffer == "" {
		return Empty
	}

	want := p.Answer()
	if got, err := strconv.Atoi(buffer); err == nil && got == want {
		return Correct
	}

	if len(buffer) >= p.AnswerLen() {
		return Incorrect
	}
	return Pending
}
