/*
File    : camps/eval/eval_test.go
*/
package eval

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camps-lang/camps/parser"
)

// stubReader feeds canned lines to INPUT without touching a terminal.
type stubReader struct {
	lines []string
	pos   int
}

func (r *stubReader) ReadLine() (string, error) {
	if r.pos >= len(r.lines) {
		return "", assert.AnError
	}
	l := r.lines[r.pos]
	r.pos++
	return l, nil
}

func run(t *testing.T, src string) string {
	t.Helper()
	blk, err := parser.Parse(src)
	require.NoError(t, err)

	var buf bytes.Buffer
	ev := New()
	ev.Out = &buf
	require.NoError(t, ev.Run(blk))
	return buf.String()
}

func TestScenario_ArithmeticPrecedence(t *testing.T) {
	assert.Equal(t, "7\n", run(t, "OUTPUT 1 + 2 * 3\n"))
}

func TestScenario_DeclareAssignOutput(t *testing.T) {
	assert.Equal(t, "6\n", run(t, "DECLARE x : INTEGER\nx <- 5\nOUTPUT x + 1\n"))
}

func TestScenario_ForLoop(t *testing.T) {
	assert.Equal(t, "1\n2\n3\n", run(t, "FOR i <- 1 TO 3\nOUTPUT i\nENDFOR\n"))
}

func TestScenario_ByRefSwap(t *testing.T) {
	src := `PROCEDURE Swap(BYREF a : INTEGER, BYREF b : INTEGER)
DECLARE t : INTEGER
t <- a
a <- b
b <- t
ENDPROCEDURE
DECLARE x : INTEGER
DECLARE y : INTEGER
x <- 1
y <- 2
CALL Swap(x, y)
OUTPUT x, y
`
	assert.Equal(t, "21\n", run(t, src))
}

func TestScenario_ByRefForwardedThroughNestedCall(t *testing.T) {
	// A BYREF parameter forwarded as a BYREF argument to a second,
	// nested procedure must still write through to the original
	// variable at the top of the chain.
	src := `PROCEDURE Inner(BYREF y : INTEGER)
y <- 10
ENDPROCEDURE
PROCEDURE Middle(BYREF x : INTEGER)
CALL Inner(x)
ENDPROCEDURE
DECLARE a : INTEGER
a <- 5
CALL Middle(a)
OUTPUT a
`
	assert.Equal(t, "10\n", run(t, src))
}

func TestScenario_FunctionCall(t *testing.T) {
	src := `FUNCTION Sq(n : INTEGER) RETURNS INTEGER
RETURN n * n
ENDFUNCTION
OUTPUT Sq(7)
`
	assert.Equal(t, "49\n", run(t, src))
}

func TestScenario_ArrayIndexing(t *testing.T) {
	src := `DECLARE A : ARRAY[1:3] OF INTEGER
A[1] <- 10
A[2] <- 20
A[3] <- 30
OUTPUT A[2]
`
	assert.Equal(t, "20\n", run(t, src))
}

func TestByValueParameterDoesNotPropagate(t *testing.T) {
	src := `PROCEDURE Zero(n : INTEGER)
n <- 0
ENDPROCEDURE
DECLARE x : INTEGER
x <- 5
CALL Zero(x)
OUTPUT x
`
	assert.Equal(t, "5\n", run(t, src))
}

func TestAssignToConstantErrors(t *testing.T) {
	blk, err := parser.Parse("CONSTANT pi = 3\npi <- 4\n")
	require.NoError(t, err)
	ev := New()
	ev.Out = &bytes.Buffer{}
	err = ev.Run(blk)
	assert.Error(t, err)
}

func TestReadingUndeclaredNameErrors(t *testing.T) {
	blk, err := parser.Parse("OUTPUT missing\n")
	require.NoError(t, err)
	ev := New()
	ev.Out = &bytes.Buffer{}
	err = ev.Run(blk)
	assert.Error(t, err)
}

func TestAssignToUndeclaredNameInRootAutoDeclares(t *testing.T) {
	assert.Equal(t, "5\n", run(t, "x <- 5\nOUTPUT x\n"))
}

func TestIfElseBranches(t *testing.T) {
	src := "DECLARE x : INTEGER\nx <- 1\nIF x = 1\nTHEN\nOUTPUT x\nELSE\nOUTPUT 0\nENDIF\n"
	assert.Equal(t, "1\n", run(t, src))
}

func TestWhileLoopTerminatesOnFalse(t *testing.T) {
	src := "DECLARE x : INTEGER\nx <- 0\nWHILE x < 3 DO\nOUTPUT x\nx <- x + 1\nENDWHILE\n"
	assert.Equal(t, "0\n1\n2\n", run(t, src))
}

func TestCaseExecutesFirstMatchingArmOnly(t *testing.T) {
	src := "DECLARE x : INTEGER\nx <- 2\nCASE OF x\n1 : OUTPUT 1\n2 : OUTPUT 2\nOTHERWISE: OUTPUT 3\nENDCASE\n"
	assert.Equal(t, "2\n", run(t, src))
}

func TestModAndDivTruncateTowardZero(t *testing.T) {
	assert.Equal(t, "1\n", run(t, "OUTPUT 7 MOD 3\n"))
	assert.Equal(t, "2\n", run(t, "OUTPUT 7 DIV 3\n"))
	assert.Equal(t, "-1\n", run(t, "OUTPUT -7 MOD 3\n"))
	assert.Equal(t, "-2\n", run(t, "OUTPUT -7 DIV 3\n"))
}

func TestInputAssignsStringFromLineReader(t *testing.T) {
	blk, err := parser.Parse("DECLARE x : STRING\nINPUT x\nOUTPUT x\n")
	require.NoError(t, err)
	var buf bytes.Buffer
	ev := New()
	ev.Out = &buf
	ev.In = &stubReader{lines: []string{"hello"}}
	require.NoError(t, ev.Run(blk))
	assert.Equal(t, "hello\n", buf.String())
}

func TestRepeatStopsWhenConditionIsFalse(t *testing.T) {
	// Literal spec polarity: REPEAT...UNTIL stops when cond is FALSE, not TRUE.
	src := "DECLARE x : INTEGER\nx <- 0\nREPEAT\nx <- x + 1\nOUTPUT x\nUNTIL x > 10\n"
	assert.Equal(t, "1\n", run(t, src))
}
