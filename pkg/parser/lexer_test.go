package parser_test

import (
	"testing"

	"github.com/sandrolain/gocalc/pkg/parser"
)

type lexerTestCase struct {
	name     string
	input    string
	expected []parser.Token
}

func TestLexerNumbers(t *testing.T) {
	tests := []lexerTestCase{
		{
			name:  "single digit",
			input: "7",
			expected: []parser.Token{
				{Type: parser.TokenNumber, Value: "7", Position: 0},
			},
		},
		{
			name:  "multi digit",
			input: "12345",
			expected: []parser.Token{
				{Type: parser.TokenNumber, Value: "12345", Position: 0},
			},
		},
		{
			name:  "leading zeros kept in the run",
			input: "007",
			expected: []parser.Token{
				{Type: parser.TokenNumber, Value: "007", Position: 0},
			},
		},
		{
			name:  "very long run",
			input: "123456789012345678901234567890",
			expected: []parser.Token{
				{Type: parser.TokenNumber, Value: "123456789012345678901234567890", Position: 0},
			},
		},
	}

	runLexerTests(t, tests)
}

func TestLexerOperators(t *testing.T) {
	tests := []lexerTestCase{
		{
			name:  "all operators",
			input: "+-*/",
			expected: []parser.Token{
				{Type: parser.TokenPlus, Value: "+", Position: 0},
				{Type: parser.TokenMinus, Value: "-", Position: 1},
				{Type: parser.TokenMult, Value: "*", Position: 2},
				{Type: parser.TokenDiv, Value: "/", Position: 3},
			},
		},
		{
			name:  "expression",
			input: "12+3*45",
			expected: []parser.Token{
				{Type: parser.TokenNumber, Value: "12", Position: 0},
				{Type: parser.TokenPlus, Value: "+", Position: 2},
				{Type: parser.TokenNumber, Value: "3", Position: 3},
				{Type: parser.TokenMult, Value: "*", Position: 4},
				{Type: parser.TokenNumber, Value: "45", Position: 5},
			},
		},
	}

	runLexerTests(t, tests)
}

func TestLexerOther(t *testing.T) {
	tests := []lexerTestCase{
		{
			name:  "whitespace is not skipped",
			input: "1 2",
			expected: []parser.Token{
				{Type: parser.TokenNumber, Value: "1", Position: 0},
				{Type: parser.TokenOther, Value: " ", Position: 1},
				{Type: parser.TokenNumber, Value: "2", Position: 2},
			},
		},
		{
			name:  "letters are one token each",
			input: "ab",
			expected: []parser.Token{
				{Type: parser.TokenOther, Value: "a", Position: 0},
				{Type: parser.TokenOther, Value: "b", Position: 1},
			},
		},
		{
			name:  "multi-byte rune",
			input: "1×2",
			expected: []parser.Token{
				{Type: parser.TokenNumber, Value: "1", Position: 0},
				{Type: parser.TokenOther, Value: "×", Position: 1},
				{Type: parser.TokenNumber, Value: "2", Position: 3},
			},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
	}

	runLexerTests(t, tests)
}

func TestLexerEOFIsSticky(t *testing.T) {
	l := parser.NewLexer("1")
	l.Next()
	for i := 0; i < 3; i++ {
		if tok := l.Next(); tok.Type != parser.TokenEOF {
			t.Fatalf("call %d: expected EOF, got %v", i, tok.Type)
		}
	}
}

func runLexerTests(t *testing.T, tests []lexerTestCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.NewLexer(tt.input).All()
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %d tokens, got %d: %v", len(tt.expected), len(got), got)
			}
			for i, want := range tt.expected {
				if got[i] != want {
					t.Errorf("token %d: expected %+v, got %+v", i, want, got[i])
				}
			}
		})
	}
}
