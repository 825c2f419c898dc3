package parser

import "testing"

func TestTokenizer(t *testing.T) {
	tests := []struct {
		input    string
		expected []Token
	}{
		{"", nil},
		{"foo", []Token{{Kind: TokenName, Text: "foo"}}},
		{"_x $y a1", []Token{
			{Kind: TokenName, Text: "_x"},
			{Kind: TokenName, Text: "$y"},
			{Kind: TokenName, Text: "a1"},
		}},
		{"42 0x1fUL 3.14f 1e-5 .5", []Token{
			{Kind: TokenNumber, Text: "42"},
			{Kind: TokenNumber, Text: "0x1fUL"},
			{Kind: TokenNumber, Text: "3.14f"},
			{Kind: TokenNumber, Text: "1e-5"},
			{Kind: TokenNumber, Text: ".5"},
		}},
		{`"hello \"there\"" 'a' '\''`, []Token{
			{Kind: TokenString, Text: `"hello \"there\""`},
			{Kind: TokenString, Text: "'a'"},
			{Kind: TokenString, Text: `'\''`},
		}},
		{"a \\ \\ \\ \\ \\ \\ \\ \\ b", []Token{
			{Kind: TokenName, Text: "a"},
			{Kind: TokenName, Text: "b"},
		}},
		{"// comment\nfoo", []Token{{Kind: TokenName, Text: "foo"}}},
		{"/* block\n comment */ foo", []Token{{Kind: TokenName, Text: "foo"}}},
		{"a /* x */ b", []Token{
			{Kind: TokenName, Text: "a"},
			{Kind: TokenName, Text: "b"},
		}},
		{"foo\\\nbar", []Token{
			{Kind: TokenName, Text: "foo"},
			{Kind: TokenName, Text: "bar"},
		}},
		{":: << >> && || == ++ --", []Token{
			{Kind: TokenSyntax, Text: "::"},
			{Kind: TokenSyntax, Text: "<<"},
			{Kind: TokenSyntax, Text: ">>"},
			{Kind: TokenSyntax, Text: "&&"},
			{Kind: TokenSyntax, Text: "||"},
			{Kind: TokenSyntax, Text: "=="},
			{Kind: TokenSyntax, Text: "++"},
			{Kind: TokenSyntax, Text: "--"},
		}},
		// "**" stays two tokens so pointer declarators keep their shape.
		{"int**", []Token{
			{Kind: TokenName, Text: "int"},
			{Kind: TokenSyntax, Text: "*"},
			{Kind: TokenSyntax, Text: "*"},
		}},
		{"a<b<c>>", []Token{
			{Kind: TokenName, Text: "a"},
			{Kind: TokenSyntax, Text: "<"},
			{Kind: TokenName, Text: "b"},
			{Kind: TokenSyntax, Text: "<"},
			{Kind: TokenName, Text: "c"},
			{Kind: TokenSyntax, Text: ">>"},
		}},
		{"#define FOO 1\nint x;", []Token{
			{Kind: TokenPreprocessor, Text: "#define FOO 1"},
			{Kind: TokenName, Text: "int"},
			{Kind: TokenName, Text: "x"},
			{Kind: TokenSyntax, Text: ";"},
		}},
		{"#define FOO \\\n  1\nint x;", []Token{
			{Kind: TokenPreprocessor, Text: "#define FOO \\\n  1"},
			{Kind: TokenName, Text: "int"},
			{Kind: TokenName, Text: "x"},
			{Kind: TokenSyntax, Text: ";"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Tokenize([]byte(tt.input), "test.h")
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d tokens %v, want %d", len(got), tokenTexts(got), len(tt.expected))
			}
			for i := range got {
				if got[i].Kind != tt.expected[i].Kind {
					t.Errorf("token %d: kind %v, want %v", i, got[i].Kind, tt.expected[i].Kind)
				}
				if got[i].Text != tt.expected[i].Text {
					t.Errorf("token %d: text %q, want %q", i, got[i].Text, tt.expected[i].Text)
				}
			}
		})
	}
}

func TestTokenizerOffsets(t *testing.T) {
	src := "int foo;"
	tokens := Tokenize([]byte(src), "test.h")
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens, want 3", len(tokens))
	}
	for i, tok := range tokens {
		if src[tok.Start:tok.End] != tok.Text {
			t.Errorf("token %d: span [%d,%d) reads %q, text is %q",
				i, tok.Start, tok.End, src[tok.Start:tok.End], tok.Text)
		}
	}
	if tokens[1].Start != 4 || tokens[1].End != 7 {
		t.Errorf("foo span [%d,%d), want [4,7)", tokens[1].Start, tokens[1].End)
	}
}

func TestTokenizerUnterminated(t *testing.T) {
	// Unterminated constructs close at end of input instead of hanging.
	tests := []struct {
		name  string
		input string
	}{
		{"string", `"never closed`},
		{"char", "'x"},
		{"block comment", "/* never closed"},
		{"continuation at eof", "foo\\"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tz := NewTokenizer([]byte(tt.input), "test.h")
			for i := 0; i < len(tt.input)+2; i++ {
				if tz.NextToken().Kind == TokenEOF {
					return
				}
			}
			t.Fatal("tokenizer did not reach EOF")
		})
	}
}
