package internal

import (
	"bufio"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func notEmpty(s string) (bool, string) {
	if s == "" {
		return false, "Say something.\n"
	}
	return true, ""
}

func TestPrompt(t *testing.T) {
	tests := map[string]struct {
		input  string
		opts   []promptOption
		exp    string
		expOut string
		expErr string
	}{
		"trims the answer": {
			input:  "  Alice \r\n",
			exp:    "Alice",
			expOut: "Name? ",
		},
		"asks again": {
			input:  "\nBob\n",
			opts:   []promptOption{WithValidator(notEmpty)},
			exp:    "Bob",
			expOut: "Name? Say something.\nName? ",
		},
		"gives up": {
			input:  "\n\n\n",
			opts:   []promptOption{WithValidator(notEmpty), WithMaxTries(2)},
			expErr: "too many tries",
		},
		"last line without newline": {
			input: "Carol",
			exp:   "Carol",
		},
		"closed input": {
			input:  "",
			expErr: "EOF",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var out strings.Builder
			got, err := Prompt(bufio.NewReader(strings.NewReader(tt.input)), &out, "Name? ", tt.opts...)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "answer", got, tt.exp)
			if tt.expOut != "" {
				testutil.AssertEqual(t, "output", out.String(), tt.expOut)
			}
		})
	}
}

func TestPromptYN(t *testing.T) {
	tests := map[string]struct {
		input string
		exp   bool
	}{
		"yes":           {input: "yes\n", exp: true},
		"short yes":     {input: "Y\n", exp: true},
		"no":            {input: "n\n", exp: false},
		"retry then no": {input: "maybe\nno\n", exp: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var out strings.Builder
			got, err := PromptYN(bufio.NewReader(strings.NewReader(tt.input)), &out, "Sure? ")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "answer", got, tt.exp)
		})
	}
}
