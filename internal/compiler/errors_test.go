package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevigo/build-herald/internal/core"
)

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []core.CompileError
	}{
		{
			name: "Single entry with plain marker",
			text: "Line 12: missing semicolon",
			want: []core.CompileError{
				{Line: 12, Message: "missing semicolon"},
			},
		},
		{
			name: "Multiple entries",
			text: "Line 3: unexpected token '}'\nLine 40: variable foo is undeclared",
			want: []core.CompileError{
				{Line: 3, Message: "unexpected token '}'"},
				{Line: 40, Message: "variable foo is undeclared"},
			},
		},
		{
			name: "ERROR dash prefix",
			text: "ERROR - Line 7: invalid assignment target",
			want: []core.CompileError{
				{Line: 7, Message: "invalid assignment target"},
			},
		},
		{
			name: "Error on line prefix",
			text: "Error on line 21: unterminated string literal",
			want: []core.CompileError{
				{Line: 21, Message: "unterminated string literal"},
			},
		},
		{
			name: "Continuation lines attach to previous entry",
			text: "Line 5: type mismatch\n  found   : string\n  required: number",
			want: []core.CompileError{
				{Line: 5, Message: "type mismatch\nfound   : string\nrequired: number"},
			},
		},
		{
			name: "Leading noise before first marker is dropped",
			text: "compilation failed\nLine 9: missing return statement",
			want: []core.CompileError{
				{Line: 9, Message: "missing return statement"},
			},
		},
		{
			name: "No marker degrades to line zero",
			text: "internal compiler error: stack overflow",
			want: []core.CompileError{
				{Line: 0, Message: "internal compiler error: stack overflow"},
			},
		},
		{
			name: "Blank lines between entries",
			text: "Line 1: first\n\nLine 2: second",
			want: []core.CompileError{
				{Line: 1, Message: "first"},
				{Line: 2, Message: "second"},
			},
		},
		{
			name: "Lowercase marker",
			text: "line 33: shadowed declaration of x",
			want: []core.CompileError{
				{Line: 33, Message: "shadowed declaration of x"},
			},
		},
		{
			name: "Empty text",
			text: "   \n  ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseErrors(tt.text)
			assert.Equal(t, tt.want, got)
		})
	}
}
