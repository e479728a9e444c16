package plaintext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalise(t *testing.T) {
	n := New()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: "  \t \n\n  \t",
			want:  "",
		},
		{
			name:  "collapses space runs",
			input: "The  mitochondria   is\tthe powerhouse",
			want:  "The mitochondria is the powerhouse",
		},
		{
			name:  "caps blank lines at one",
			input: "Chapter 1\n\n\n\nChapter 2",
			want:  "Chapter 1\n\nChapter 2",
		},
		{
			name:  "strips carriage returns",
			input: "line one\r\nline two\r\n",
			want:  "line one\nline two",
		},
		{
			name:  "trims trailing whitespace per line",
			input: "heading   \nbody text  ",
			want:  "heading\nbody text",
		},
		{
			name:  "already clean",
			input: "Plain sentence.",
			want:  "Plain sentence.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalise(tt.input))
		})
	}
}
