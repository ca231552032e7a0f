package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikePattern(t *testing.T) {
	tests := []struct {
		term string
		want string
	}{
		{"bravia", "%bravia%"},
		{"A_B", `%A\_B%`},
		{"50%", `%50\%%`},
		{`C:\tv`, `%C:\\tv%`},
		{"", "%%"},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, likePattern(tt.term))
		})
	}
}
