package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWallet(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercase passthrough", in: "0xabc123", want: "0xabc123"},
		{name: "mixed case", in: "0xAbC123dEf", want: "0xabc123def"},
		{name: "surrounding whitespace", in: "  0xABC \n", want: "0xabc"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeWallet(tt.in))
		})
	}
}
