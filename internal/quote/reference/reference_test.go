package reference

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"John Doe", "JD"},
		{"Mary Ann Davis", "MA"},
		{"Madonna", "MAD"},
		{"A", "A"},
		{"", "SYS"},
		{"   ", "SYS"},
		{"jane roe", "JR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Initials(tt.name))
		})
	}
}

func TestPrefix(t *testing.T) {
	day := time.Date(2025, 3, 4, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "QUO20250304JR", Prefix("Jane Roe", day))
	assert.Equal(t, "QUO20250304SYS", Prefix("", day))
}

func TestNext(t *testing.T) {
	prefix := "QUO20250304JR"

	first, err := Next(prefix, "")
	require.NoError(t, err)
	assert.Equal(t, "QUO20250304JR001", first)

	second, err := Next(prefix, first)
	require.NoError(t, err)
	assert.Equal(t, "QUO20250304JR002", second)

	tenth, err := Next(prefix, "QUO20250304JR009")
	require.NoError(t, err)
	assert.Equal(t, "QUO20250304JR010", tenth)
}

func TestNext_Overflow(t *testing.T) {
	_, err := Next("QUO20250304JR", "QUO20250304JR999")
	assert.ErrorIs(t, err, ErrSequenceOverflow)
}

func TestContractRef(t *testing.T) {
	assert.Equal(t, "CTR20250304JR001", ContractRef("QUO20250304JR001"))
}
