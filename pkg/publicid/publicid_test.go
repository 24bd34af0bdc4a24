package publicid

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_UnforgeabilityFloor(t *testing.T) {
	// 11 basamak eşiğin altında
	_, err := Parse("99999999999")
	require.ErrorIs(t, err, ErrInvalid)

	// 12 basamak eşiğin tam üstünde
	id, err := Parse("100000000000")
	require.NoError(t, err)
	require.Equal(t, int64(100_000_000_000), id)
}

func TestParse_RejectsMalformedInput(t *testing.T) {
	cases := []string{
		"",
		"abc",
		"12.5",
		"123456789012.0",
		"-100000000000",
		"+100000000000",
		" 100000000000",
		"1e12",
		"0x1234567890AB",
		"99999999999999999999999", // int64 taşması
	}
	for _, raw := range cases {
		_, err := Parse(raw)
		require.ErrorIs(t, err, ErrInvalid, "girdi: %q", raw)
	}
}

func TestParse_RoundTripsGenerated(t *testing.T) {
	for i := 0; i < 100; i++ {
		id, err := Generate(0, DefaultDigits, nil)
		require.NoError(t, err)

		parsed, err := Parse(strconv.FormatInt(id, 10))
		require.NoError(t, err)
		require.Equal(t, id, parsed)
	}
}

func TestGenerate_TenThousandDistinct(t *testing.T) {
	const n = 10_000
	seen := make(map[int64]struct{}, n)
	for i := 0; i < n; i++ {
		id, err := Generate(0, DefaultDigits, nil)
		require.NoError(t, err)
		require.GreaterOrEqual(t, id, MinValue)
		require.Less(t, id, MinValue*10)
		_, dup := seen[id]
		require.False(t, dup, "çift public id üretildi: %d", id)
		seen[id] = struct{}{}
	}
}

func TestGenerate_PrefixNamespace(t *testing.T) {
	for i := 0; i < 1000; i++ {
		id, err := Generate(2, DefaultDigits, nil)
		require.NoError(t, err)
		require.GreaterOrEqual(t, id, int64(200_000_000_000))
		require.Less(t, id, int64(300_000_000_000))
	}
}

func TestGenerate_RetriesOnCollision(t *testing.T) {
	calls := 0
	id, err := Generate(0, DefaultDigits, func(candidate int64) (bool, error) {
		calls++
		return calls <= 2, nil // ilk iki aday dolu
	})
	require.NoError(t, err)
	require.GreaterOrEqual(t, id, MinValue)
	require.Equal(t, 3, calls)
}

func TestGenerate_FailsWhenAllTaken(t *testing.T) {
	_, err := Generate(0, DefaultDigits, func(int64) (bool, error) {
		return true, nil
	})
	require.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGenerate_RejectsBadArguments(t *testing.T) {
	_, err := Generate(10, DefaultDigits, nil)
	require.Error(t, err)

	_, err = Generate(0, 19, nil)
	require.Error(t, err)
}
