package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseQuantity 测试带符号整数解析
func TestParseQuantity(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    int
		wantErr error
	}{
		{"正整数", "5", 5, nil},
		{"负整数", "-3", -3, nil},
		{"零", "0", 0, nil},
		{"带正号", "+7", 7, nil},
		{"首尾空白", "  42  ", 42, nil},
		{"空字符串", "", 0, ErrInvalidQuantity},
		{"纯空白", "   ", 0, ErrInvalidQuantity},
		{"小数", "3.5", 0, ErrInvalidQuantity},
		{"非数字", "abc", 0, ErrInvalidQuantity},
		{"混合", "12x", 0, ErrInvalidQuantity},
		{"科学计数法", "1e3", 0, ErrInvalidQuantity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := ParseQuantity(tc.raw)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, n)
		})
	}
}

// TestParsePositiveQuantity 测试正整数解析
// 要点:格式错误和取值错误是两类不同的错误
func TestParsePositiveQuantity(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    int
		wantErr error
	}{
		{"正整数", "10", 10, nil},
		{"零被拒绝", "0", 0, ErrNonPositiveQuantity},
		{"负数被拒绝", "-5", 0, ErrNonPositiveQuantity},
		{"格式错误优先", "x", 0, ErrInvalidQuantity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := ParsePositiveQuantity(tc.raw)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, n)
		})
	}
}
