package author

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewAuthor 测试作者工厂方法
func TestNewAuthor(t *testing.T) {
	t.Run("创建成功并截断到当天零点", func(t *testing.T) {
		a, err := NewAuthor("鲁迅", time.Date(1881, 9, 25, 15, 30, 45, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, "鲁迅", a.Name)
		assert.Equal(t, time.Date(1881, 9, 25, 0, 0, 0, 0, time.UTC), a.BirthDate)
	})

	t.Run("非UTC时区保持日历日不漂移", func(t *testing.T) {
		// 东八区的当天零点按UTC取整会落到前一天,截断必须在日期自身时区进行
		cst := time.FixedZone("CST", 8*3600)
		a, err := NewAuthor("金庸", time.Date(1924, 3, 10, 0, 0, 0, 0, cst))
		require.NoError(t, err)
		y, m, d := a.BirthDate.Date()
		assert.Equal(t, 1924, y)
		assert.Equal(t, time.March, m)
		assert.Equal(t, 10, d)
		hh, mm, ss := a.BirthDate.Clock()
		assert.Zero(t, hh)
		assert.Zero(t, mm)
		assert.Zero(t, ss)
	})

	t.Run("姓名不能为空", func(t *testing.T) {
		_, err := NewAuthor("", time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC))
		require.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("出生日期必须晚于1900-01-01", func(t *testing.T) {
		_, err := NewAuthor("某人", time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC))
		require.ErrorIs(t, err, ErrInvalidBirthDate)

		_, err = NewAuthor("某人", time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC))
		require.ErrorIs(t, err, ErrInvalidBirthDate)
	})
}
