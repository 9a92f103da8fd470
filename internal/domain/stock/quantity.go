package stock

import (
	"strconv"
	"strings"
)

// ParseQuantity 解析带符号的整数数量
//
// 业务规则:
// 1. 接受十进制整数文本,允许前导正负号与首尾空白
// 2. 不接受小数、千分位、科学计数法等任何非整数形式
// 3. 解析失败统一返回ErrInvalidQuantity,不暴露底层strconv错误
func ParseQuantity(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, ErrInvalidQuantity
	}

	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, ErrInvalidQuantity
	}
	return n, nil
}

// ParsePositiveQuantity 解析正整数数量
//
// 业务规则:在ParseQuantity基础上额外要求严格大于0,
// 0和负数返回ErrNonPositiveQuantity(格式合法但取值不允许)
func ParsePositiveQuantity(raw string) (int, error) {
	n, err := ParseQuantity(raw)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, ErrNonPositiveQuantity
	}
	return n, nil
}
