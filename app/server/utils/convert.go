package utils

import "unicode/utf8"

// Truncate 按字符截断，不会切开多字节字符
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// Length 按字符计算长度
func Length(s string) int {
	return utf8.RuneCountInString(s)
}
