// Package utils содержит вспомогательные функции,
// в том числе для генерации коротких кодов.
package utils

import (
	"math/rand"
)

// Charset — алфавит коротких кодов: строчные латинские буквы и цифры,
// как в base36-представлении.
const Charset = "abcdefghijklmnopqrstuvwxyz0123456789"

// StringWithCharset возвращает строку длины length,
// символы берутся случайно из заданного charset.
func StringWithCharset(length int, charset string) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

// RandomString возвращает случайную строку длины length из алфавита Charset.
func RandomString(length int) string {
	return StringWithCharset(length, Charset)
}

// IsShortCode проверяет, что s мог быть получен через RandomString(length).
func IsShortCode(s string, length int) bool {
	if len(s) != length {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
