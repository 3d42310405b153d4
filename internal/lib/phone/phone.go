// Package phone содержит функции нормализации телефонных номеров
// для исходящих webhook-уведомлений.
//
// Номер считается корректным, если после удаления всех нецифровых символов
// в нем остается от 10 до 13 цифр. Номера в локальном формате (10–11 цифр)
// дополняются кодом страны по умолчанию.
package phone

import (
	"errors"
	"strings"
)

// ErrInvalidPhone возвращается, когда номер не проходит проверку длины.
var ErrInvalidPhone = errors.New("invalid phone number")

const (
	minDigits = 10
	maxDigits = 13

	// Длина номера в локальном формате, без кода страны.
	localMinDigits = 10
	localMaxDigits = 11
)

// Digits удаляет из строки все символы, кроме цифр.
func Digits(raw string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
}

// Normalize проверяет номер и приводит его к международному формату.
//
// Возвращает строку из цифр с кодом страны или ErrInvalidPhone,
// если после очистки осталось меньше 10 или больше 13 цифр.
func Normalize(raw, defaultCountryCode string) (string, error) {
	digits := Digits(raw)
	if len(digits) < minDigits || len(digits) > maxDigits {
		return "", ErrInvalidPhone
	}
	if len(digits) >= localMinDigits && len(digits) <= localMaxDigits &&
		!strings.HasPrefix(digits, defaultCountryCode) {
		digits = defaultCountryCode + digits
	}
	return digits, nil
}
