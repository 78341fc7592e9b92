package pushups

import (
	"errors"
	"strconv"
)

// MaxCount - наибольшее число, которое принимают /push и /setgoal
const MaxCount = 100000

// parseCount проверяет, что аргумент ровно один и состоит только из цифр 0-9,
// и возвращает положительное число. При ошибке возвращает текст ответа пользователю.
func parseCount(args []string, usage string) (int, string) {
	if len(args) != 1 || !isDigits(args[0]) {
		return 0, usage
	}

	n, err := strconv.Atoi(args[0])
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, MsgTooLarge
		}
		return 0, usage
	}
	if n <= 0 {
		return 0, MsgNotPositive
	}
	if n > MaxCount {
		return 0, MsgTooLarge
	}
	return n, ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
