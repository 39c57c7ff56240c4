package storage

import "errors"

// Сентинельные ошибки хранилища. Верхние слои различают их через
// errors.Is, чтобы отделить ошибки предметной области от сбоев базы.
var (
	// ErrEmailTaken возвращается при попытке зарегистрировать
	// пользователя с уже занятым email.
	ErrEmailTaken = errors.New("email already taken")

	// ErrUserNotFound возвращается, когда пользователь не найден
	// по email или идентификатору.
	ErrUserNotFound = errors.New("user not found")

	// ErrBookNotFound возвращается, когда книга не найдена по паре
	// (id, user_id). Книга другого пользователя неотличима от
	// несуществующей.
	ErrBookNotFound = errors.New("book not found")
)
