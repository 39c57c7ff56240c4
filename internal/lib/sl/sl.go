// Package sl дополняет slog атрибутами, которые приложение пишет
// одинаково во всех слоях.
package sl

import "log/slog"

// Err оборачивает ошибку в slog.Attr с ключом "error", чтобы записи
// об ошибках выглядели одинаково во всех логах.
//
// Пример:
//
//	log.Error("failed to create book", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
