package service

import "errors"

var (
	ErrEmptyURL            = errors.New("URL is required")
	ErrURLNotFound         = errors.New("URL not found")
	ErrGenerationExhausted = errors.New("could not generate unique short URL")
	// ErrShortURLTaken возвращается хранилищем, когда уникальное ограничение
	// на короткий код отклонило вставку.
	ErrShortURLTaken = errors.New("short URL already taken")
)
