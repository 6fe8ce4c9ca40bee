package model

import (
	"context"
	"io"
)

// Storage stores uploaded product images under generated object keys.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Mailer delivers a single email message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
