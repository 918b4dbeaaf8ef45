package usecase

import (
	"context"
	"io"
)

// AuthProvider is the managed identity service boundary.
type AuthProvider interface {
	CreateUser(ctx context.Context, email, password string) (string, error)
	SignInWithEmailPassword(email, password string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
}

// AvatarStore is the managed blob storage boundary. The object is addressed by
// the owner uid and written once at registration.
type AvatarStore interface {
	UploadAvatar(ctx context.Context, uid string, file io.Reader, contentType string) (string, error)
}
