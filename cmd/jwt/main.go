// Command jwt prints a fresh signing secret for the auth middleware. Put the
// output in the jwt.secret_key config field (or the JWT_SECRET_KEY env var).
package main

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
)

const secretBytes = 32

func main() {
	key := make([]byte, secretBytes)
	if _, err := rand.Read(key); err != nil {
		slog.Error("failed to generate signing secret", "err", err)
		return
	}

	slog.Info("new signing secret", "secret", base64.URLEncoding.EncodeToString(key))
}
