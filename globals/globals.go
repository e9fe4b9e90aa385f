package globals

import (
	"context"
	"os"
)

// Context keys
type ContextKey string

const RoleKey ContextKey = "role"
const UserIDKey ContextKey = "userId"

var (
	JwtSecret     = []byte(envOr("JWT_SECRET", "dev_jwt_secret"))
	PaymentKeyID  = envOr("PAYMENT_KEY_ID", "key_test_vastra")
	PaymentSecret = envOr("PAYMENT_SECRET", "dev_payment_secret")
)

var Ctx = context.Background()

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
