package httpapi

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/maru-commerce/maru-order-service/internal/domain"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const principalKey = "principal"

// AuthMiddleware verifies bearer tokens of the form
// base64url(userID:storeID:role).hexHMAC and stores the principal in the
// request locals.
type AuthMiddleware struct {
	secret []byte
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(secret)}
}

func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return writeError(c, status.Error(codes.Unauthenticated, "missing bearer token"))
	}
	token := strings.TrimPrefix(header, "Bearer ")

	principal, err := m.verify(token)
	if err != nil {
		return writeError(c, status.Error(codes.Unauthenticated, "invalid token"))
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

func (m *AuthMiddleware) verify(token string) (domain.Principal, error) {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return domain.Principal{}, status.Error(codes.Unauthenticated, "malformed token")
	}

	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(parts[0]))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(parts[1])) {
		return domain.Principal{}, status.Error(codes.Unauthenticated, "bad signature")
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return domain.Principal{}, err
	}
	fields := strings.SplitN(string(payload), ":", 3)
	if len(fields) != 3 {
		return domain.Principal{}, status.Error(codes.Unauthenticated, "malformed payload")
	}

	return domain.Principal{
		UserID:  fields[0],
		StoreID: fields[1],
		Role:    domain.Role(fields[2]),
	}, nil
}

func principalFrom(c *fiber.Ctx) domain.Principal {
	if p, ok := c.Locals(principalKey).(domain.Principal); ok {
		return p
	}
	return domain.Principal{}
}
