package serverutils

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
)

// IssueToken signs an HS256 access token carrying the user id and username.
func IssueToken(secret string, userId uuid.UUID, username string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userId.String(),
		"username": username,
		"exp":      time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func JwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Missing token"))
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid claims"))
		}
		userId, _ := claims["user_id"].(string)
		username, _ := claims["username"].(string)
		if userId == "" || username == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid claims"))
		}

		ctx.Locals(LocalUserID, userId)
		ctx.Locals(LocalUsername, username)
		return ctx.Next()
	}
}

var ErrNoIdentity = errors.New("request has no authenticated user")

// CurrentUser reads the identity JwtMiddleware stored on the request.
func CurrentUser(ctx *fiber.Ctx) (uuid.UUID, string, error) {
	idStr, _ := ctx.Locals(LocalUserID).(string)
	username, _ := ctx.Locals(LocalUsername).(string)
	id, err := uuid.Parse(idStr)
	if err != nil || username == "" {
		return uuid.Nil, "", ErrNoIdentity
	}
	return id, username, nil
}
