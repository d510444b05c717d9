package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken はトークンの検証失敗を表すセンチネルエラー。
// 署名不正・期限切れ・形式不正をまとめて表す。
var ErrInvalidToken = errors.New("invalid token")

// Claims はセッショントークンのクレーム。
// 標準クレーム（有効期限）に加えてユーザーIDを保持する。
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// MintToken はユーザーIDと有効期間を指定してHS256署名付きトークンを生成する。
func MintToken(userID string, secret []byte, maxAge time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(maxAge)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// VerifyToken はトークンの署名と有効期限を検証し、エンコードされたユーザーIDを返す。
// 署名アルゴリズムはHS256のみ受け入れる。
// 検証に失敗した場合はErrInvalidTokenを返す。
func VerifyToken(tokenString string, secret []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}
