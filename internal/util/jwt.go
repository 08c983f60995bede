package util

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ViewerClaims 分享页门禁令牌。门禁只要求填写邮箱，不做任何校验，
// 令牌仅用来标记"该访客已过门禁"，不是认证机制。
type ViewerClaims struct {
	Email    string `json:"email"`
	CourseID string `json:"course_id"`
	jwt.RegisteredClaims
}

func GenerateViewerToken(email, courseID, secret string, expiration time.Duration) (string, error) {
	expirationTime := time.Now().Add(expiration)

	claims := &ViewerClaims{
		Email:    email,
		CourseID: courseID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseViewerToken(tokenString, secret string) (*ViewerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ViewerClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*ViewerClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, err
}

func GetViewerFromContext(c *gin.Context) *ViewerClaims {
	viewer, exists := c.Get("viewer")
	if !exists {
		return nil
	}
	claims, ok := viewer.(*ViewerClaims)
	if !ok {
		return nil
	}
	return claims
}
