package types

import "github.com/golang-jwt/jwt/v5"

type Claims struct {
	Subject string `json:"sub_name"`
	jwt.RegisteredClaims
}
