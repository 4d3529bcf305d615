package model

import "github.com/golang-jwt/jwt/v5"

// ConnectClaims authorize a realtime connection for the subject user.
type ConnectClaims struct {
	jwt.RegisteredClaims
}
