package session

import (
	"fmt"
	"log"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Claim returns the named claim from the stored bearer token, or "" when the
// token is absent, not a JWT, or lacks the claim. The token is decoded without
// signature or expiry validation: it is information for display and
// diagnostics only, never an authorization decision.
func (m *Manager) Claim(name string) string {
	claims := tokenClaims(m.Token())
	if claims == nil {
		return ""
	}
	v, ok := claims[name]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// LogTokenInfo writes the token's issued-at and expiry claims to the log.
// The expiry is reported but deliberately never enforced.
func (m *Manager) LogTokenInfo() {
	claims := tokenClaims(m.Token())
	if claims == nil {
		log.Printf("session: no token to inspect")
		return
	}
	iat, _ := claims.GetIssuedAt()
	exp, _ := claims.GetExpirationTime()
	log.Printf("session: token issued_at=%v expires_at=%v (expiry ignored)", iat, exp)
}

// userIDClaimNames are the claims checked, in order, for a numeric user id.
var userIDClaimNames = []string{"user_id", "uid", "nameid"}

// userIDFromToken extracts a positive numeric user id from the token claims,
// or 0 when none is present.
func userIDFromToken(token string) int {
	claims := tokenClaims(token)
	if claims == nil {
		return 0
	}
	for _, name := range userIDClaimNames {
		v, ok := claims[name]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			if n > 0 {
				return int(n)
			}
		case string:
			if id, err := strconv.Atoi(n); err == nil && id > 0 {
				return id
			}
		}
	}
	return 0
}

func tokenClaims(token string) jwt.MapClaims {
	if token == "" {
		return nil
	}
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil
	}
	return claims
}
