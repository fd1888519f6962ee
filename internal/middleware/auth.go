package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"github.com/surveyportal/surveyportal/internal/auth"
	"github.com/surveyportal/surveyportal/internal/dto"
)

const identityKey = "identity"

// Authenticate parses the Bearer token and stores the caller's identity in
// the request context. Requests without a valid token are rejected.
func Authenticate(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Code: "unauthorized", Message: "Missing bearer token"})
			return
		}

		token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			log.Warn().Err(err).Msg("Auth: token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Code: "unauthorized", Message: "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Code: "unauthorized", Message: "Invalid token claims"})
			return
		}

		identity := auth.Identity{}
		if sub, ok := claims["sub"].(float64); ok {
			identity.ID = uint(sub)
		}
		if name, ok := claims["name"].(string); ok {
			identity.Name = name
		}
		if rawRoles, ok := claims["roles"].([]interface{}); ok {
			for _, r := range rawRoles {
				if role, ok := r.(string); ok {
					identity.Roles = append(identity.Roles, role)
				}
			}
		}
		if identity.ID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Code: "unauthorized", Message: "Invalid token subject"})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// CurrentIdentity returns the identity stored by Authenticate. The zero
// identity is returned when the middleware did not run.
func CurrentIdentity(c *gin.Context) auth.Identity {
	value, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}
	}
	identity, _ := value.(auth.Identity)
	return identity
}

// RequireManage allows only identities whose roles grant survey management.
func RequireManage() gin.HandlerFunc {
	return requireCapability(func(caps auth.Capabilities) bool { return caps.CanManageSurveys })
}

// RequireReports allows only identities whose roles grant report access.
func RequireReports() gin.HandlerFunc {
	return requireCapability(func(caps auth.Capabilities) bool { return caps.CanViewReports })
}

func requireCapability(allowed func(auth.Capabilities) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if !allowed(identity.Capabilities()) {
			log.Warn().Uint("user_id", identity.ID).Strs("roles", identity.Roles).Str("path", c.FullPath()).Msg("Auth: insufficient role")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Code: "forbidden", Message: "Insufficient role for this operation"})
			return
		}
		c.Next()
	}
}
