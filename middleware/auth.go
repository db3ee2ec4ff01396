package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"hourbook/models"
)

type contextKey string

const UserContextKey contextKey = "professional"

type Claims struct {
	ProfessionalID string      `json:"professional_id"`
	Email          string      `json:"email"`
	Role           models.Role `json:"role"`
	jwt.RegisteredClaims
}

// ProfessionalLookup loads the acting professional named by a token.
type ProfessionalLookup interface {
	GetProfessional(ctx context.Context, id string) (models.Professional, error)
}

// Auth issues and checks HS256 bearer tokens.
type Auth struct {
	secret        []byte
	expiration    time.Duration
	professionals ProfessionalLookup
}

func NewAuth(secret string, expiration time.Duration, professionals ProfessionalLookup) *Auth {
	return &Auth{
		secret:        []byte(secret),
		expiration:    expiration,
		professionals: professionals,
	}
}

func (a *Auth) GenerateToken(p *models.Professional) (string, error) {
	now := time.Now()
	claims := &Claims{
		ProfessionalID: p.ID,
		Email:          p.Email,
		Role:           p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(a.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

func (a *Auth) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.ProfessionalID != "" {
		return claims, nil
	}

	return nil, jwt.ErrTokenInvalidClaims
}

// Middleware resolves the bearer token into the acting professional. Role
// changes and deactivation take effect immediately because the professional
// is reloaded on every request.
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := bearerToken(r)
		if tokenString == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}

		claims, err := a.ValidateToken(tokenString)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized", "invalid token")
			return
		}

		professional, err := a.professionals.GetProfessional(r.Context(), claims.ProfessionalID)
		if err != nil || !professional.IsActive {
			writeError(w, http.StatusUnauthorized, "unauthorized", "unknown or inactive professional")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), &professional)))
	})
}

func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUserFromContext(r.Context())
			if user == nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
				return
			}

			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeError(w, http.StatusForbidden, "forbidden", "role "+string(user.Role)+" may not access this resource")
		})
	}
}

func WithUser(ctx context.Context, p *models.Professional) context.Context {
	return context.WithValue(ctx, UserContextKey, p)
}

func GetUserFromContext(ctx context.Context) *models.Professional {
	user, ok := ctx.Value(UserContextKey).(*models.Professional)
	if !ok {
		return nil
	}
	return user
}

func bearerToken(r *http.Request) string {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// ErrorBody is the JSON shape of every API error.
type ErrorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorBody{Error: code, Message: message})
}

var errNoUser = errors.New("middleware: no professional in context")

// MustUser returns the acting professional or an error when the route was
// mounted without Auth.Middleware.
func MustUser(ctx context.Context) (*models.Professional, error) {
	if user := GetUserFromContext(ctx); user != nil {
		return user, nil
	}
	return nil, errNoUser
}
