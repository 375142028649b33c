package mockapi

import (
	"net/http"
	"strings"

	"github.com/anhqhe/orderfood/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (s *Server) issueToken(user *domain.User) (string, error) {
	now := s.clock.Now()
	claims := sessionClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *Server) parseToken(raw string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// requireAuth validates the bearer token and stashes the user in context.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			return fail(c, http.StatusUnauthorized, "Authentication required")
		}

		claims, err := s.parseToken(token)
		if err != nil {
			return fail(c, http.StatusUnauthorized, "Invalid or expired token")
		}

		user, ok := s.store.userByID(claims.Subject)
		if !ok {
			return fail(c, http.StatusUnauthorized, "Invalid or expired token")
		}

		c.Set("user", user)
		return next(c)
	}
}

// requireAdmin gates the admin surface. Must run after requireAuth.
func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := c.Get("user").(*domain.User)
		if !ok || !user.IsAdmin() {
			return fail(c, http.StatusForbidden, "Admin access required")
		}
		return next(c)
	}
}

func currentUser(c echo.Context) *domain.User {
	user, _ := c.Get("user").(*domain.User)
	return user
}

func (s *Server) handleRegister(c echo.Context) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)

	if req.Name == "" || req.Email == "" || req.Phone == "" {
		return fail(c, http.StatusBadRequest, "Name, email and phone are required")
	}
	if len(req.Password) < minPasswordLength {
		return fail(c, http.StatusBadRequest, "Password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to create account")
	}

	user, created := s.store.createUser(req.Name, req.Email, req.Phone, domain.RoleUser, hash)
	if !created {
		return fail(c, http.StatusConflict, "Email is already registered")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to issue token")
	}

	return ok(c, http.StatusCreated, map[string]any{"user": user, "token": token})
}

func (s *Server) handleLogin(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	acc, found := s.store.accountByEmail(strings.TrimSpace(req.Email))
	if !found {
		return fail(c, http.StatusBadRequest, "Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(req.Password)); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid email or password")
	}

	user := acc.user
	token, err := s.issueToken(&user)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to issue token")
	}

	return ok(c, http.StatusOK, map[string]any{"user": &user, "token": token})
}

func (s *Server) handleMe(c echo.Context) error {
	return ok(c, http.StatusOK, currentUser(c))
}
