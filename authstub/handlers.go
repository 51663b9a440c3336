package authstub

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ridecircle/sessionkit/authapi"
)

const maxBodySize = 1 << 16

func decodeJSON[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return v, false
	}
	return v, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "message": msg})
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{"success": true, "data": data})
}

func writeOK(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": msg})
}

// Register handles POST /auth/register. The new account starts
// unverified with a pending OTP code.
func (s *Service) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[authapi.RegisterRequest](w, r)
	if !ok {
		return
	}
	email := authapi.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	s.mu.Lock()
	if _, exists := s.accounts[email]; exists {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, "email already registered")
		return
	}
	acct := &account{
		user: authapi.User{
			ID:        uuid.NewString(),
			Name:      req.Name,
			Email:     email,
			Phone:     req.Phone,
			CreatedAt: s.now().UTC(),
		},
		passwordHash: hash,
	}
	s.accounts[email] = acct
	s.otps[email] = s.newOTP()
	user := acct.user
	s.mu.Unlock()

	token, err := s.issueToken(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	s.logger.Info("registered", "email", email)
	writeData(w, http.StatusCreated, authapi.AuthData{User: user, Token: token})
}

// Login handles POST /auth/login.
func (s *Service) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[authapi.LoginRequest](w, r)
	if !ok {
		return
	}
	email := authapi.NormalizeEmail(req.Email)

	s.mu.Lock()
	acct, exists := s.accounts[email]
	s.mu.Unlock()
	if !exists || bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(req.Password)) != nil {
		s.logger.Info("login failed", "email", email)
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := s.issueToken(acct.user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	s.logger.Info("login", "email", email)
	writeData(w, http.StatusOK, authapi.AuthData{User: acct.user, Token: token})
}

// VerifyOTP handles POST /auth/verify-otp. A correct code marks the
// account verified, clears the pending code, and returns a fresh token.
func (s *Service) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[authapi.VerifyOTPRequest](w, r)
	if !ok {
		return
	}
	email := authapi.NormalizeEmail(req.Email)

	s.mu.Lock()
	acct, exists := s.accounts[email]
	code, pending := s.otps[email]
	if !exists || !pending || code != req.Code {
		s.mu.Unlock()
		writeError(w, http.StatusBadRequest, "invalid verification code")
		return
	}
	acct.user.IsVerified = true
	delete(s.otps, email)
	user := acct.user
	s.mu.Unlock()

	token, err := s.issueToken(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	s.logger.Info("verified", "email", email)
	writeData(w, http.StatusOK, authapi.AuthData{User: user, Token: token})
}

// ResendOTP handles POST /auth/resend-otp.
func (s *Service) ResendOTP(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[authapi.ResendOTPRequest](w, r)
	if !ok {
		return
	}
	email := authapi.NormalizeEmail(req.Email)

	s.mu.Lock()
	acct, exists := s.accounts[email]
	if !exists || acct.user.IsVerified {
		s.mu.Unlock()
		writeError(w, http.StatusBadRequest, "no pending verification")
		return
	}
	s.otps[email] = s.newOTP()
	s.mu.Unlock()

	writeOK(w, "verification code sent")
}

// ForgotPassword handles POST /auth/forgot-password. Always 200 so the
// endpoint cannot be used to enumerate accounts.
func (s *Service) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if _, ok := decodeJSON[authapi.ForgotPasswordRequest](w, r); !ok {
		return
	}
	writeOK(w, "if the address is registered, a reset link has been sent")
}

// RefreshToken handles POST /auth/refresh-token. Only a currently valid
// token can be exchanged.
func (s *Service) RefreshToken(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[authapi.RefreshTokenRequest](w, r)
	if !ok {
		return
	}
	acct, _, err := s.authenticate(req.Token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	token, err := s.issueToken(acct.user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	writeData(w, http.StatusOK, authapi.AuthData{User: acct.user, Token: token})
}

// Logout handles POST /auth/logout. The presented token's ID is revoked.
func (s *Service) Logout(w http.ResponseWriter, r *http.Request) {
	_, jti, err := s.authenticate(bearerToken(r))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	s.mu.Lock()
	s.revoked[jti] = true
	s.mu.Unlock()
	writeOK(w, "logged out")
}

// Profile handles GET /users/profile.
func (s *Service) Profile(w http.ResponseWriter, r *http.Request) {
	acct, _, err := s.authenticate(bearerToken(r))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	writeData(w, http.StatusOK, acct.user)
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(h, "Bearer "); ok {
		return after
	}
	return ""
}

func (s *Service) issueToken(userID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// authenticate validates a token and resolves its account. Returns the
// token's jti so logout can revoke it.
func (s *Service) authenticate(token string) (*account, string, error) {
	if token == "" {
		return nil, "", fmt.Errorf("missing token")
	}
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !parsed.Valid {
		return nil, "", fmt.Errorf("parsing token: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.revoked[claims.ID] {
		return nil, "", fmt.Errorf("token revoked")
	}
	for _, acct := range s.accounts {
		if acct.user.ID == claims.Subject {
			return acct, claims.ID, nil
		}
	}
	return nil, "", fmt.Errorf("unknown subject")
}

// newOTP returns a 6-digit code. Caller holds s.mu.
func (s *Service) newOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand is documented never to fail on supported platforms.
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64())
}
