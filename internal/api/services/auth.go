package services

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/rohits-web03/lyricjournal/internal/errs"
	"github.com/rohits-web03/lyricjournal/internal/models"
)

const (
	minUsernameLen = 3
	minPasswordLen = 4
)

const (
	msgCredentialsRequired = "Username and password required"
	msgCredentialsLength   = "Username must be 3+ characters, password 4+ characters"
	msgUsernameTaken       = "Username already exists"
	msgInvalidCredentials  = "Invalid username or password"
	msgTokenRequired       = "Access token required"
	msgTokenInvalid        = "Invalid token"
)

// ErrCredentialsRequired is the error for a request without username or password.
func ErrCredentialsRequired() error { return errs.Validation(msgCredentialsRequired) }

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token    string
	Username string
}

// Claims is the payload of an issued bearer token. Username is the lowercase
// document key of the account.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthService registers accounts, checks credentials and issues and verifies
// HS256 bearer tokens.
type AuthService struct {
	store      DocumentStore
	signKey    []byte
	tokenTTL   time.Duration
	bcryptCost int
	now        func() time.Time
	dummyHash  []byte
}

// AuthOption customises an AuthService.
type AuthOption func(*AuthService)

// WithBcryptCost overrides the bcrypt work factor (tests use bcrypt.MinCost).
func WithBcryptCost(cost int) AuthOption {
	return func(s *AuthService) { s.bcryptCost = cost }
}

// WithAuthClock overrides the time source used for token timestamps.
func WithAuthClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

// NewAuthService builds an AuthService. A zero tokenTTL issues tokens without
// an expiry.
func NewAuthService(store DocumentStore, signKey []byte, tokenTTL time.Duration, opts ...AuthOption) *AuthService {
	s := &AuthService{
		store:      store,
		signKey:    signKey,
		tokenTTL:   tokenTTL,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	// Compared against when the user does not exist, so a miss costs about as
	// much as a wrong password.
	s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("lyricjournal"), s.bcryptCost)
	return s
}

// Register creates an account and its empty lyric partition and returns a
// token for it. Username returned is the casing given by the caller.
func (s *AuthService) Register(ctx context.Context, username, password string) (AuthResult, error) {
	if username == "" || password == "" {
		return AuthResult{}, ErrCredentialsRequired()
	}
	if utf8.RuneCountInString(username) < minUsernameLen || utf8.RuneCountInString(password) < minPasswordLen {
		return AuthResult{}, errs.Validation(msgCredentialsLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return AuthResult{}, errs.Validation("Password must be at most 72 bytes")
		}
		return AuthResult{}, err
	}

	key := userKey(username)
	err = s.store.Update(ctx, func(doc *models.Document) error {
		if _, exists := doc.Users[key]; exists {
			return errs.Conflict(msgUsernameTaken)
		}
		doc.Users[key] = models.User{
			Username:     username,
			PasswordHash: string(hash),
			CreatedAt:    s.now().UTC(),
		}
		doc.Lyrics[key] = []models.LyricEntry{}
		return nil
	})
	if err != nil {
		return AuthResult{}, err
	}

	token, err := s.issueToken(key)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, Username: username}, nil
}

// Login checks credentials. A missing account and a wrong password produce the
// same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (AuthResult, error) {
	if username == "" || password == "" {
		return AuthResult{}, ErrCredentialsRequired()
	}

	key := userKey(username)
	var (
		user  models.User
		found bool
	)
	err := s.store.View(ctx, func(doc *models.Document) error {
		user, found = doc.Users[key]
		return nil
	})
	if err != nil {
		return AuthResult{}, err
	}

	if !found {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return AuthResult{}, errs.Auth(errs.AuthCredentials, msgInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return AuthResult{}, errs.Auth(errs.AuthCredentials, msgInvalidCredentials)
	}

	token, err := s.issueToken(key)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, Username: user.Username}, nil
}

// VerifyToken checks a bearer token and returns the lowercase username it was
// issued for.
func (s *AuthService) VerifyToken(token string) (string, error) {
	if token == "" {
		return "", errs.Auth(errs.AuthMissing, msgTokenRequired)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.tokenTTL > 0 {
		opts = append(opts, jwt.WithExpirationRequired())
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.signKey, nil
	}, opts...)
	if err != nil || !parsed.Valid || claims.Username == "" {
		return "", errs.Auth(errs.AuthInvalid, msgTokenInvalid)
	}
	return claims.Username, nil
}

func (s *AuthService) issueToken(key string) (string, error) {
	now := s.now()
	claims := Claims{
		Username: key,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.tokenTTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.tokenTTL))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signKey)
}
