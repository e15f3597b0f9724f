package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is the only failure callers ever see. Malformed, expired and
// wrongly signed tokens are deliberately indistinguishable.
var ErrInvalidToken = errors.New("token invalid")

type userClaim struct {
	ID uuid.UUID `json:"id"`
}

// Claims carries the user identity as a nested {"user":{"id":...}} object,
// the wire shape clients of this API already depend on.
type Claims struct {
	User userClaim `json:"user"`

	jwtlib.RegisteredClaims
}

type Service interface {
	Issue(userID uuid.UUID) (string, error)
	Verify(tokenString string) (uuid.UUID, error)
}

type HMACService struct {
	secret []byte
	ttl    time.Duration

	now func() time.Time
}

func NewHMACService(secret string, ttl time.Duration) *HMACService {
	return &HMACService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *HMACService) Issue(userID uuid.UUID) (string, error) {
	if len(s.secret) == 0 || s.ttl <= 0 {
		return "", ErrInvalidToken
	}

	now := s.now().UTC()
	c := Claims{
		User: userClaim{ID: userID},
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.ttl)),
			Subject:   userID.String(),
		},
	}

	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	return t.SignedString(s.secret)
}

func (s *HMACService) Verify(tokenString string) (uuid.UUID, error) {
	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(s.now),
	)

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(token *jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || tok == nil || !tok.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	if c.User.ID == uuid.Nil {
		return uuid.Nil, ErrInvalidToken
	}

	return c.User.ID, nil
}
