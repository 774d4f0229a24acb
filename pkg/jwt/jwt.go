// Package jwt emite y valida los tokens de acceso HS256 de la API.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken agrupa cualquier fallo al decodificar: firma, estructura o expiración.
var ErrInvalidToken = errors.New("token inválido o expirado")

// Claims datos extraídos de un token válido.
type Claims struct {
	Subject   string // username
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Codec emite y valida tokens HS256 firmados con el secreto del servidor.
// No guarda estado mutable: el resultado depende solo de la entrada, el secreto y el reloj.
type Codec struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// Option ajusta el codec (reloj inyectable para tests).
type Option func(*Codec)

// WithClock reemplaza time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// NewCodec construye el codec. El secreto no puede estar vacío y el TTL debe ser positivo.
func NewCodec(secret, issuer string, ttl time.Duration, opts ...Option) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("jwt: ttl debe ser positivo")
	}
	c := &Codec{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Issue genera un token con sub=username, iat=ahora y exp=iat+TTL.
func (c *Codec) Issue(subject string) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("jwt: subject vacío")
	}
	now := c.now()
	claims := jwt.RegisteredClaims{
		Issuer:    c.issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode valida firma, estructura y expiración y devuelve los claims.
// Un token cuyo exp ya pasó (o es exactamente ahora) falla siempre, aunque la firma sea válida.
func (c *Codec) Decode(tokenString string) (Claims, error) {
	var rc jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &rc, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || rc.Subject == "" || rc.ExpiresAt == nil {
		return Claims{}, ErrInvalidToken
	}
	// jwt/v5 acepta exp == ahora; aquí ese instante ya cuenta como expirado.
	if !c.now().Before(rc.ExpiresAt.Time) {
		return Claims{}, ErrInvalidToken
	}
	out := Claims{Subject: rc.Subject, ExpiresAt: rc.ExpiresAt.Time}
	if rc.IssuedAt != nil {
		out.IssuedAt = rc.IssuedAt.Time
	}
	return out, nil
}

// TTL devuelve la vigencia configurada.
func (c *Codec) TTL() time.Duration { return c.ttl }
