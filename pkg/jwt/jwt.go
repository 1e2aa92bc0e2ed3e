// Package jwt verifica los tokens que emite el backend de inventario. Este servicio no
// hace login: solo comprueba firma, emisor y vigencia, y expone los claims de la sesión.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultLeeway tolerancia de reloj entre el backend emisor y este servicio.
const DefaultLeeway = 30 * time.Second

var (
	// ErrEmptySecret el secreto HS256 no está configurado.
	ErrEmptySecret = errors.New("jwt: secret vacío")
	// ErrInvalidClaims el token es válido pero sus claims no tienen la forma esperada.
	ErrInvalidClaims = errors.New("jwt: claims inválidos")
)

// Claims claims estándar más los de la sesión del backend de inventario.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"` // "admin" | "analista" | "bodeguero" | "vendedor"
}

// Verifier valida tokens HS256 con un secreto compartido y, si se configura, un emisor fijo.
// Es seguro para uso concurrente.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewVerifier construye el verificador. Con issuer vacío no se comprueba el emisor.
func NewVerifier(secret, issuer string) (*Verifier, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(DefaultLeeway),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	return &Verifier{secret: []byte(secret), parser: jwt.NewParser(opts...)}, nil
}

// Verify devuelve los claims de un token firmado, vigente y del emisor esperado.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := v.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("jwt.Verify: %w", err)
	}
	if !token.Valid {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

// Generate firma un token HS256 con la misma forma que emite el backend.
// Lo usan las pruebas y las integraciones servidor a servidor.
func Generate(secret, userID, companyID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:    userID,
		CompanyID: companyID,
		Role:      role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
