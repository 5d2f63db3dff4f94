package service

import "passport/internal/domain/entity"

// TokenCodec signs and verifies the compact access-token format. It
// abstracts the wire format away from the use cases: they deal in claims,
// never in token segments.
type TokenCodec interface {
	// Encode serializes and signs the claims. Deterministic for equal
	// claims under the same secret.
	Encode(claims *entity.AccessClaims) (string, error)

	// Decode verifies the token and returns its claims. Any defect in
	// structure or signature yields an error, never partial claims.
	Decode(token string) (*entity.AccessClaims, error)

	// Verify reports whether the token carries a genuine signature.
	Verify(token string) bool
}
