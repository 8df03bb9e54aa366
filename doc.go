// Package jwt signs, verifies and decodes JSON Web Tokens in JWS compact form.
//
// Supported algorithms are HS256/384/512 (HMAC), RS256/384/512 (RSASSA-PKCS1-v1_5),
// ES256/384/512 (ECDSA on P-256, P-384 and P-521) and the unsigned "none", which
// must be requested explicitly on both sides.
//
// # Signing
//
//	token, err := jwt.Sign(jwt.Claims{"user": "alice"}, secret, jwt.SignOptions{
//		ExpiresIn: jwt.Span("2h"),
//		Issuer:    "auth.example.com",
//	})
//
// Keys are raw secrets for HMAC and PEM blocks for RSA and ECDSA. SignRaw signs a
// payload verbatim and therefore rejects options that set registered claims.
//
// # Verification
//
// Verify moves a token through a fixed sequence of checks and stops at the first
// failure: decode, algorithm allow-list, signature, then the registered claims
// nbf, exp, aud, iss, sub, jti and maxAge.
//
//	claims, err := jwt.Verify(token, secret, jwt.VerifyOptions{
//		Algorithms: []jwt.Algorithm{jwt.HS256},
//		Audience:   []string{"api"},
//	})
//	switch {
//	case errors.Is(err, jwt.ErrExpired):
//		// refresh
//	case err != nil:
//		// reject
//	}
//
// When Algorithms is empty the allow-list is derived from the key so that a
// public key can never be used as an HMAC secret.
//
// # Decoding
//
// Decode returns the header, payload and signature of a token without checking
// anything. Its result is untrusted.
//
// # Errors
//
// Every failure is an *Error whose Kind distinguishes configuration mistakes,
// malformed tokens, invalid tokens, and the two time-based rejections. Use
// errors.Is with ErrConfig, ErrMalformed, ErrInvalid, ErrNotBefore or ErrExpired;
// ErrInvalid also matches the time-based kinds.
//
// # Deferred calls
//
// SignAsync and VerifyAsync return a Future; SignCallback and VerifyCallback
// report through a callback. Both resolve exactly once.
package jwt
