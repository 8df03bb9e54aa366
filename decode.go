package jwt

import (
	"github.com/cybergodev/jsonwebtoken/internal/core"
)

// Decode splits and decodes a token without checking its signature or claims.
// The result is untrusted; use Verify before acting on it.
//
// Only structural problems fail: segment count, base64url, a header that is not
// a JSON object, or a payload that is not a JSON object when opts.JSON is set.
func Decode(token string, opts DecodeOptions) (*Token, error) {
	parsed, header, claims, err := decodeToken(token, opts.JSON)
	if err != nil {
		return nil, err
	}
	return &Token{
		Header:       header,
		Claims:       claims,
		Payload:      parsed.Payload,
		Signature:    parsed.Signature,
		SigningInput: parsed.SigningInput,
		Raw:          token,
	}, nil
}

func decodeToken(token string, requireJSON bool) (*core.Parsed, Header, Claims, error) {
	parsed, err := core.Parse(token)
	if err != nil {
		return nil, nil, nil, malformed("jwt malformed", err)
	}

	header, err := parsed.DecodeHeader()
	if err != nil {
		return nil, nil, nil, malformed("jwt malformed", err)
	}

	claims, ok := parsed.DecodePayload()
	if !ok && requireJSON {
		return nil, nil, nil, malformed("jwt payload is not a JSON object", nil)
	}

	return parsed, Header(header), Claims(claims), nil
}
