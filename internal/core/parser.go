package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformed wraps every structural decoding failure
	ErrMalformed = errors.New("malformed token")

	errEmptyToken         = fmt.Errorf("%w: empty token", ErrMalformed)
	errInvalidTokenFormat = fmt.Errorf("%w: invalid token format", ErrMalformed)
)

// split3 cuts s into exactly three parts. A fourth separator is a format error.
func split3(s string, sep byte) (string, string, string, bool) {
	sLen := len(s)
	first := -1
	second := -1

	for i := 0; i < sLen; i++ {
		if s[i] == sep {
			switch {
			case first == -1:
				first = i
			case second == -1:
				second = i
			default:
				return "", "", "", false
			}
		}
	}

	if first == -1 || second == -1 {
		return "", "", "", false
	}

	return s[:first], s[first+1 : second], s[second+1:], true
}

// Parse splits a compact token and decodes its segments without verifying anything.
// The header must be a JSON object; the payload is returned as raw bytes.
func Parse(tokenString string) (*Parsed, error) {
	if len(tokenString) == 0 {
		return nil, errEmptyToken
	}

	part1, part2, part3, ok := split3(tokenString, separator)
	if !ok {
		return nil, errInvalidTokenFormat
	}

	headerJSON, err := DecodeSegment(part1)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode header: %v", ErrMalformed, err)
	}
	if !isJSONObject(headerJSON) {
		return nil, fmt.Errorf("%w: header is not a JSON object", ErrMalformed)
	}

	// An empty payload segment encodes an empty payload
	payload := []byte{}
	if part2 != "" {
		payload, err = DecodeSegment(part2)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to decode payload: %v", ErrMalformed, err)
		}
	}

	parsed := &Parsed{
		Raw:          tokenString,
		HeaderJSON:   headerJSON,
		Payload:      payload,
		RawSignature: part3,
		SigningInput: tokenString[:len(part1)+1+len(part2)],
	}

	// A bad signature segment is a verification failure, not a structural one
	parsed.Signature, parsed.SignatureErr = DecodeSignature(part3)

	return parsed, nil
}

// DecodeHeader unmarshals the header of a parsed token
func (p *Parsed) DecodeHeader() (map[string]any, error) {
	var header map[string]any
	if err := json.Unmarshal(p.HeaderJSON, &header); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal header: %v", ErrMalformed, err)
	}
	return header, nil
}

// DecodePayload unmarshals the payload as a JSON object.
// ok is false when the payload is not a JSON object.
func (p *Parsed) DecodePayload() (claims map[string]any, ok bool) {
	if !isJSONObject(p.Payload) {
		return nil, false
	}
	if err := json.Unmarshal(p.Payload, &claims); err != nil {
		return nil, false
	}
	return claims, true
}

// Encode builds the signing input from a header and an already serialized payload
func Encode(header map[string]any, payload []byte) (string, error) {
	headerJSON, err := MarshalJSON(header)
	if err != nil {
		return "", fmt.Errorf("failed to marshal header: %w", err)
	}

	return EncodeSegment(headerJSON) + string(separator) + EncodeSegment(payload), nil
}

// Join appends the encoded signature to a signing input
func Join(signingInput string, signature []byte) string {
	encoded := EncodeSegment(signature)

	tokenBuf := make([]byte, len(signingInput)+1+len(encoded))
	copy(tokenBuf, signingInput)
	tokenBuf[len(signingInput)] = separator
	copy(tokenBuf[len(signingInput)+1:], encoded)

	return string(tokenBuf)
}

func isJSONObject(data []byte) bool {
	trimmed := strings.TrimSpace(string(data))
	return len(trimmed) >= 2 && trimmed[0] == '{' && json.Valid(data)
}
