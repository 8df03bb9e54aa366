package core

// Parsed holds the three segments of a compact token and their decoded forms.
// Nothing in Parsed has been verified.
type Parsed struct {
	Raw          string
	HeaderJSON   []byte
	Payload      []byte
	Signature    []byte
	SignatureErr error // set when the signature segment is not canonical base64url
	RawSignature string
	SigningInput string
}

// separator joins the three segments of a compact token
const separator = '.'
