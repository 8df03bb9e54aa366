package cli

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	jwt "github.com/cybergodev/jsonwebtoken"
	"github.com/cybergodev/jsonwebtoken/internal/config"
)

// maxInput bounds what is read from stdin
const maxInput = 1 << 20

var errNoInput = errors.New("no input: pass it as an argument or on stdin")

// readInput returns args[0] or, without arguments, all of stdin
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) > 0 {
		return []byte(args[0]), nil
	}
	data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), maxInput))
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errNoInput
	}
	return data, nil
}

// readToken is readInput with surrounding whitespace removed
func readToken(cmd *cobra.Command, args []string) (string, error) {
	data, err := readInput(cmd, args)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// loadKey returns the configured key material and a description of where it came from.
// No key at all is allowed so that unsigned tokens can be handled. An explicit
// --secret wins over a configured key file.
func loadKey(cmd *cobra.Command, cfg *config.Config) ([]byte, string, error) {
	if cfg.Secret != "" && (cfg.KeyFile == "" || cmd.Flags().Changed("secret")) {
		return []byte(cfg.Secret), "secret", nil
	}
	if cfg.KeyFile == "" {
		return nil, "", nil
	}
	key, err := os.ReadFile(cfg.KeyFile)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read key file: %w", err)
	}
	return key, cfg.KeyFile, nil
}

// parseSpan reads a command-line time span. Plain integers are seconds,
// anything else uses the span grammar ("90m", "2 days").
func parseSpan(s string) (jwt.TimeSpan, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return jwt.Seconds(n), nil
	}
	if _, err := jwt.ParseTimeSpan(s); err != nil {
		return jwt.TimeSpan{}, err
	}
	return jwt.Span(s), nil
}

// tokenView is what decode and verify --complete print
type tokenView struct {
	Header    jwt.Header `json:"header"`
	Payload   any        `json:"payload"`
	Signature string     `json:"signature"`
}

func newTokenView(t *jwt.Token) tokenView {
	var payload any = string(t.Payload)
	if t.Claims != nil {
		payload = t.Claims
	}
	return tokenView{
		Header:    t.Header,
		Payload:   payload,
		Signature: base64.RawURLEncoding.EncodeToString(t.Signature),
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
