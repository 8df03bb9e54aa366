package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	jwt "github.com/cybergodev/jsonwebtoken"
	"github.com/cybergodev/jsonwebtoken/internal/logger"
	"github.com/cybergodev/jsonwebtoken/internal/security"
)

// minSecretLength is the HMAC secret size below which sign warns
const minSecretLength = 32

type signFlags struct {
	alg         string
	exp         string
	nbf         string
	jti         string
	kid         string
	generateJTI bool
	noTimestamp bool
	raw         bool
}

func (a *app) signCommand() *cobra.Command {
	var f signFlags

	cmd := &cobra.Command{
		Use:   "sign [payload]",
		Short: "Sign a payload and print the token",
		Long: `Sign a JSON object payload, given as an argument or on stdin, and print
the compact token on stdout.

With --raw the payload is signed byte for byte and claim flags are rejected.
Time spans accept plain seconds ("3600") or units ("90m", "2 days").`,
		Example: `  jwt sign --secret "$SECRET" --exp 1h --sub user-42 '{"role":"admin"}'
  echo '{"scope":"read"}' | jwt sign --alg RS256 --key-file private.pem --aud api`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSign(cmd, args, &f)
		},
	}

	cmd.Flags().StringVar(&f.alg, "alg", "", "Signing algorithm (default HS256)")
	cmd.Flags().String("secret", "", "HMAC secret")
	cmd.Flags().String("key-file", "", "PEM private key file")
	cmd.Flags().StringVar(&f.exp, "exp", "", "Expire the token after this span")
	cmd.Flags().StringVar(&f.nbf, "nbf", "", "Token becomes valid after this span")
	cmd.Flags().StringSlice("aud", nil, "Audience (repeatable)")
	cmd.Flags().String("iss", "", "Issuer")
	cmd.Flags().String("sub", "", "Subject")
	cmd.Flags().StringVar(&f.jti, "jti", "", "Token ID")
	cmd.Flags().BoolVar(&f.generateJTI, "generate-jti", false, "Set a random token ID")
	cmd.Flags().BoolVar(&f.noTimestamp, "no-timestamp", false, "Omit iat")
	cmd.Flags().StringVar(&f.kid, "kid", "", "Key ID header")
	cmd.Flags().BoolVar(&f.raw, "raw", false, "Sign the payload bytes as they are")

	cmd.MarkFlagsMutuallyExclusive("jti", "generate-jti")
	cmd.MarkFlagsMutuallyExclusive("secret", "key-file")
	return cmd
}

func (a *app) runSign(cmd *cobra.Command, args []string, f *signFlags) error {
	log := a.log.For(logger.ComponentSign)

	payload, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	opts, err := a.signOptions(cmd, f)
	if err != nil {
		return err
	}

	key, source, err := loadKey(cmd, a.cfg)
	if err != nil {
		return err
	}
	defer security.ZeroBytes(key)

	alg := opts.Algorithm
	if alg == "" {
		alg = jwt.HS256
	}
	if strings.HasPrefix(string(alg), "HS") && len(key) > 0 && security.IsWeakSecret(key, minSecretLength) {
		log.Warn("weak HMAC secret", "min_length", minSecretLength)
	}

	var token string
	if f.raw {
		token, err = jwt.SignRaw(payload, key, opts)
	} else {
		var claims jwt.Claims
		claims, err = decodeClaims(payload)
		if err != nil {
			return err
		}
		token, err = jwt.Sign(claims, key, opts)
	}
	if err != nil {
		return err
	}

	log.Debug("token signed", logger.Algorithm(alg), logger.KeyID(opts.KeyID), logger.Source(source))
	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}

// signOptions merges flags with the configuration. Configured claim defaults
// are not applied to raw payloads; explicit claim flags still are, so that
// SignRaw reports them.
func (a *app) signOptions(cmd *cobra.Command, f *signFlags) (jwt.SignOptions, error) {
	opts := jwt.SignOptions{
		Algorithm:   jwt.Algorithm(a.cfg.Algorithm),
		KeyID:       f.kid,
		JWTID:       f.jti,
		NoTimestamp: f.noTimestamp,
	}
	if cmd.Flags().Changed("alg") {
		opts.Algorithm = jwt.Algorithm(f.alg)
	}
	if f.generateJTI {
		opts.JWTID = jwt.NewID()
	}

	useConfig := func(flag string) bool {
		return !f.raw || cmd.Flags().Changed(flag)
	}
	if useConfig("aud") {
		opts.Audience = a.cfg.Audience
	}
	if useConfig("iss") {
		opts.Issuer = a.cfg.Issuer
	}
	if useConfig("sub") {
		opts.Subject = a.cfg.Subject
	}

	var err error
	if f.exp != "" {
		if opts.ExpiresIn, err = parseSpan(f.exp); err != nil {
			return opts, err
		}
	}
	if f.nbf != "" {
		if opts.NotBefore, err = parseSpan(f.nbf); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

// decodeClaims parses a JSON object payload keeping numbers exact
func decodeClaims(payload []byte) (jwt.Claims, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var claims jwt.Claims
	if err := dec.Decode(&claims); err != nil || claims == nil {
		return nil, fmt.Errorf("payload must be a JSON object (use --raw to sign other payloads)")
	}
	if dec.More() {
		return nil, fmt.Errorf("payload must be a single JSON object")
	}
	return claims, nil
}
