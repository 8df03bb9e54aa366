package cli

import (
	"github.com/spf13/cobra"

	jwt "github.com/cybergodev/jsonwebtoken"
	"github.com/cybergodev/jsonwebtoken/internal/logger"
	"github.com/cybergodev/jsonwebtoken/internal/security"
)

type verifyFlags struct {
	algs      []string
	jti       string
	maxAge    string
	ignoreExp bool
	ignoreNbf bool
	complete  bool
}

func (a *app) verifyCommand() *cobra.Command {
	var f verifyFlags

	cmd := &cobra.Command{
		Use:   "verify [token]",
		Short: "Verify a token and print its claims",
		Long: `Verify the algorithm, signature and registered claims of a token, given as an
argument or on stdin, and print its claims as JSON.

Without --alg the accepted algorithms follow the key: HS* for a secret, RS* or
ES* for a PEM key. With --complete the header and signature are printed too.`,
		Example: `  jwt verify --secret "$SECRET" --aud api "$TOKEN"
  jwt verify --key-file public.pem --alg RS256 --iss auth.example.com --complete < token.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runVerify(cmd, args, &f)
		},
	}

	cmd.Flags().StringSliceVar(&f.algs, "alg", nil, "Accepted algorithm (repeatable)")
	cmd.Flags().String("secret", "", "HMAC secret")
	cmd.Flags().String("key-file", "", "PEM public key, certificate or private key file")
	cmd.Flags().StringSlice("aud", nil, "Expected audience, any one must match (repeatable)")
	cmd.Flags().String("iss", "", "Expected issuer")
	cmd.Flags().String("sub", "", "Expected subject")
	cmd.Flags().StringVar(&f.jti, "jti", "", "Expected token ID")
	cmd.Flags().BoolVar(&f.ignoreExp, "ignore-exp", false, "Do not check exp")
	cmd.Flags().BoolVar(&f.ignoreNbf, "ignore-nbf", false, "Do not check nbf")
	cmd.Flags().Duration("clock-tolerance", 0, "Allowed clock skew for exp and nbf")
	cmd.Flags().StringVar(&f.maxAge, "max-age", "", "Reject tokens issued longer ago than this span")
	cmd.Flags().BoolVar(&f.complete, "complete", false, "Print header, payload and signature")

	cmd.MarkFlagsMutuallyExclusive("secret", "key-file")
	return cmd
}

func (a *app) runVerify(cmd *cobra.Command, args []string, f *verifyFlags) error {
	log := a.log.For(logger.ComponentVerify)

	token, err := readToken(cmd, args)
	if err != nil {
		return err
	}

	opts, err := a.verifyOptions(cmd, f)
	if err != nil {
		return err
	}

	key, source, err := loadKey(cmd, a.cfg)
	if err != nil {
		return err
	}
	defer security.ZeroBytes(key)

	if f.complete {
		t, err := jwt.VerifyToken(token, key, opts)
		if err != nil {
			return err
		}
		log.Debug("token verified", logger.Algorithm(jwt.Algorithm(t.Header.Alg())), logger.KeyID(t.Header.KeyID()), logger.Source(source))
		return writeJSON(cmd.OutOrStdout(), newTokenView(t))
	}

	claims, err := jwt.Verify(token, key, opts)
	if err != nil {
		return err
	}
	log.Debug("token verified", logger.Source(source), "claims", len(claims))
	return writeJSON(cmd.OutOrStdout(), claims)
}

func (a *app) verifyOptions(cmd *cobra.Command, f *verifyFlags) (jwt.VerifyOptions, error) {
	opts := jwt.VerifyOptions{
		Audience:         a.cfg.Audience,
		Subject:          a.cfg.Subject,
		JWTID:            f.jti,
		IgnoreExpiration: f.ignoreExp,
		IgnoreNotBefore:  f.ignoreNbf,
		ClockTolerance:   a.cfg.ClockTolerance,
	}

	switch {
	case cmd.Flags().Changed("alg"):
		for _, alg := range f.algs {
			opts.Algorithms = append(opts.Algorithms, jwt.Algorithm(alg))
		}
	case a.cfg.Algorithm != "":
		opts.Algorithms = []jwt.Algorithm{jwt.Algorithm(a.cfg.Algorithm)}
	}

	if a.cfg.Issuer != "" {
		opts.Issuer = []string{a.cfg.Issuer}
	}

	if f.maxAge != "" {
		span, err := parseSpan(f.maxAge)
		if err != nil {
			return opts, err
		}
		opts.MaxAge = span
	}
	return opts, nil
}
