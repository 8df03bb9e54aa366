package cli

import (
	"github.com/spf13/cobra"

	jwt "github.com/cybergodev/jsonwebtoken"
	"github.com/cybergodev/jsonwebtoken/internal/logger"
)

func (a *app) decodeCommand() *cobra.Command {
	var requireJSON bool

	cmd := &cobra.Command{
		Use:   "decode [token]",
		Short: "Print a token's header, payload and signature without verifying it",
		Long: `Decode a token, given as an argument or on stdin, and print its header,
payload and signature. Nothing is verified; do not trust the output.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := a.log.For(logger.ComponentDecode)

			token, err := readToken(cmd, args)
			if err != nil {
				return err
			}

			t, err := jwt.Decode(token, jwt.DecodeOptions{JSON: requireJSON})
			if err != nil {
				return err
			}

			log.Debug("token decoded", logger.Algorithm(jwt.Algorithm(t.Header.Alg())), "json", t.Claims != nil)
			return writeJSON(cmd.OutOrStdout(), newTokenView(t))
		},
	}

	cmd.Flags().BoolVar(&requireJSON, "json", false, "Require the payload to be a JSON object")
	return cmd
}
