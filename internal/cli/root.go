// Package cli implements the jwt command: sign, verify and decode tokens from a shell.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cybergodev/jsonwebtoken/internal/config"
	"github.com/cybergodev/jsonwebtoken/internal/logger"
)

// app carries the state shared by all subcommands of one invocation
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	log     *logger.Logger
	stderr  io.Writer
}

// Run executes the jwt command with args and returns the process exit status
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{v: config.InitViper(), stderr: stderr}

	root, err := a.rootCommand()
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	root.SetArgs(args)
	if stdin != nil {
		root.SetIn(stdin)
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err = root.Execute(); err != nil {
		if a.log != nil {
			a.log.Error("command failed", logger.Error(err), logger.Kind(err))
		} else {
			fmt.Fprintln(stderr, "Error:", err)
		}
		return 1
	}
	return 0
}

func (a *app) rootCommand() (*cobra.Command, error) {
	root := &cobra.Command{
		Use:   "jwt",
		Short: "Sign, verify and decode JSON Web Tokens",
		Long: `jwt signs, verifies and decodes JSON Web Tokens in compact JWS form.

Keys come from --secret (HMAC) or --key-file (PEM). Defaults for the
algorithm, issuer, audience, subject, key and clock tolerance can be set in
jwt.yaml or through JWT_* environment variables.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./jwt.yaml)")
	if err := config.BindFlags(root, a.v); err != nil {
		return nil, err
	}

	root.AddCommand(a.signCommand(), a.verifyCommand(), a.decodeCommand())
	return root, nil
}

// setup loads the configuration for the command being run and creates the logger
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	}
	if err := config.BindCommandFlags(cmd, a.v); err != nil {
		return err
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := logger.ParseLevel(cfg.LogLevel)
	if f, ok := a.stderr.(*os.File); ok && f == os.Stderr {
		a.log = logger.New(logger.ComponentCLI, level)
	} else {
		a.log = logger.NewWithWriter(logger.ComponentCLI, a.stderr, level, false)
	}

	a.log.Debug("configuration loaded",
		"command", cmd.Name(),
		"config_file", a.v.ConfigFileUsed(),
		"log_level", level.String())
	return nil
}
