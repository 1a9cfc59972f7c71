package token

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/orris-inc/backoffice/internal/infrastructure/auth"
	"github.com/orris-inc/backoffice/internal/infrastructure/config"
	"github.com/orris-inc/backoffice/internal/shared/authorization"
)

var (
	env    string
	userID uint
	role   string
	ttl    time.Duration
)

// NewCommand issues a bearer token for an operator or an integration. The
// CRM's own login flow is the usual source of tokens; this covers ops use.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API access token",
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().UintVar(&userID, "user-id", 0, "User ID the token is issued to (required)")
	cmd.Flags().StringVar(&role, "role", authorization.RoleUser.String(), "Role: admin, manager or user")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (default: auth.jwt.access_exp_minutes)")
	_ = cmd.MarkFlagRequired("user-id")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if userID == 0 {
		return fmt.Errorf("--user-id must be positive")
	}
	r := authorization.UserRole(role)
	if !r.IsValid() {
		return fmt.Errorf("unknown role %q", role)
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.AccessExpMinutes)
	token, exp, err := jwtService.Generate(userID, r, ttl)
	if err != nil {
		return err
	}

	cmd.Println(token)
	cmd.PrintErrf("expires at %s\n", exp.Format(time.RFC3339))
	return nil
}
