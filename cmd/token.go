package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hourbook/database"
	"hourbook/middleware"
)

var tokenEmail string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a bearer token for a professional",
	Long: `token signs a bearer token for the professional with the given email,
valid for JWT_EXPIRATION. Use it in the Authorization header of API calls.`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenEmail, "email", database.DefaultAdvancedEmail, "Email of the professional")
}

func runToken(cmd *cobra.Command, args []string) error {
	env, err := bootstrap()
	if err != nil {
		return err
	}
	defer env.close()

	store := database.NewStore(env.db)
	professional, err := store.GetProfessionalByEmail(cmd.Context(), strings.ToLower(strings.TrimSpace(tokenEmail)))
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("no professional with email %q", tokenEmail)
	}
	if err != nil {
		return err
	}
	if !professional.IsActive {
		return fmt.Errorf("professional %q is inactive", tokenEmail)
	}

	auth := middleware.NewAuth(env.cfg.JWTSecret, env.cfg.JWTExpiration, store)
	token, err := auth.GenerateToken(&professional)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
