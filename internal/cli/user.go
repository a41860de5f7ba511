package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ehtishamsajjad/tm/internal/auth"
)

func newUserCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage API users",
	}
	cmd.AddCommand(newUserAddCmd(st), newUserTokenCmd(st))
	return cmd
}

func newUserAddCmd(st *state) *cobra.Command {
	var name, username string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user and print its id and API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name is required")
			}
			if err := st.cfg.RequireHTTP(); err != nil {
				return err
			}
			a, err := newApp(st.cfg, st.log)
			if err != nil {
				return err
			}
			defer a.Close()

			user, err := a.users.Create(cmd.Context(), strings.TrimSpace(name), "", strings.TrimSpace(username))
			if err != nil {
				return err
			}
			token, err := auth.NewIssuer(st.cfg.JWTSecret, st.cfg.TokenTTL).Issue(user.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id: %s\n", user.ID)
			fmt.Fprintf(out, "token: %s\n", token)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&username, "username", "", "optional handle")
	return cmd
}

func newUserTokenCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "token ID",
		Short: "Issue a fresh API token for an existing user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.cfg.RequireHTTP(); err != nil {
				return err
			}
			a, err := newApp(st.cfg, st.log)
			if err != nil {
				return err
			}
			defer a.Close()

			user, err := a.users.FindByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			token, err := auth.NewIssuer(st.cfg.JWTSecret, st.cfg.TokenTTL).Issue(user.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}
