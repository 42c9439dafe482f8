package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/opencga/pkg/config"
	apierrors "github.com/matzehuels/opencga/pkg/errors"
	"github.com/matzehuels/opencga/pkg/session"
)

// sessionCommand creates the session command with subcommands.
func (c *CLI) sessionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage saved tokens",
		Long: `Save an OpenCGA token under a profile so later commands can use it.

Profiles are stored in ~/.config/opencga/sessions/ with owner-only
permissions. Select a profile with --profile; the default is "default".`,
	}

	cmd.AddCommand(c.sessionSaveCommand())
	cmd.AddCommand(c.sessionShowCommand())
	cmd.AddCommand(c.sessionListCommand())
	cmd.AddCommand(c.sessionClearCommand())

	return cmd
}

func (c *CLI) sessionSaveCommand() *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save the token from --token or $" + config.EnvToken,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			token := c.token
			if token == "" {
				token, _ = c.lookupEnv(config.EnvToken)
			}
			if token == "" {
				return apierrors.New(apierrors.ErrCodeInvalidInput, "no token given: pass --token or set %s", config.EnvToken)
			}

			cfg, _, err := c.flags.Resolve(cmd.Flags(), c.lookupEnv)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			sess, err := session.New(c.profile, cfg.REST.Host, token, ttl)
			if err != nil {
				return err
			}
			if sess.IsExpired() {
				return apierrors.Wrap(apierrors.ErrCodeSessionExpired, session.ErrExpired, "token expired on %s", sess.ExpiresAt.Format(time.RFC3339))
			}

			store, err := c.sessionStore()
			if err != nil {
				return err
			}
			if err := store.SaveSession(ctx, sess); err != nil {
				return fmt.Errorf("save session: %w", err)
			}

			printSuccess("Saved profile %s", StyleHighlight.Render(store.Profile()))
			printSession(sess)
			printFile(store.Path())
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "forget the token after this long (default: token expiry or never)")
	return cmd
}

func (c *CLI) sessionShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the selected profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.sessionStore()
			if err != nil {
				return err
			}
			sess, err := store.GetSession(cmd.Context())
			if err != nil {
				return err
			}
			if sess == nil {
				printInfo("No token saved for profile %s", StyleHighlight.Render(store.Profile()))
				printNextStep("Save one with", appName+" session save --token <token>")
				return nil
			}
			printKeyValue("Profile", store.Profile())
			printSession(sess)
			return nil
		},
	}
}

func (c *CLI) sessionListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.sessionStore()
			if err != nil {
				return err
			}
			profiles, err := store.Profiles(cmd.Context())
			if err != nil {
				return err
			}
			if len(profiles) == 0 {
				printInfo("No saved profiles")
				return nil
			}
			for _, p := range profiles {
				if p == store.Profile() {
					fmt.Fprintln(cmd.OutOrStdout(), "* "+p)
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "  "+p)
				}
			}
			return nil
		},
	}
}

func (c *CLI) sessionClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the selected profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.sessionStore()
			if err != nil {
				return err
			}
			if err := store.DeleteSession(cmd.Context()); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
			printSuccess("Cleared profile %s", StyleHighlight.Render(store.Profile()))
			return nil
		},
	}
}

func printSession(sess *session.Session) {
	printKeyValue("Host", sess.Host)
	if sess.User != "" {
		printKeyValue("User", sess.User)
	}
	printKeyValue("Token", maskToken(sess.Token))
	if sess.ExpiresAt.IsZero() {
		printKeyValue("Expires", "never")
	} else {
		printKeyValue("Expires", sess.ExpiresAt.Local().Format("Jan 2, 2006 15:04"))
	}
}
