package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/me/civicflow/internal/access"
	"github.com/me/civicflow/internal/tokenstore"
	"github.com/me/civicflow/pkg/model"
)

func newLoginCmd() *cobra.Command {
	var phone, password string
	var remember bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the console",
		Long: `Sign in with a phone number and password. The session is kept until
the OS login session ends, or across restarts with --remember.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			var err error
			if phone == "" {
				if phone, err = prompt(cmd, in, "Phone number: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = promptSecret(cmd, in, "Password: "); err != nil {
					return err
				}
			}
			var missing []string
			if phone == "" {
				missing = append(missing, "phoneNumber")
			}
			if password == "" {
				missing = append(missing, "password")
			}
			if len(missing) > 0 {
				return model.Required("login", missing...)
			}

			sess, err := app.Login(cmd.Context(), phone, password, remember)
			if err != nil {
				return err
			}

			landing := access.PolicyFor(sess.User.Role).Default
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s); session kept in %s storage.\n",
				sess.User.Name, sess.User.Role, sess.Tier)
			if landing == access.PathLogin {
				fmt.Fprintf(cmd.OutOrStdout(), "Role %s has no console views.\n", sess.User.Role)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Start at %s.\n", landing)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "Phone number (prompted if omitted)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted if omitted)")
	cmd.Flags().BoolVar(&remember, "remember", false, "Keep the session across restarts")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

type whoami struct {
	User       *model.Profile `json:"user"`
	Tier       model.Tier     `json:"tier"`
	SignedInAt *time.Time     `json:"signedInAt,omitempty"`
	ExpiresAt  time.Time      `json:"expiresAt"`
}

// writeTimes is implemented by storages that record when a key was set.
type writeTimes interface {
	UpdatedAt(key string) (time.Time, bool)
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, tier, ok := app.Tokens.Lookup()
			user := app.Tokens.CachedUser()
			if !ok || user == nil {
				return &RedirectError{Path: "whoami", Redirect: access.PathLogin}
			}
			exp, err := tokenstore.Expiry(token)
			if err != nil {
				return err
			}
			info := whoami{User: user, Tier: tier, ExpiresAt: exp}
			if wt, ok := app.Tokens.Tier(tier).(writeTimes); ok {
				if at, ok := wt.UpdatedAt(app.Tokens.Keys().Token); ok {
					info.SignedInAt = &at
				}
			}
			return render(cmd, info, func(w io.Writer) error {
				row(w, "NAME", user.Name)
				row(w, "ROLE", user.Role)
				row(w, "EMAIL", orDash(user.Email))
				row(w, "DEPARTMENT", orDash(user.Department))
				row(w, "STORAGE", tier)
				row(w, "SIGNED IN", ago(info.SignedInAt))
				row(w, "EXPIRES", ago(&exp))
				return nil
			})
		},
	}
}

func prompt(cmd *cobra.Command, in *bufio.Reader, label string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), label)
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptSecret reads without echo when stdin is a terminal.
func promptSecret(cmd *cobra.Command, in *bufio.Reader, label string) (string, error) {
	if cmd.InOrStdin() != os.Stdin || !isTerminal(os.Stdin.Fd()) {
		return prompt(cmd, in, label)
	}
	fmt.Fprint(cmd.ErrOrStderr(), label)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
