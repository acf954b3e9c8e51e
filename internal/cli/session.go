// session.go implements "hueful login", "hueful logout" and "hueful whoami".
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hueful/hueful/internal/api"
	"github.com/hueful/hueful/internal/render"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session",
	Long: `Exchange a username and password for a bearer token. The token and
user profile are stored together in the local session database.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Long: `Show the stored user and what the bearer token claims. With --remote
the backend is asked who the token belongs to.`,
	Args: cobra.NoArgs,
	RunE: runWhoami,
}

var (
	usernameFlag string
	yesFlag      bool
	remoteFlag   bool
)

func init() {
	loginCmd.Flags().StringVarP(&usernameFlag, "username", "u", "", "Username (prompted when omitted)")
	logoutCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Do not ask for confirmation")
	whoamiCmd.Flags().BoolVar(&remoteFlag, "remote", false, "Ask the backend via /users/me")
}

// confirm asks a [y/N] question on cmd's streams. Anything but y or yes,
// including EOF, declines.
func confirm(cmd *cobra.Command, question string) bool {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s [y/N]: ", question)
	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	if answer != "y" && answer != "yes" {
		fmt.Fprintln(out, "Aborted.")
		return false
	}
	return true
}

func runLogin(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()
	reader := bufio.NewReader(cmd.InOrStdin())

	username := strings.TrimSpace(usernameFlag)
	if username == "" {
		fmt.Fprint(out, "Username: ")
		line, _ := reader.ReadString('\n')
		username = strings.TrimSpace(line)
	}
	if username == "" {
		return fmt.Errorf("username is required")
	}

	fmt.Fprint(out, "Password: ")
	password, err := readPassword(cmd.InOrStdin(), reader)
	fmt.Fprintln(out)
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	if password == "" {
		return fmt.Errorf("password is required")
	}

	res, err := e.client.Login(context.Background(), username, password)
	if err != nil {
		return fmt.Errorf("login failed: %s", api.UserMessage(err))
	}
	if err := e.guard.Save(res.AccessToken, res.User); err != nil {
		return err
	}

	fmt.Fprintf(out, "Logged in as %s\n", render.UserBar(res.User))
	return nil
}

// readPassword reads without echo from a terminal, or a plain line otherwise.
func readPassword(in io.Reader, reader *bufio.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()
	u, ok := e.guard.User()
	if !ok || !e.guard.IsAuthenticated() {
		fmt.Fprintln(out, "Not logged in.")
		// Clear any half-written state anyway.
		return e.guard.Clear()
	}

	if !yesFlag && !confirm(cmd, fmt.Sprintf("Log out %s?", u.DisplayName())) {
		return nil
	}

	// An explicit logout needs no "please log in" hint.
	e.guard.SetNavigator(nil)
	if err := e.guard.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()
	if !e.guard.RequireAuth() {
		return shown(fmt.Errorf("not logged in"))
	}

	u, _ := e.guard.User()
	if remoteFlag {
		me, err := e.client.Me(context.Background())
		if err != nil {
			return reportAPIError(cmd.ErrOrStderr(), err, e.cfg.API.BaseURL)
		}
		u = *me
	}

	fmt.Fprintln(out, render.UserBar(u))
	if u.Username != u.DisplayName() {
		fmt.Fprintf(out, "Username:   %s\n", u.Username)
	}
	if u.Email != "" {
		fmt.Fprintf(out, "Email:      %s\n", u.Email)
	}
	fmt.Fprintf(out, "Backend:    %s\n", e.cfg.API.BaseURL)

	claims, err := e.guard.Claims()
	if err != nil {
		fmt.Fprintln(out, "Token:      opaque")
		return nil
	}
	if claims.Subject != "" {
		fmt.Fprintf(out, "Subject:    %s\n", claims.Subject)
	}
	if claims.HasExpiry {
		fmt.Fprintf(out, "Expires:    %s\n", render.Date(claims.ExpiresAt))
	}
	return nil
}
