package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hueful/hueful/internal/api"
	"github.com/hueful/hueful/internal/session"
	"github.com/hueful/hueful/internal/tui"
)

// LoginCmd exchanges credentials for a token and stores the session.
// Returns LoginSuccessMsg on success, LoginErrorMsg otherwise.
func LoginCmd(client *api.Client, guard *session.Guard, username, password string) tea.Cmd {
	return func() tea.Msg {
		res, err := client.Login(context.Background(), username, password)
		if err != nil {
			return tui.LoginErrorMsg{Err: err}
		}
		if err := guard.Save(res.AccessToken, res.User); err != nil {
			return tui.LoginErrorMsg{Err: err}
		}
		return tui.LoginSuccessMsg{User: res.User}
	}
}

// LogoutCmd clears the session. The guard redirects through the Bridge.
func LogoutCmd(guard *session.Guard) tea.Cmd {
	return func() tea.Msg {
		if err := guard.Logout(); err != nil {
			return tui.StatusMsg{Text: err.Error(), IsError: true}
		}
		return nil
	}
}
