package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hueful/hueful/internal/api"
	"github.com/hueful/hueful/internal/config"
	"github.com/hueful/hueful/internal/log"
	"github.com/hueful/hueful/internal/render"
	"github.com/hueful/hueful/internal/session"
	"github.com/hueful/hueful/internal/storage"
)

// env is everything a command needs, opened once per invocation.
type env struct {
	cfg    *config.Config
	home   string
	logger *log.Logger
	store  *storage.SQLiteStore
	guard  *session.Guard
	client *api.Client
}

// openEnv loads .env, config and the session database. Navigation and
// notices go to cmd's stderr until a surface replaces them.
func openEnv(cmd *cobra.Command) (*env, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	home, err := config.HomeDir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(home)
	if err != nil {
		return nil, err
	}
	if apiURLFlag != "" {
		cfg.API.BaseURL = strings.TrimRight(apiURLFlag, "/")
	}

	logger, err := log.NewLogger(home)
	if err != nil {
		return nil, err
	}
	store, err := storage.NewSQLiteStore(cfg.StoragePath(home))
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.API.RequestTimeout()}
	guard := session.NewGuard(store, session.Options{
		HTTPClient:  httpClient,
		Navigator:   stderrNavigator(cmd.ErrOrStderr()),
		Notifier:    stderrNotifier(cmd.ErrOrStderr()),
		Logger:      logger,
		CheckExpiry: cfg.Session.CheckExpiry,
	})
	client := api.New(guard, api.Options{
		BaseURL:    cfg.API.BaseURL,
		Method:     cfg.API.AnalysisMethod,
		HTTPClient: httpClient,
		Logger:     logger,
	})

	return &env{
		cfg:    cfg,
		home:   home,
		logger: logger,
		store:  store,
		guard:  guard,
		client: client,
	}, nil
}

// Close releases the session database.
func (e *env) Close() error {
	return e.store.Close()
}

// MsgLoginRequired tells one-shot users how to get a session.
const MsgLoginRequired = "Not logged in. Run `hueful login` first."

func stderrNavigator(w io.Writer) session.Navigator {
	return session.NavigatorFunc(func() {
		fmt.Fprintln(w, MsgLoginRequired)
	})
}

func stderrNotifier(w io.Writer) session.Notifier {
	return session.NotifierFunc(func(message string) {
		fmt.Fprintln(w, message)
	})
}

// shownError marks an error whose message already reached the user.
type shownError struct {
	err error
}

func (e *shownError) Error() string { return e.err.Error() }
func (e *shownError) Unwrap() error { return e.err }

func shown(err error) error {
	if err == nil {
		return nil
	}
	return &shownError{err: err}
}

// reportAPIError prints err with remediation hints and marks it shown.
// Session errors pass through; the guard already told the user.
func reportAPIError(w io.Writer, err error, baseURL string) error {
	if session.IsSessionError(err) {
		return err
	}
	fmt.Fprintln(w, render.Status(api.UserMessage(err), true, api.Hints(err, baseURL)))
	return shown(err)
}
