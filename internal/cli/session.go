package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/marketplace/internal/sqlite"
	"github.com/mesh-intelligence/marketplace/pkg/types"
)

// session identifies the logged-in user for one command. It is passed to
// handlers explicitly.
type session struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// credentials are the --username and --password flags of commands that
// act on behalf of a user.
type credentials struct {
	username string
	password string
}

func (c *credentials) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&c.username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&c.password, "password", "p", "", "password (prompted when omitted)")
}

// attach opens the marketplace named by the current configuration. The
// caller must Detach it.
func (a *app) attach() (*sqlite.Backend, error) {
	cfg, err := a.backendConfig()
	if err != nil {
		return nil, err
	}
	b := sqlite.NewBackend(sqlite.WithLogger(a.log))
	if err := b.Attach(cfg); err != nil {
		return nil, fmt.Errorf("open marketplace: %w", err)
	}
	return b, nil
}

// login authenticates the credentials and returns the session for them.
func login(ctx context.Context, cmd *cobra.Command, m types.Marketplace, c credentials) (session, error) {
	if c.username == "" {
		return session{}, usageErrorf("--username is required")
	}
	password, err := passwordOrPrompt(cmd, c.password)
	if err != nil {
		return session{}, err
	}
	id, err := m.Authenticate(ctx, c.username, password)
	if err != nil {
		return session{}, err
	}
	return session{UserID: id, Username: c.username}, nil
}

// withSession attaches the marketplace, logs in and runs fn.
func (a *app) withSession(cmd *cobra.Command, c credentials, fn func(context.Context, *sqlite.Backend, session) error) error {
	ctx := cmd.Context()
	b, err := a.attach()
	if err != nil {
		return err
	}
	defer b.Detach()

	s, err := login(ctx, cmd, b, c)
	if err != nil {
		return err
	}
	return fn(ctx, b, s)
}

// withMarketplace attaches the marketplace and runs fn without logging in.
func (a *app) withMarketplace(cmd *cobra.Command, fn func(context.Context, *sqlite.Backend) error) error {
	ctx := cmd.Context()
	b, err := a.attach()
	if err != nil {
		return err
	}
	defer b.Detach()
	return fn(ctx, b)
}
