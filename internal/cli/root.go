package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"blogia/blog-client/internal/apiclient"
	"blogia/blog-client/internal/config"
	"blogia/blog-client/internal/observability"
	"blogia/blog-client/internal/session"
	"blogia/blog-client/internal/tokenstore"
)

type rootFlags struct {
	baseURL    string
	tokenStore string
	timeout    time.Duration
	verbose    bool
}

// runtime is what every command works against: the API client and the
// session manager sharing one token store.
type runtime struct {
	client  *apiclient.Client
	session *session.Manager
	closer  io.Closer
}

type opener func(ctx context.Context, f rootFlags) (*runtime, error)

type cliApp struct {
	open  opener
	flags rootFlags
	rt    *runtime
}

// Execute runs blogctl and returns the process exit code.
func Execute(ctx context.Context) int {
	return run(ctx, NewRootCommand(), os.Stderr)
}

func run(ctx context.Context, root *cobra.Command, stderr io.Writer) int {
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "error:", describe(err))
		return 1
	}
	return 0
}

func NewRootCommand() *cobra.Command {
	return newRootCommand(openRuntime)
}

func newRootCommand(open opener) *cobra.Command {
	a := &cliApp{open: open}

	root := &cobra.Command{
		Use:           "blogctl",
		Short:         "Command-line client for the Blogia blogging platform",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := a.open(cmd.Context(), a.flags)
			if err != nil {
				return err
			}
			a.rt = rt
			if _, err := rt.client.LoadToken(cmd.Context()); err != nil {
				return err
			}
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.rt != nil && a.rt.closer != nil {
				return a.rt.closer.Close()
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.baseURL, "base-url", "", "backend base URL (overrides API_BASE_URL)")
	pf.StringVar(&a.flags.tokenStore, "token-store", "", "token store backend: memory, file, postgres or redis (overrides TOKEN_STORE)")
	pf.DurationVar(&a.flags.timeout, "timeout", 0, "per-request timeout, 0 for none (overrides API_TIMEOUT_SEC)")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		a.loginCommand(),
		a.logoutCommand(),
		a.registerCommand(),
		a.whoamiCommand(),
		a.postsCommand(),
		a.commentsCommand(),
		a.dashboardCommand(),
		a.analyticsCommand(),
		a.subscribersCommand(),
		a.subscribeCommand(),
		a.unsubscribeCommand(),
		a.likeCommand(),
		a.viewCommand(),
		a.shareCommand(),
		a.statsCommand(),
		a.settingsCommand(),
		a.profileCommand(),
		a.passwordCommand(),
		a.accountCommand(),
	)
	return root
}

func openRuntime(ctx context.Context, f rootFlags) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if f.baseURL != "" {
		cfg.Client.BaseURL = f.baseURL
	}
	if f.tokenStore != "" {
		cfg.TokenStore.Backend = f.tokenStore
	}
	if f.timeout > 0 {
		cfg.Client.Timeout = f.timeout
	}

	level := "warn"
	if f.verbose {
		level = "debug"
	}
	logger := observability.NewLogger(level)

	store, closer, err := tokenstore.Open(ctx, cfg.TokenStore)
	if err != nil {
		return nil, fmt.Errorf("open token store: %w", err)
	}
	client, err := apiclient.New(cfg.Client.BaseURL, store,
		apiclient.WithTimeout(cfg.Client.Timeout),
		apiclient.WithLogger(logger),
	)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	return &runtime{
		client:  client,
		session: session.New(client, store, session.WithLogger(logger)),
		closer:  closer,
	}, nil
}
