package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/opencga/pkg/buildinfo"
	"github.com/matzehuels/opencga/pkg/config"
	apierrors "github.com/matzehuels/opencga/pkg/errors"
	"github.com/matzehuels/opencga/pkg/observability"
	"github.com/matzehuels/opencga/pkg/rest"
	"github.com/matzehuels/opencga/pkg/rest/operation"
	"github.com/matzehuels/opencga/pkg/session"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "opencga"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	flags   config.Flags
	token   string
	profile string

	// Replaced in tests.
	lookupEnv   func(string) (string, bool)
	interactive func() bool
	sessionDir  string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:      newLogger(w, level),
		lookupEnv:   os.LookupEnv,
		interactive: isInteractive,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "OpenCGA client for variant storage operations",
		Long: `opencga drives the variant storage operations of an OpenCGA server:
aggregation, annotation, sample and family indexing, variant scores and
secondary indexes. Each operation submits a job and prints the server's
response.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			observability.SetHTTPHooks(newLogHooks(c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	c.flags.Register(pf)
	pf.StringVar(&c.token, "token", "", "bearer token (default $"+config.EnvToken+" or the saved profile)")
	pf.StringVarP(&c.profile, "profile", "p", session.DefaultProfile, "session profile holding the token")
	_ = root.RegisterFlagCompletionFunc("profile", c.completeProfiles)

	root.AddCommand(c.operationCommand())
	root.AddCommand(c.routesCommand())
	root.AddCommand(c.sessionCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Client Factory
// =============================================================================

// newClient resolves configuration and credentials and returns a client
// for the operation endpoints.
func (c *CLI) newClient(ctx context.Context, fs *pflag.FlagSet) (*operation.Client, error) {
	cfg, path, err := c.flags.Resolve(fs, c.lookupEnv)
	if err != nil {
		return nil, err
	}

	token, sess, err := c.resolveToken(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.REST.Host == "" && sess != nil {
		cfg.REST.Host = sess.Host
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := loggerFromContext(ctx)
	logger.Debug("client configured", "config", path, "host", cfg.REST.Host, "version", cfg.REST.Version, "auth", token != "")

	rcfg := cfg.Client(token)
	rcfg.Logger = logger
	rc, err := rest.NewClient(rcfg)
	if err != nil {
		return nil, err
	}
	return operation.NewClient(rc), nil
}

// resolveToken applies --token > $OPENCGA_TOKEN > saved profile.
// The saved session is returned only when it supplied the token.
func (c *CLI) resolveToken(ctx context.Context) (string, *session.Session, error) {
	if c.token != "" {
		return c.token, nil, nil
	}
	if v, ok := c.lookupEnv(config.EnvToken); ok && v != "" {
		return v, nil, nil
	}

	store, err := c.sessionStore()
	if err != nil {
		return "", nil, err
	}
	sess, err := store.GetSession(ctx)
	if err != nil {
		if apierrors.Is(err, apierrors.ErrCodeSessionExpired) {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("get session: %w", err)
	}
	if sess == nil {
		return "", nil, nil
	}
	return sess.Token, sess, nil
}

func (c *CLI) sessionStore() (*session.CLIStore, error) {
	var (
		store *session.CLIStore
		err   error
	)
	if c.sessionDir != "" {
		store, err = session.NewCLIStoreIn(c.sessionDir, c.profile)
	} else {
		store, err = session.NewCLIStore(c.profile)
	}
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return store, nil
}

// =============================================================================
// Terminal
// =============================================================================

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// isInteractive reports whether prompts and spinners can be shown.
func isInteractive() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stderr)
}
