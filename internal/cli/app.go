package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/parsepush/internal/catalog"
	"github.com/dmitrijs2005/parsepush/internal/config"
	"github.com/dmitrijs2005/parsepush/internal/logging"
	"github.com/dmitrijs2005/parsepush/internal/pushstatus"
	"github.com/dmitrijs2005/parsepush/internal/services"
	"github.com/dmitrijs2005/parsepush/internal/storage"
	"github.com/dmitrijs2005/parsepush/internal/templates"
)

type App struct {
	config    *config.Config
	storage   *storage.Storage
	store     services.ServerStore
	board     *services.StatusBoard
	templates *templates.Store
	logger    logging.Logger
	reader    *bufio.Reader
	out       io.Writer
}

// NewApp opens storage and builds the services described by c. Prompts are
// read from in and everything user-facing goes to out. When the vault
// passphrase is not configured it is asked for interactively.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer) (*App, error) {
	logger, err := logging.New(c.LogBackend, c.LogLevel, c.LogFormat, os.Stderr)
	if err != nil {
		return nil, err
	}

	reader := bufio.NewReader(in)

	var st *storage.Storage
	if c.Ephemeral {
		logger.Info(ctx, "using ephemeral storage")
		st = storage.OpenEphemeral()
	} else {
		passphrase := c.VaultPassphrase
		if passphrase == "" {
			passphrase, err = GetSecret(reader, "Vault passphrase", out)
			if err != nil {
				return nil, fmt.Errorf("read passphrase: %w", err)
			}
		}
		st, err = storage.Open(ctx, c.DataDir, c.VaultService, passphrase)
		if err != nil {
			logger.Error(ctx, "error opening storage", "dir", c.DataDir, "error", err)
			return nil, err
		}
	}

	a, err := newApp(ctx, c, st, logger, reader, out)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return a, nil
}

func newApp(ctx context.Context, c *config.Config, st *storage.Storage, logger logging.Logger,
	reader *bufio.Reader, out io.Writer, clientOpts ...pushstatus.Option) (*App, error) {

	header, err := pushstatus.AuthHeaderName(c.AuthHeader)
	if err != nil {
		return nil, err
	}

	opts := append([]pushstatus.Option{
		pushstatus.WithAuthHeader(header),
		pushstatus.WithTimeout(c.RequestTimeout),
		pushstatus.WithLogger(logger),
	}, clientOpts...)
	client := pushstatus.NewClient(opts...)

	store := services.NewServerStore(ctx, catalog.New(ctx, st.Settings, logger), st.Vault, logger,
		services.WithSecretRequired(c.RequireSecret))

	return &App{
		config:    c,
		storage:   st,
		store:     store,
		board:     services.NewStatusBoard(client, store, logger),
		templates: templates.NewStore(ctx, st.TemplatesPath, logger),
		logger:    logger,
		reader:    reader,
		out:       out,
	}, nil
}

// Run starts the REPL and closes storage once it returns.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "Welcome to parsepush (type 'help' for commands)")
	runREPL(ctx, a, a.reader, a.out)
	a.board.Reset()
	return a.Close()
}

func (a *App) Close() error {
	if a.storage == nil {
		return nil
	}
	err := a.storage.Close()
	a.storage = nil
	if err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}
