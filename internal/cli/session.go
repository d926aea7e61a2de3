package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/frontdesk/internal/pages"
	"github.com/mesh-intelligence/frontdesk/internal/sqlite"
	"github.com/mesh-intelligence/frontdesk/pkg/crud"
	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// session is one page engine over an attached datastore. A background
// watch refetches the engine whenever its table changes.
type session struct {
	settings settings
	log      *slog.Logger
	backend  *sqlite.Backend
	page     pages.Page
	engine   *crud.Engine[types.Record]

	stopWatch context.CancelFunc
	watchDone chan error
}

// newLogger returns a text logger on the command's stderr.
func newLogger(cmd *cobra.Command, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// loadRegistry returns the built-in pages with pages.yaml applied.
func loadRegistry(s settings) (*pages.Registry, error) {
	overrides, err := pages.LoadOverrides(s.dirs.PagesFile())
	if err != nil {
		return nil, err
	}
	return pages.Builtin().Apply(overrides)
}

// openSession attaches the datastore and builds the engine of pageName.
// The caller must close the session.
func openSession(cmd *cobra.Command, pageName string) (*session, error) {
	s, err := loadSettings()
	if err != nil {
		return nil, sysError("%w", err)
	}
	log := newLogger(cmd, s.logLevel)

	registry, err := loadRegistry(s)
	if err != nil {
		return nil, sysError("load pages: %w", err)
	}
	page, err := registry.Get(pageName)
	if err != nil {
		return nil, userError("%w: %s (have %v)", types.ErrUnknownPage, pageName, registry.Names())
	}

	backend := sqlite.NewBackend(sqlite.WithLogger(log))
	if err := backend.Attach(s.datastoreConfig()); err != nil {
		return nil, sysError("attach datastore: %w", err)
	}
	table, err := backend.GetTable(page.Name)
	if err != nil {
		backend.Detach()
		return nil, sysError("open table %s: %w", page.Name, err)
	}

	engine, err := pages.Build(cmd.Context(), page, table, types.Scope{HotelID: s.hotelID}, log,
		crud.WithPageSize(s.pageSize),
		crud.WithRollback(s.rollback),
		crud.WithStrict(s.strict),
	)
	if err != nil {
		backend.Detach()
		return nil, sysError("%w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sess := &session{
		settings:  s,
		log:       log,
		backend:   backend,
		page:      page,
		engine:    engine,
		stopWatch: cancel,
		watchDone: make(chan error, 1),
	}
	go func() { sess.watchDone <- pages.Watch(ctx, backend, page.Name, engine) }()
	return sess, nil
}

// close stops the watch, closes the engine and detaches the datastore.
func (s *session) close() error {
	s.stopWatch()
	<-s.watchDone
	s.engine.Close()
	if err := s.backend.Detach(); err != nil {
		return sysError("detach datastore: %w", err)
	}
	return nil
}

// target returns the record id from the engine's data.
func (s *session) target(id string) (types.Record, error) {
	rec, ok := s.engine.ByID(types.ID(id))
	if !ok {
		return types.Record{}, userError("%s %s: %w", s.page.Name, id, types.ErrNotFound)
	}
	return rec, nil
}

// withSession runs fn on an open session of pageName and closes it.
func withSession(cmd *cobra.Command, pageName string, fn func(*session) error) (err error) {
	sess, err := openSession(cmd, pageName)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sess.close(); err == nil {
			err = cerr
		}
	}()
	return fn(sess)
}

// remoteFailure wraps a failed submit so the exit code follows its cause.
func remoteFailure(action string, err error) error {
	if exitCode(err) == exitUserError {
		return fmt.Errorf("%s: %w", action, err)
	}
	return sysError("%s: %w", action, err)
}
