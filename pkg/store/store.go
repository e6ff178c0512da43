package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ruslano69/sqlitekit/pkg/audit"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// DBTX - минимальный интерфейс выполнения statements.
// Реализуется Store, *sql.Tx и *sql.Conn, что позволяет выполнять
// шаги операций как напрямую, так и внутри транзакции.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store - явно передаваемое writable подключение к хранилищу.
// Открытием и закрытием управляет вызывающий код, а не process-wide singleton.
type Store struct {
	db     *sql.DB
	path   string
	logger *audit.Logger
}

// Compile-time check: Store реализует DBTX
var _ DBTX = (*Store)(nil)

// Open открывает хранилище и применяет PRAGMA настройки.
// Пул ограничен одним подключением: одна активная write-транзакция
// на процесс, и ATTACH видим для всех последующих statements.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, NewError(KindResource, "store.Open", err)
	}

	db, err := sql.Open(driverName, cfg.Path)
	if err != nil {
		return nil, NewError(KindResource, "store.Open", err)
	}

	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, NewError(KindResource, "store.Open", err)
	}

	s := &Store{db: db, path: cfg.Path}

	if err := s.applyPragmas(ctx, cfg); err != nil {
		db.Close()
		return nil, err
	}

	logger, err := buildLogger(cfg.Audit)
	if err != nil {
		db.Close()
		return nil, NewError(KindResource, "store.Open", err)
	}
	s.logger = logger
	s.logger.Success(ctx, audit.OpConnect, cfg.Path, "", 0, 0)

	return s, nil
}

// buildLogger собирает журнал операций по конфигурации.
// Возвращает nil-логгер если журналирование выключено.
func buildLogger(cfg AuditConfig) (*audit.Logger, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	var appenders []audit.Appender
	if cfg.File != "" {
		fa, err := audit.NewFileAppender(cfg.File)
		if err != nil {
			return nil, err
		}
		appenders = append(appenders, fa)
	}
	if cfg.Stderr {
		appenders = append(appenders, audit.NewStderrAppender())
	}

	return audit.NewLogger(appenders...), nil
}

// applyPragmas применяет настройки производительности.
// Часть PRAGMA может не примениться (например journal_mode для in-memory БД),
// такие ошибки не фатальны.
func (s *Store) applyPragmas(ctx context.Context, cfg Config) error {
	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.BusyTimeoutMS),
		"PRAGMA temp_store = MEMORY",
	}
	if cfg.JournalMode != "" {
		pragmas = append(pragmas, "PRAGMA journal_mode = "+cfg.JournalMode)
	}
	if cfg.Synchronous != "" {
		pragmas = append(pragmas, "PRAGMA synchronous = "+cfg.Synchronous)
	}
	if cfg.CacheSizeKB > 0 {
		pragmas = append(pragmas, fmt.Sprintf("PRAGMA cache_size = -%d", cfg.CacheSizeKB))
	}

	for _, pragma := range pragmas {
		if _, err := s.db.ExecContext(ctx, pragma); err != nil {
			fmt.Printf("⚠️  Warning: %s failed: %v\n", pragma, err)
		}
	}

	return nil
}

// Close закрывает подключение и журнал операций
func (s *Store) Close() error {
	var firstErr error
	if s.db != nil {
		firstErr = s.db.Close()
	}
	if err := s.logger.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// Ping проверяет доступность хранилища
func (s *Store) Ping(ctx context.Context) error {
	if s.db == nil {
		return NewError(KindResource, "store.Ping", fmt.Errorf("store not open"))
	}
	return s.db.PingContext(ctx)
}

// Path возвращает путь к файлу хранилища
func (s *Store) Path() string {
	return s.path
}

// Audit возвращает журнал операций (может быть nil-логгером)
func (s *Store) Audit() *audit.Logger {
	return s.logger
}

// DB возвращает *sql.DB для прямого доступа
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, query, args...)
}

func (s *Store) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, query, args...)
}

func (s *Store) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, query, args...)
}

// BeginTx начинает транзакцию
func (s *Store) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return s.db.BeginTx(ctx, nil)
}

// Conn выдает выделенное подключение из пула.
// Используется операциями с ATTACH, которым нужен один физический connection.
func (s *Store) Conn(ctx context.Context) (*sql.Conn, error) {
	return s.db.Conn(ctx)
}

// Exec выполняет statement, журналируя storage fault.
// Ошибка оборачивается в Error с Kind=Storage.
func (s *Store) Exec(ctx context.Context, query string, args ...any) error {
	start := time.Now()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Failure(ctx, audit.OpExec, query, err, time.Since(start))
		return NewError(KindStorage, "store.Exec", err)
	}
	return nil
}
