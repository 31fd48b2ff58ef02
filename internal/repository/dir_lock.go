package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"migration-scaffold/internal/domain"
)

// LockFileName はmigrationsディレクトリ内のロックファイル名。
// 命名規則に一致しないため走査対象にはならない。
const LockFileName = ".migctl.lock"

var errLockHeld = errors.New("lock is held by another process")

// Lock はmigrationsディレクトリの排他ロック（flock）を取得し、解放用の関数を返す。
// ロックはOSのアドバイザリロックなので、プロセスが異常終了してもカーネルが解放する。
// 残ったロックファイル自体は次の取得を妨げない。
// ロックが他プロセスに保持されている場合はtimeoutまで指数バックオフで再試行する。
// timeoutが0以下の場合は一度だけ試行する。
func (r *MigrationRepository) Lock(ctx context.Context, timeout time.Duration) (func(context.Context) error, error) {
	path := filepath.Join(r.dir, LockFileName)
	fl := flock.New(path)
	holder := uuid.New().String()

	acquire := func() (bool, error) {
		locked, err := fl.TryLock()
		if err != nil {
			return false, backoff.Permanent(fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err))
		}
		if !locked {
			return false, errLockHeld
		}
		return true, nil
	}

	var err error
	if timeout <= 0 {
		_, err = acquire()
	} else {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = 20 * time.Millisecond
		b.MaxInterval = 500 * time.Millisecond
		_, err = backoff.Retry(ctx, acquire,
			backoff.WithBackOff(b),
			backoff.WithMaxElapsedTime(timeout),
		)
	}
	if err != nil {
		if errors.Is(err, errLockHeld) {
			slog.WarnContext(ctx, "migrations directory is locked",
				"operation", "lock",
				"lock_file", path,
				"timeout", timeout.String(),
			)
			return nil, fmt.Errorf("%w: %s", domain.ErrLockTimeout, path)
		}
		return nil, err
	}

	// 診断用に現在の保持者を書き込む。ロックの判定には使わない
	if err := os.WriteFile(path, []byte(holder+"\n"), filePerm); err != nil {
		slog.WarnContext(ctx, "failed to record lock holder",
			"operation", "lock",
			"lock_file", path,
			"error", err,
		)
	}

	slog.DebugContext(ctx, "acquired migrations directory lock",
		"operation", "lock",
		"lock_file", path,
		"holder", holder,
	)

	return func(ctx context.Context) error {
		if err := fl.Unlock(); err != nil {
			slog.ErrorContext(ctx, "failed to release migrations directory lock",
				"operation", "unlock",
				"lock_file", path,
				"holder", holder,
				"error", err,
			)
			return fmt.Errorf("releasing lock %s: %w", path, err)
		}
		return nil
	}, nil
}
