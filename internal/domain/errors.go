package domain

import "errors"

var (
	// ErrArgumentMissing は説明文が指定されていない場合のエラー。
	ErrArgumentMissing = errors.New("migration description is required")

	// ErrDirectoryUnavailable はmigrationsディレクトリが存在しない、または書き込めない場合のエラー。
	ErrDirectoryUnavailable = errors.New("migrations directory unavailable")

	// ErrNameCollision は同じシーケンス番号またはファイル名が既に存在する場合のエラー。
	ErrNameCollision = errors.New("migration name collision")

	// ErrLockTimeout はmigrationsディレクトリのロックを取得できなかった場合のエラー。
	ErrLockTimeout = errors.New("timed out waiting for migrations directory lock")

	// ErrSequenceExhausted は3桁のシーケンス番号を使い切った場合のエラー。
	ErrSequenceExhausted = errors.New("migration sequence exhausted")

	// ErrInvalidMigrationFile はマイグレーションファイルのフォーマットが不正な場合のエラー。
	ErrInvalidMigrationFile = errors.New("invalid migration file")
)
