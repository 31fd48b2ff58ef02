// Package repository はmigrationsディレクトリへのアクセスを提供する。
package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"migration-scaffold/internal/domain"
)

const filePerm = 0o644

// MigrationRepository はファイルシステム上のmigrationsディレクトリを管理するリポジトリ。
type MigrationRepository struct {
	dir string
}

// NewMigrationRepository は新しいMigrationRepositoryを生成する。
func NewMigrationRepository(dir string) *MigrationRepository {
	return &MigrationRepository{dir: dir}
}

// Dir はmigrationsディレクトリのパスを返す。
func (r *MigrationRepository) Dir() string {
	return r.dir
}

// CheckDir はmigrationsディレクトリが存在し、ディレクトリであることを確認する。
func (r *MigrationRepository) CheckDir(ctx context.Context) error {
	info, err := os.Stat(r.dir)
	if err != nil {
		slog.ErrorContext(ctx, "failed to stat migrations directory",
			"operation", "check_dir",
			"dir", r.dir,
			"error", err,
		)
		return fmt.Errorf("%w: %s: %v", domain.ErrDirectoryUnavailable, r.dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrDirectoryUnavailable, r.dir)
	}
	return nil
}

// FindAll は命名規則に一致するマイグレーションファイルを番号順に取得する。
// 規則に一致しないファイルとサブディレクトリは無視する。
func (r *MigrationRepository) FindAll(ctx context.Context) ([]*domain.MigrationFile, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		slog.ErrorContext(ctx, "failed to read migrations directory",
			"operation", "find_all",
			"dir", r.dir,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDirectoryUnavailable, r.dir, err)
	}

	var files []*domain.MigrationFile
	for _, entry := range entries {
		if entry.IsDir() || !domain.IsMigrationFileName(entry.Name()) {
			continue
		}

		seq, slug, err := domain.ParseFileName(entry.Name())
		if err != nil {
			return nil, err
		}

		files = append(files, &domain.MigrationFile{
			Sequence: seq,
			Slug:     slug,
			FileName: entry.Name(),
			Path:     filepath.Join(r.dir, entry.Name()),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].Sequence != files[j].Sequence {
			return files[i].Sequence < files[j].Sequence
		}
		return files[i].FileName < files[j].FileName
	})

	return files, nil
}

// Create はマイグレーションファイルを書き込む。
// overwriteがfalseの場合は既存ファイルがあればErrNameCollisionを返し、既存ファイルには触れない。
func (r *MigrationRepository) Create(ctx context.Context, name string, content []byte, overwrite bool) (string, error) {
	path := filepath.Join(r.dir, name)

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, filePerm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("%w: %s already exists", domain.ErrNameCollision, path)
		}
		slog.ErrorContext(ctx, "failed to create migration file",
			"operation", "create",
			"path", path,
			"error", err,
		)
		return "", fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
	}

	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		slog.ErrorContext(ctx, "failed to write migration file",
			"operation", "create",
			"path", path,
			"error", err,
		)
		return "", fmt.Errorf("writing migration file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing migration file: %w", err)
	}

	return path, nil
}
