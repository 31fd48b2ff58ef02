// Package usecase はアプリケーションのユースケースを実装する。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"migration-scaffold/internal/domain"
)

const tracerName = "migration-scaffold/internal/usecase"

// MigrationRepository はmigrationsディレクトリへのアクセスのインターフェース。
type MigrationRepository interface {
	Dir() string
	CheckDir(ctx context.Context) error
	FindAll(ctx context.Context) ([]*domain.MigrationFile, error)
	Create(ctx context.Context, name string, content []byte, overwrite bool) (string, error)
	// Lock はディレクトリの排他ロックを取得し、解放用の関数を返す。
	Lock(ctx context.Context, timeout time.Duration) (func(context.Context) error, error)
}

// MigrationService はマイグレーションファイル生成のビジネスロジックを提供する。
type MigrationService struct {
	repo        MigrationRepository
	numbering   domain.NumberingStrategy
	collision   domain.CollisionPolicy
	lockTimeout time.Duration
	now         func() time.Time
}

// Option はMigrationServiceの設定を変更する。
type Option func(*MigrationService)

// WithNumbering は採番方式を指定する。
func WithNumbering(strategy domain.NumberingStrategy) Option {
	return func(s *MigrationService) {
		s.numbering = strategy
	}
}

// WithCollisionPolicy は衝突時の扱いを指定する。
func WithCollisionPolicy(policy domain.CollisionPolicy) Option {
	return func(s *MigrationService) {
		s.collision = policy
	}
}

// WithLockTimeout はディレクトリロック取得の待ち時間を指定する。
func WithLockTimeout(timeout time.Duration) Option {
	return func(s *MigrationService) {
		s.lockTimeout = timeout
	}
}

// WithClock は生成日時の取得に使う関数を指定する。
func WithClock(now func() time.Time) Option {
	return func(s *MigrationService) {
		s.now = now
	}
}

// NewMigrationService は新しいMigrationServiceを生成する。
func NewMigrationService(repo MigrationRepository, options ...Option) *MigrationService {
	s := &MigrationService{
		repo:        repo,
		numbering:   domain.NumberingMax,
		collision:   domain.CollisionReject,
		lockTimeout: 5 * time.Second,
		now:         time.Now,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// CreateMigration は説明文から次の番号のマイグレーションファイルを生成する。
func (s *MigrationService) CreateMigration(ctx context.Context, description string) (*domain.MigrationFile, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "MigrationService.CreateMigration")
	defer span.End()

	migration, err := s.createMigration(ctx, description)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("migration.sequence", migration.Sequence),
		attribute.String("migration.file_name", migration.FileName),
	)
	slog.InfoContext(ctx, "migration file created",
		"operation", "create_migration",
		"file_name", migration.FileName,
		"path", migration.Path,
		"numbering", string(s.numbering),
	)
	return migration, nil
}

func (s *MigrationService) createMigration(ctx context.Context, description string) (*domain.MigrationFile, error) {
	if strings.TrimSpace(description) == "" {
		return nil, domain.ErrArgumentMissing
	}

	if err := s.repo.CheckDir(ctx); err != nil {
		return nil, err
	}

	// 旧来の上書き挙動ではロックを取らない
	if s.collision == domain.CollisionReject {
		unlock, err := s.repo.Lock(ctx, s.lockTimeout)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				slog.ErrorContext(ctx, "failed to release migrations directory lock",
					"operation", "create_migration",
					"error", err,
				)
			}
		}()
	}

	existing, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	seq, err := s.resolveSequence(existing)
	if err != nil {
		return nil, err
	}

	slug := domain.Slugify(description)
	migration := &domain.MigrationFile{
		Sequence:    seq,
		Slug:        slug,
		FileName:    domain.BuildFileName(seq, slug),
		Description: description,
		CreatedAt:   s.now(),
	}

	content, err := renderStub(migration)
	if err != nil {
		return nil, err
	}

	path, err := s.repo.Create(ctx, migration.FileName, content, s.collision == domain.CollisionOverwrite)
	if err != nil {
		return nil, err
	}
	migration.Path = path

	return migration, nil
}

// NextSequence は次に生成されるシーケンス番号を返す。ファイルは作成しない。
// CreateMigrationと同じ衝突判定を行う。
func (s *MigrationService) NextSequence(ctx context.Context) (int, error) {
	if err := s.repo.CheckDir(ctx); err != nil {
		return 0, err
	}
	existing, err := s.repo.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	return s.resolveSequence(existing)
}

// resolveSequence は次のシーケンス番号を決め、rejectポリシーでは使用済みの番号を拒否する。
func (s *MigrationService) resolveSequence(existing []*domain.MigrationFile) (int, error) {
	seq := nextSequence(existing, s.numbering)
	if seq > domain.MaxSequence {
		return 0, fmt.Errorf("%w: next sequence %d exceeds %d", domain.ErrSequenceExhausted, seq, domain.MaxSequence)
	}
	if s.collision == domain.CollisionReject {
		for _, f := range existing {
			if f.Sequence == seq {
				return 0, fmt.Errorf("%w: sequence %s is already used by %s",
					domain.ErrNameCollision, domain.FormatSequence(seq), f.FileName)
			}
		}
	}
	return seq, nil
}

// ListMigrations はmigrationsディレクトリ内のマイグレーションファイルを番号順に取得する。
func (s *MigrationService) ListMigrations(ctx context.Context) ([]*domain.MigrationFile, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "MigrationService.ListMigrations")
	defer span.End()

	files, err := s.repo.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("migration.count", len(files)))
	return files, nil
}

// nextSequence は採番方式に従って次のシーケンス番号を計算する。
func nextSequence(existing []*domain.MigrationFile, strategy domain.NumberingStrategy) int {
	if strategy == domain.NumberingCount {
		return len(existing) + 1
	}
	highest := 0
	for _, f := range existing {
		if f.Sequence > highest {
			highest = f.Sequence
		}
	}
	return highest + 1
}
