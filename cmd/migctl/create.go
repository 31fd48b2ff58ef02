package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"migration-scaffold/internal/domain"
	"migration-scaffold/internal/repository"
	"migration-scaffold/internal/usecase"
)

const createUsage = `Usage: migctl create "<description>"`

// newMigrationService は設定とフラグからMigrationServiceを組み立てる。
func (c *cli) newMigrationService(numbering, onCollision string) (*usecase.MigrationService, error) {
	strategy, err := domain.ParseNumberingStrategy(numbering)
	if err != nil {
		return nil, err
	}
	policy, err := domain.ParseCollisionPolicy(onCollision)
	if err != nil {
		return nil, err
	}

	repo := repository.NewMigrationRepository(c.cfg.MigrationsDir)
	return usecase.NewMigrationService(repo,
		usecase.WithNumbering(strategy),
		usecase.WithCollisionPolicy(policy),
		usecase.WithLockTimeout(c.cfg.LockTimeout),
	), nil
}

// createCmd はマイグレーションファイルの生成コマンド。
func (c *cli) createCmd() *cobra.Command {
	var (
		numbering   string
		onCollision string
		dryRun      bool
	)
	cmd := &cobra.Command{
		Use:   `create "<description>"`,
		Short: "Create the next numbered migration stub",
		Long: "Create the next numbered SQL migration stub in the migrations directory.\n" +
			"The SQL is applied manually; the stub only records the name and intent.",
		RunE: func(cmd *cobra.Command, args []string) error {
			description := strings.Join(args, " ")
			if strings.TrimSpace(description) == "" {
				fmt.Fprintln(c.stderr, createUsage)
				return domain.ErrArgumentMissing
			}

			service, err := c.newMigrationService(numbering, onCollision)
			if err != nil {
				return err
			}

			if dryRun {
				seq, err := service.NextSequence(cmd.Context())
				if err != nil {
					return err
				}
				name := domain.BuildFileName(seq, domain.Slugify(description))
				return c.printDryRun(filepath.Join(c.cfg.MigrationsDir, name))
			}

			migration, err := service.CreateMigration(cmd.Context(), description)
			if err != nil {
				return err
			}
			return c.printCreated(migration)
		},
	}
	cmd.Flags().StringVar(&numbering, "numbering", c.cfg.Numbering, "Numbering strategy: max, count (or set MIGRATION_NUMBERING)")
	cmd.Flags().StringVar(&onCollision, "on-collision", c.cfg.OnCollision, "Collision policy: reject, overwrite (or set MIGRATION_ON_COLLISION)")
	cmd.Flags().DurationVar(&c.cfg.LockTimeout, "lock-timeout", c.cfg.LockTimeout, "How long to wait for the migrations directory lock")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the file that would be created without writing it")
	return cmd
}
