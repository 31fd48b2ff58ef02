package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// listCmd はmigrationsディレクトリ内のマイグレーション一覧を表示する。
func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List migration files in the migrations directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := c.newMigrationService(c.cfg.Numbering, c.cfg.OnCollision)
			if err != nil {
				return err
			}

			files, err := service.ListMigrations(cmd.Context())
			if err != nil {
				return err
			}

			if c.output == outputJSON {
				items := make([]migrationJSON, len(files))
				for i, f := range files {
					items[i] = toMigrationJSON(f)
				}
				return writeJSON(c.stdout, items)
			}

			if len(files) == 0 {
				fmt.Fprintf(c.stdout, "No migrations in %s.\n", c.cfg.MigrationsDir)
				return nil
			}

			// 同じ番号が複数あれば印を付ける（旧来の採番で起こりうる）
			seen := make(map[int]int, len(files))
			for _, f := range files {
				seen[f.Sequence]++
			}

			// テーブル形式で出力
			w := tabwriter.NewWriter(c.stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "SEQ\tNAME\tFILE")
			fmt.Fprintln(w, "---\t----\t----")
			for _, f := range files {
				note := ""
				if seen[f.Sequence] > 1 {
					note = "\t" + WarningStyle.Render("duplicate sequence")
				}
				fmt.Fprintf(w, "%s\t%s\t%s%s\n", f.Version(), f.Slug, f.FileName, note)
			}

			if err := w.Flush(); err != nil {
				return fmt.Errorf("failed to flush output: %w", err)
			}
			return nil
		},
	}
}
