// Package main はマイグレーションファイル生成CLIのエントリポイント。
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"migration-scaffold/config"
	"migration-scaffold/internal/infra"
)

const version = "1.0.0"

const (
	outputText = "text"
	outputJSON = "json"
)

// cli はコマンド間で共有する設定と出力先を保持する。
type cli struct {
	cfg    *config.Config
	output string
	stdout io.Writer
	stderr io.Writer
}

func main() {
	// .envファイルを読み込む（存在しない場合は無視）
	// 既存の環境変数は上書きしない
	_ = godotenv.Load()

	os.Exit(run(context.Background(), config.Load(), os.Args[1:], os.Stdout, os.Stderr))
}

// run はコマンドを実行し、プロセスの終了コードを返す。
func run(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	infra.SetupLogger(cfg, stderr)

	tp, err := infra.InitTracer(ctx, cfg, version)
	if err != nil {
		slog.Error("failed to init tracer", "error", err)
		return 1
	}
	if tp != nil {
		defer func() {
			if err := tp.Shutdown(ctx); err != nil {
				slog.Error("failed to shutdown tracer", "error", err)
			}
		}()
	}

	c := &cli{cfg: cfg, stdout: stdout, stderr: stderr}
	rootCmd := c.rootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(stderr, err)
		return 1
	}
	return 0
}

func (c *cli) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "migctl",
		Short:         "Scaffold numbered SQL migration files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return validateOutput(c.output)
		},
	}

	// グローバルフラグ
	rootCmd.PersistentFlags().StringVar(&c.cfg.MigrationsDir, "dir", c.cfg.MigrationsDir, "Migrations directory (or set MIGRATIONS_DIR)")
	rootCmd.PersistentFlags().StringVar(&c.output, "output", outputText, "Output format: text, json")

	// サブコマンド登録
	rootCmd.AddCommand(c.createCmd())
	rootCmd.AddCommand(c.listCmd())
	rootCmd.AddCommand(c.versionCmd())

	return rootCmd
}

// validateOutput は--outputの値を検証する。
func validateOutput(output string) error {
	switch output {
	case outputText, outputJSON:
		return nil
	default:
		return fmt.Errorf("invalid output format %q (want %s or %s)", output, outputText, outputJSON)
	}
}

// versionCmd はバージョン情報を表示する。
func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(c.stdout, "migctl version %s\n", version)
		},
	}
}
