// Package domain はマイグレーションファイルのドメインモデルと命名規則を定義する。
package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// SequenceWidth はシーケンス番号の桁数。
	SequenceWidth = 3
	// MaxSequence は3桁で表現できる最大のシーケンス番号。
	MaxSequence = 999
	// FileExtension はマイグレーションファイルの拡張子。
	FileExtension = ".sql"
)

// fileNamePattern は「3桁の数字、アンダースコア、任意の文字列、.sql」に一致する。
var fileNamePattern = regexp.MustCompile(`^([0-9]{3})_(.*)\.sql$`)

// NumberingStrategy は次のシーケンス番号の決め方を表す。
type NumberingStrategy string

const (
	// NumberingMax は既存の最大番号 + 1 を採番する。
	NumberingMax NumberingStrategy = "max"
	// NumberingCount は既存ファイル数 + 1 を採番する（旧来の方式）。
	NumberingCount NumberingStrategy = "count"
)

// ParseNumberingStrategy は文字列からNumberingStrategyを返す。
func ParseNumberingStrategy(s string) (NumberingStrategy, error) {
	switch NumberingStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case NumberingMax:
		return NumberingMax, nil
	case NumberingCount:
		return NumberingCount, nil
	}
	return "", fmt.Errorf("unknown numbering strategy %q (expected max or count)", s)
}

// CollisionPolicy は同じ番号・同じファイル名が既に存在する場合の扱いを表す。
type CollisionPolicy string

const (
	// CollisionReject は衝突をErrNameCollisionとして拒否する。
	CollisionReject CollisionPolicy = "reject"
	// CollisionOverwrite は衝突したファイルを黙って上書きする（旧来の挙動）。
	CollisionOverwrite CollisionPolicy = "overwrite"
)

// ParseCollisionPolicy は文字列からCollisionPolicyを返す。
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch CollisionPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case CollisionReject:
		return CollisionReject, nil
	case CollisionOverwrite:
		return CollisionOverwrite, nil
	}
	return "", fmt.Errorf("unknown collision policy %q (expected reject or overwrite)", s)
}

// MigrationFile はマイグレーションのSQLスタブファイルを表すドメインモデル。
type MigrationFile struct {
	Sequence    int       // シーケンス番号（例: 1 → "001"）
	Slug        string    // 説明文から生成したファイル名用トークン
	FileName    string    // 例: 001_create_users.sql
	Path        string    // ディレクトリを含むファイルパス
	Description string    // 元の説明文（未加工）。既存ファイルの走査時は空
	CreatedAt   time.Time // 生成日時。既存ファイルの走査時はゼロ値
}

// Version はゼロ埋めしたシーケンス番号を返す。
func (m *MigrationFile) Version() string {
	return FormatSequence(m.Sequence)
}

// Slugify は説明文をファイル名に使えるトークンに変換する。
// 小文字化し、空白をアンダースコアに置換したうえで [a-z0-9_] 以外の文字を取り除く。
func Slugify(description string) string {
	lowered := strings.ReplaceAll(strings.ToLower(description), " ", "_")
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatSequence はシーケンス番号を3桁にゼロ埋めする。
func FormatSequence(seq int) string {
	return fmt.Sprintf("%0*d", SequenceWidth, seq)
}

// BuildFileName はシーケンス番号とスラッグからファイル名を組み立てる。
func BuildFileName(seq int, slug string) string {
	return FormatSequence(seq) + "_" + slug + FileExtension
}

// IsMigrationFileName はファイル名がマイグレーションファイルの命名規則に一致するか判定する。
func IsMigrationFileName(name string) bool {
	return fileNamePattern.MatchString(name)
}

// ParseFileName はファイル名からシーケンス番号とスラッグを抽出する。
// ファイル名のフォーマット: {seq:03d}_{slug}.sql (例: 001_create_users.sql)
func ParseFileName(name string) (seq int, slug string, err error) {
	m := fileNamePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, "", fmt.Errorf("%w: %s (expected format: NNN_{name}.sql)", ErrInvalidMigrationFile, name)
	}
	seq, err = strconv.Atoi(m[1])
	if err != nil {
		return 0, "", fmt.Errorf("%w: %s: %v", ErrInvalidMigrationFile, name, err)
	}
	return seq, m[2], nil
}
