package usecase

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"migration-scaffold/internal/domain"
)

var stubTemplate = template.Must(template.New("stub").Parse(`-- Migration: {{ .FileName }}
-- Created: {{ .CreatedAt }}
-- Description: {{ .Description }}

-- Write your SQL below
-- Use IF NOT EXISTS for new tables
-- Use ALTER TABLE for modifications

`))

type stubData struct {
	FileName    string
	CreatedAt   string
	Description string
}

// renderStub はマイグレーションファイルの雛形を生成する。
// 複数行の説明文（改行は\r\n・\r・\nのいずれも可）は各行をSQLコメントとして出力する。
func renderStub(m *domain.MigrationFile) ([]byte, error) {
	description := strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(m.Description)
	description = strings.ReplaceAll(description, "\n", "\n-- ")

	var buf bytes.Buffer
	if err := stubTemplate.Execute(&buf, stubData{
		FileName:    m.FileName,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
		Description: description,
	}); err != nil {
		return nil, fmt.Errorf("rendering migration stub: %w", err)
	}
	return buf.Bytes(), nil
}
