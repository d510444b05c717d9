// Package view は埋め込みHTMLテンプレートのレンダリングを提供する。
//
// レンダリングはhtml/templateに委譲する。コンテキスト対応の自動エスケープにより、
// ユーザー入力を含むページでもテンプレート側でのエスケープ漏れが起きない。
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

// ページテンプレート名
const (
	PageHome    = "home.html"
	PageSignup  = "signup.html"
	PageLogin   = "login.html"
	PageNewChat = "newchat.html"
	PageEdit    = "edit.html"
)

// Renderer は埋め込みテンプレートをパース済みの状態で保持する。
// パースは起動時に1回だけ行い、以降はスレッドセーフに実行できる。
type Renderer struct {
	templates *template.Template
}

// New は全ページテンプレートをパースしてRendererを生成する。
func New() (*Renderer, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"datetime": formatDateTime,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{templates: t}, nil
}

// Render は指定テンプレートをdataでレンダリングしてwに書き込む。
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}

// formatDateTime はタイムスタンプの表示用フォーマット。
// Message.UpdatedAtのような*time.Timeも受け付け、nilは空文字列にする。
func formatDateTime(v any) string {
	const layout = "2006-01-02 15:04"
	switch t := v.(type) {
	case time.Time:
		return t.Format(layout)
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.Format(layout)
	}
	return ""
}
