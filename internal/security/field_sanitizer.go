// Package security はアプリケーションのセキュリティ機能を提供する。
//
// FieldSanitizerService はユーザーが入力した送信者名・宛先名・本文から
// HTMLタグを除去し、XSS攻撃からユーザーを保護する。
// bluemondayライブラリの厳格ポリシーを使用し、タグを一切許可しない。
package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// FieldSanitizerService はユーザー入力フィールドのサニタイズ機能のインターフェースを定義する。
// メッセージの保存前（作成・編集）に使用される。
type FieldSanitizerService interface {
	// Sanitize は入力テキストからすべてのHTMLタグを除去し、前後の空白を削った結果を返す。
	// メッセージはプレーンテキストとして扱うため、許可タグは存在しない。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// fieldSanitizer はFieldSanitizerServiceの実装。
// bluemondayのStrictPolicyを保持し、スレッドセーフにサニタイズ処理を行う。
type fieldSanitizer struct {
	policy *bluemonday.Policy
}

// NewFieldSanitizer はFieldSanitizerServiceの新しいインスタンスを生成する。
// StrictPolicyはすべてのタグと属性を除去し、テキストのみを通過させる。
func NewFieldSanitizer() *fieldSanitizer {
	return &fieldSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力テキストからすべてのHTMLタグを除去する。
func (s *fieldSanitizer) Sanitize(raw string) string {
	return strings.TrimSpace(s.policy.Sanitize(raw))
}
