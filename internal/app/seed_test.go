package app

import (
	"testing"
)

// TestSeedMessages_AllFieldsPresent はサンプルメッセージの定義に欠けがないことを検証する。
func TestSeedMessages_AllFieldsPresent(t *testing.T) {
	if len(seedMessages) == 0 {
		t.Fatal("expected at least one seed message")
	}
	for i, sm := range seedMessages {
		if sm.from == "" || sm.to == "" || sm.body == "" {
			t.Errorf("seed message %d has empty fields: %+v", i, sm)
		}
	}
}
