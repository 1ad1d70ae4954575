package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "want" or "got").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch t.lang {
	case "ja":
		switch code {
		case "kind_mismatch":
			msg = "セルの型が一致しません"
		case "overflow":
			msg = "値が範囲外です"
		case "invalid_enum":
			msg = "未知の列挙値です"
		case "invalid_json":
			msg = "JSON を解析できません"
		case "invalid_format":
			msg = "形式が不正です"
		case "decode_panic":
			msg = "デコード中にパニックが発生しました"
		case "encode_failed":
			msg = "エンコードに失敗しました"
		case "unknown_column":
			msg = "スキーマにない列です"
		case "scope_closed":
			msg = "スコープは既に閉じられています"
		}
	default: // "en"
		switch code {
		case "kind_mismatch":
			msg = "cell kind mismatch"
		case "overflow":
			msg = "value out of range"
		case "invalid_enum":
			msg = "unknown enum case"
		case "invalid_json":
			msg = "invalid json"
		case "invalid_format":
			msg = "invalid format"
		case "decode_panic":
			msg = "decoder panicked"
		case "encode_failed":
			msg = "encode failed"
		case "unknown_column":
			msg = "column not in schema"
		case "scope_closed":
			msg = "scope already closed"
		}
	}
	if msg == "" {
		msg = code
	}
	return withDetail(msg, data)
}

// withDetail appends want/got hints when present.
func withDetail(msg string, data map[string]string) string {
	if len(data) == 0 {
		return msg
	}
	var parts []string
	if w, ok := data["want"]; ok {
		parts = append(parts, "want "+w)
	}
	if g, ok := data["got"]; ok {
		parts = append(parts, "got "+g)
	}
	if len(parts) == 0 {
		return msg
	}
	return msg + " (" + strings.Join(parts, ", ") + ")"
}

var (
	mu                           = sync.RWMutex{}
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
