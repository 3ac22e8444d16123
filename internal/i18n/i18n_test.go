package i18n

import (
	"encoding/json"
	"testing"
)

func newTranslator(t *testing.T, lang string) *Translator {
	t.Helper()
	tr, err := New(lang, nil)
	if err != nil {
		t.Fatalf("New(%q): %v", lang, err)
	}
	return tr
}

func TestTranslateEnglish(t *testing.T) {
	tr := newTranslator(t, "en")

	if got := tr.T("answer_correct"); got != "✓ Correct!" {
		t.Errorf("T(answer_correct) = %q", got)
	}
	got := tr.Td("answer_wrong", map[string]any{"Answer": "4"})
	if got != "✗ Wrong. The correct answer was: 4" {
		t.Errorf("Td(answer_wrong) = %q", got)
	}
}

func TestTranslateRussian(t *testing.T) {
	tr := newTranslator(t, "ru")

	got := tr.Td("question_header", map[string]any{"Number": 1, "Total": 5})
	if got != "Вопрос 1 из 5:" {
		t.Errorf("Td(question_header) = %q", got)
	}
}

func TestUnknownLanguageFallsBackToEnglish(t *testing.T) {
	tr := newTranslator(t, "de")

	if got := tr.T("review_no_answer"); got != "Your Answer: No Answer" {
		t.Errorf("T(review_no_answer) = %q", got)
	}
}

func TestMissingKey(t *testing.T) {
	tr := newTranslator(t, "en")

	if got := tr.T("NonExistentKey"); got != "NonExistentKey" {
		t.Errorf("T(NonExistentKey) = %q, want 'NonExistentKey'", got)
	}
}

func TestInvalidLanguageTag(t *testing.T) {
	if _, err := New("not a tag!", nil); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLocalesDefineSameKeys(t *testing.T) {
	keys := func(name string) map[string]string {
		data, err := localeFS.ReadFile("locales/" + name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		var messages map[string]string
		if err := json.Unmarshal(data, &messages); err != nil {
			t.Fatalf("decode %s: %v", name, err)
		}
		return messages
	}

	en := keys("en.json")
	for _, lang := range Supported {
		other := keys(lang + ".json")
		for id := range en {
			if _, ok := other[id]; !ok {
				t.Errorf("%s.json is missing %q", lang, id)
			}
		}
	}
}
