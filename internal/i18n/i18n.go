package i18n

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Supported lists the languages that ship with a locale file.
var Supported = []string{"en", "ru"}

type Translator struct {
	localizer *i18n.Localizer
	logger    *zap.Logger
}

// New loads every embedded locale and returns a translator for lang. English
// is the fallback for messages missing from lang.
func New(lang string, logger *zap.Logger) (*Translator, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("parse language %q: %w", lang, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("read locale file %s: %w", e.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, e.Name()); err != nil {
			return nil, fmt.Errorf("parse locale file %s: %w", e.Name(), err)
		}
	}

	return &Translator{
		localizer: i18n.NewLocalizer(bundle, tag.String(), "en"),
		logger:    logger,
	}, nil
}

// MustNew is New for languages known to be embedded.
func MustNew(lang string) *Translator {
	t, err := New(lang, nil)
	if err != nil {
		panic(err)
	}
	return t
}

// T translates a message by ID.
func (t *Translator) T(msgID string) string {
	return t.Td(msgID, nil)
}

// Td translates a message by ID with template data.
func (t *Translator) Td(msgID string, data map[string]any) string {
	s, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    msgID,
		TemplateData: data,
	})
	if err != nil {
		t.logger.Warn("missing translation", zap.String("id", msgID), zap.Error(err))
		return msgID
	}
	return s
}
