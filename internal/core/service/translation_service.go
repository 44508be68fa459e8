package service

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/faqdesk/faqconsole/internal/core/domain"
	"github.com/faqdesk/faqconsole/internal/core/ports"
)

// Translator holds the active locale and resolves display strings from a
// static translation table.
type Translator struct {
	// writeMu keeps the locale, the client header and the persisted value in step.
	writeMu sync.Mutex
	mu      sync.RWMutex
	current string
	table   domain.TranslationTable
	store   ports.StateStore
	sink    ports.HeaderSink
	log     zerolog.Logger
}

// NewTranslator returns a Translator on the default locale. sink may be nil.
func NewTranslator(table domain.TranslationTable, store ports.StateStore, sink ports.HeaderSink, log zerolog.Logger) *Translator {
	return &Translator{
		current: domain.DefaultLocale,
		table:   table,
		store:   store,
		sink:    sink,
		log:     log,
	}
}

// Restore loads the persisted locale, falling back to the default when it is
// missing or unsupported, and pushes it to the header sink.
func (t *Translator) Restore(ctx context.Context) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	stored, err := t.store.LoadLocale(ctx)
	if err != nil {
		return err
	}

	code := NormalizeLocale(stored)
	if stored != "" && code != stored {
		t.log.Debug().Str("stored", stored).Str("locale", code).Msg("persisted locale normalised")
	}

	t.mu.Lock()
	t.current = code
	t.mu.Unlock()

	if t.sink != nil {
		t.sink.SetLocale(code)
	}
	return nil
}

// SetLocale switches the active locale. Unsupported codes are ignored and
// false is returned. A failed save is logged; the switch still applies.
func (t *Translator) SetLocale(ctx context.Context, code string) bool {
	if _, ok := domain.LookupLocale(code); !ok {
		t.log.Debug().Str("locale", code).Msg("unsupported locale ignored")
		return false
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	t.mu.Lock()
	t.current = code
	t.mu.Unlock()

	if t.sink != nil {
		t.sink.SetLocale(code)
	}
	if err := t.store.SaveLocale(ctx, code); err != nil {
		t.log.Warn().Err(err).Str("locale", code).Msg("failed to persist locale")
	}
	return true
}

// T resolves key in the current locale, then in English, then returns key itself.
func (t *Translator) T(key string) string {
	cur := t.Current().Code

	if v := t.table[cur][key]; v != "" {
		return v
	}
	if v := t.table[domain.DefaultLocale][key]; v != "" {
		return v
	}
	return key
}

// Labels resolves every catalog key starting with one of prefixes. Keys are
// enumerated from the English catalog, which every locale falls back to.
func (t *Translator) Labels(prefixes ...string) map[string]string {
	out := map[string]string{}
	for key := range t.table[domain.DefaultLocale] {
		for _, p := range prefixes {
			if strings.HasPrefix(key, p) {
				out[key] = t.T(key)
				break
			}
		}
	}
	return out
}

// Current returns the active locale.
func (t *Translator) Current() domain.Locale {
	t.mu.RLock()
	code := t.current
	t.mu.RUnlock()

	l, _ := domain.LookupLocale(code)
	return l
}

// IsRTL reports whether the active locale is Arabic.
func (t *Translator) IsRTL() bool {
	return t.Current().Code == domain.LocaleArabic
}

// Document returns the lang/dir attributes for the active locale.
func (t *Translator) Document() domain.Document {
	return domain.DocumentFor(t.Current().Code)
}

// Supported lists the selectable locales.
func (t *Translator) Supported() []domain.Locale {
	return domain.SupportedLocales()
}

// NormalizeLocale maps a persisted or user supplied tag such as "AR" or
// "ar-SA" onto a supported locale code, defaulting to English.
func NormalizeLocale(code string) string {
	if c, ok := ParseLocale(code); ok {
		return c
	}
	return domain.DefaultLocale
}

// ParseLocale resolves a BCP 47 tag to a supported locale code by its base
// language. It reports false when the language is not supported.
func ParseLocale(code string) (string, bool) {
	code = strings.TrimSpace(code)
	if _, ok := domain.LookupLocale(code); ok {
		return code, true
	}

	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	if _, ok := domain.LookupLocale(base.String()); ok {
		return base.String(), true
	}
	return "", false
}
