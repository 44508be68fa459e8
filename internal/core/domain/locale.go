package domain

const (
	LocaleEnglish = "en"
	LocaleArabic  = "ar"

	// DefaultLocale is used when no locale is persisted or the persisted one is unknown.
	DefaultLocale = LocaleEnglish
)

const (
	DirLTR = "ltr"
	DirRTL = "rtl"
)

// Locale describes a supported display language.
type Locale struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Flag string `json:"flag"`
	RTL  bool   `json:"rtl"`
}

var supportedLocales = []Locale{
	{Code: LocaleEnglish, Name: "English", Flag: "🇺🇸"},
	{Code: LocaleArabic, Name: "العربية", Flag: "🇸🇦", RTL: true},
}

// SupportedLocales returns a copy of the supported locale list in display order.
func SupportedLocales() []Locale {
	out := make([]Locale, len(supportedLocales))
	copy(out, supportedLocales)
	return out
}

// LookupLocale finds a supported locale by its exact code.
func LookupLocale(code string) (Locale, bool) {
	for _, l := range supportedLocales {
		if l.Code == code {
			return l, true
		}
	}
	return Locale{}, false
}

// Document holds the process-wide document attributes driven by the locale.
type Document struct {
	Lang string `json:"lang"`
	Dir  string `json:"dir"`
}

// DocumentFor returns the document attributes for a locale code.
func DocumentFor(code string) Document {
	dir := DirLTR
	if code == LocaleArabic {
		dir = DirRTL
	}
	return Document{Lang: code, Dir: dir}
}

// TranslationTable maps a locale code to its key -> display string catalog.
type TranslationTable map[string]map[string]string
