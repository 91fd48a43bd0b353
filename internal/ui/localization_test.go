package ui

import "testing"

func TestLocalizationFallbacks(t *testing.T) {
	loc := NewLocalization()

	if got := loc.GetText(KeySearch); got != "Search" {
		t.Errorf("default language text = %q, want Search", got)
	}

	loc.SetLanguage("ru")
	if got := loc.GetCurrentLanguage(); got != "ru" {
		t.Errorf("GetCurrentLanguage() = %q, want ru", got)
	}
	if got := loc.GetText(KeySearch); got != "Найти" {
		t.Errorf("ru text = %q", got)
	}

	loc.SetLanguage("xx")
	if got := loc.GetCurrentLanguage(); got != "en" {
		t.Errorf("unknown language selected %q, want en", got)
	}

	if got := loc.GetText("no_such_key"); got != "no_such_key" {
		t.Errorf("missing key = %q, want the key itself", got)
	}
}

func TestLocalizationTranslationsComplete(t *testing.T) {
	loc := NewLocalization()
	for lang := range loc.GetAvailableLanguages() {
		for key := range loc.texts["en"] {
			if _, ok := loc.texts[lang][key]; !ok {
				t.Errorf("%s translation misses %s", lang, key)
			}
		}
	}
}
