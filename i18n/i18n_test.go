package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func withLang(t *testing.T, l string) {
	t.Helper()
	mu.RLock()
	prev := lang
	mu.RUnlock()
	setLang(l)
	t.Cleanup(func() { setLang(prev) })
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"pt_BR":  "pt",
		"es-419": "es",
		"ru-RU":  "ru",
		"RU":     "ru",
		"en-US":  "en",
		"de":     "en",
		"":       "en",
	}
	for in, want := range tests {
		assert.Equal(t, want, Normalize(in), "Normalize(%q)", in)
	}
}

func TestTranslate(t *testing.T) {
	withLang(t, "pt")
	assert.Equal(t, "Resetar", T("Reset"))
	assert.Equal(t, "Temporizador definido para %s", T("Timer set for %s"))
	assert.Equal(t, "Unknown key", T("Unknown key"))

	withLang(t, "en")
	assert.Equal(t, "Reset", T("Reset"))
}

func TestEveryTranslationCoversSupportedLanguages(t *testing.T) {
	for key, byLang := range translations {
		for _, l := range supported {
			assert.NotEmpty(t, byLang[l], "%q missing %s", key, l)
		}
	}
}

func TestEngineMessages(t *testing.T) {
	withLang(t, "es")
	m := EngineMessages()
	assert.Equal(t, "¡Cuenta regresiva completada!", m.Completed)
	assert.Equal(t, "Temporizador establecido en %s", m.TimerSet)
	assert.Equal(t, "Cuenta Regresiva", m.NotificationTitle)
}
