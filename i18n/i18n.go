package i18n

import (
	"log"
	"os"
	"strings"
	"sync"

	"github.com/jeandeaual/go-locale"
)

// EnvLang forces the interface language when set.
const EnvLang = "COUNTDOWN_LANG"

var (
	mu   sync.RWMutex
	lang string
)

var supported = []string{"pt", "es", "ru"}

var translations = map[string]map[string]string{
	"Duration (10m, 1h 30m, add 5m)": {
		"pt": "Duração (10m, 1h 30m, add 5m)",
		"es": "Duración (10m, 1h 30m, add 5m)",
		"ru": "Длительность (10m, 1h 30m, add 5m)",
	},
	"Timer set for %s": {
		"pt": "Temporizador definido para %s",
		"es": "Temporizador establecido en %s",
		"ru": "Таймер установлен на %s",
	},
	"Please enter a duration": {
		"pt": "Informe uma duração",
		"es": "Introduce una duración",
		"ru": "Введите длительность",
	},
	"Could not understand input. Try something like '1 hour 30 minutes'": {
		"pt": "Não foi possível entender. Tente algo como '1 hour 30 minutes'",
		"es": "No se pudo entender. Prueba algo como '1 hour 30 minutes'",
		"ru": "Не удалось распознать ввод. Попробуйте, например, '1 hour 30 minutes'",
	},
	"Countdown completed!": {
		"pt": "Contagem regressiva concluída!",
		"es": "¡Cuenta regresiva completada!",
		"ru": "Обратный отсчёт завершён!",
	},
	"Countdown Timer": {
		"pt": "Contagem Regressiva",
		"es": "Cuenta Regresiva",
		"ru": "Таймер обратного отсчёта",
	},
	"Your countdown has finished!": {
		"pt": "Sua contagem regressiva terminou!",
		"es": "¡Tu cuenta regresiva ha terminado!",
		"ru": "Ваш обратный отсчёт завершён!",
	},
	"Start": {
		"pt": "Iniciar",
		"es": "Iniciar",
		"ru": "Старт",
	},
	"Pause": {
		"pt": "Pausar",
		"es": "Pausar",
		"ru": "Пауза",
	},
	"Start/Pause": {
		"pt": "Iniciar/Pausar",
		"es": "Iniciar/Pausar",
		"ru": "Старт/Пауза",
	},
	"Reset": {
		"pt": "Resetar",
		"es": "Reiniciar",
		"ru": "Сброс",
	},
	"Settings": {
		"pt": "Configurações",
		"es": "Ajustes",
		"ru": "Настройки",
	},
	"Help": {
		"pt": "Ajuda",
		"es": "Ayuda",
		"ru": "Справка",
	},
	"Completion Sound": {
		"pt": "Som de conclusão",
		"es": "Sonido al finalizar",
		"ru": "Звук завершения",
	},
	"Preview": {
		"pt": "Ouvir",
		"es": "Escuchar",
		"ru": "Прослушать",
	},
	"Background Opacity": {
		"pt": "Opacidade do fundo",
		"es": "Opacidad del fondo",
		"ru": "Непрозрачность фона",
	},
	"Background Color": {
		"pt": "Cor do fundo",
		"es": "Color del fondo",
		"ru": "Цвет фона",
	},
	"Choose": {
		"pt": "Escolher",
		"es": "Elegir",
		"ru": "Выбрать",
	},
	"Default": {
		"pt": "Padrão",
		"es": "Predeterminado",
		"ru": "По умолчанию",
	},
	"Show in Menu Bar": {
		"pt": "Mostrar na barra de menus",
		"es": "Mostrar en la barra de menús",
		"ru": "Показывать в строке меню",
	},
	"Show": {
		"pt": "Mostrar",
		"es": "Mostrar",
		"ru": "Показать",
	},
	"Volume": {
		"pt": "Volume",
		"es": "Volumen",
		"ru": "Громкость",
	},
	"Close": {
		"pt": "Fechar",
		"es": "Cerrar",
		"ru": "Закрыть",
	},
}

func init() {
	setLang(detect())
}

// detect picks the language from EnvLang or the system locale.
func detect() string {
	if forcedLang := strings.TrimSpace(os.Getenv(EnvLang)); forcedLang != "" {
		log.Printf("%s is set to: '%s'", EnvLang, forcedLang)
		return Normalize(forcedLang)
	}

	userLocales, err := locale.GetLocales()
	if err != nil {
		log.Println("Could not get user locale, defaulting to english")
		return "en"
	}
	if len(userLocales) == 0 {
		log.Println("No user locale detected, defaulting to english")
		return "en"
	}
	log.Printf("Detected user locale: %s", userLocales[0])
	return Normalize(userLocales[0])
}

// Normalize maps a locale such as "pt_BR" or "es-419" to a supported
// language code, falling back to "en".
func Normalize(loc string) string {
	loc = strings.ToLower(strings.TrimSpace(loc))
	for _, l := range supported {
		if strings.HasPrefix(loc, l) {
			return l
		}
	}
	return "en"
}

// SetLang overrides the detected language. The environment variable still
// wins so users can force a language for a single run.
func SetLang(l string) {
	if strings.TrimSpace(l) == "" || os.Getenv(EnvLang) != "" {
		return
	}
	setLang(Normalize(l))
}

func setLang(l string) {
	mu.Lock()
	lang = l
	mu.Unlock()
	log.Printf("Language set to: %s", l)
}

// T returns the translation of key, or key itself.
func T(key string) string {
	mu.RLock()
	defer mu.RUnlock()
	if translated, ok := translations[key][lang]; ok {
		return translated
	}
	return key
}

