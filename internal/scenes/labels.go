package scenes

var labels = map[string]map[string]string{
	"en": {
		"desktop":    "Desktop",
		"settings":   "Settings",
		"restart":    "Restart",
		"shutdown":   "Shut down",
		"back":       "Back",
		"reset":      "Reset",
		"theme":      "Theme",
		"language":   "Language",
		"navigation": "Navigation",
		"launch":     "Launch",
		"menu":       "Menu",
		"power":      "Power",
		"error":      "System error",
		"ready":      "System ready",
		"starting":   "Starting system...",
	},
	"es": {
		"desktop":    "Escritorio",
		"settings":   "Configuración",
		"restart":    "Reiniciar",
		"shutdown":   "Apagar",
		"back":       "Volver",
		"reset":      "Restablecer",
		"theme":      "Tema",
		"language":   "Idioma",
		"navigation": "Navegación",
		"launch":     "Abrir",
		"menu":       "Menú",
		"power":      "Apagar",
		"error":      "Error del sistema",
		"ready":      "Sistema listo",
		"starting":   "Iniciando sistema...",
	},
}

// Languages lists the supported label sets.
var Languages = []string{"en", "es"}

func label(lang, key string) string {
	if set, ok := labels[lang]; ok {
		if s, ok := set[key]; ok {
			return s
		}
	}
	if s, ok := labels["en"][key]; ok {
		return s
	}
	return key
}
