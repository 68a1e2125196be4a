// internal/i18n/i18n.go
package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type I18n struct {
	mu           sync.RWMutex
	translations map[string]map[string]string
	defaultLang  string
}

var instance *I18n
var once sync.Once

// Initialize loads locale files from localesPath on top of the built-in
// English defaults. A missing locale directory is not an error; the
// defaults cover every key.
func Initialize(localesPath string) error {
	var err error
	once.Do(func() {
		instance = &I18n{
			translations: map[string]map[string]string{"en": defaultTranslations},
			defaultLang:  "en",
		}
		err = instance.LoadTranslations(localesPath)
	})
	return err
}

func (i *I18n) LoadTranslations(localesPath string) error {
	entries, err := os.ReadDir(localesPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read locales directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		lang := strings.TrimSuffix(entry.Name(), ".json")

		data, err := os.ReadFile(filepath.Join(localesPath, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read locale file %s: %w", entry.Name(), err)
		}

		var translations map[string]string
		if err := json.Unmarshal(data, &translations); err != nil {
			return fmt.Errorf("failed to unmarshal locale file %s: %w", entry.Name(), err)
		}

		i.mu.Lock()
		existing, ok := i.translations[lang]
		if !ok {
			existing = make(map[string]string, len(translations))
			i.translations[lang] = existing
		}
		for key, value := range translations {
			existing[key] = value
		}
		i.mu.Unlock()
	}

	return nil
}

// T resolves a key for the requested language, falling back to the default
// language and finally to the key itself. Args are interpolated when the
// message carries format verbs.
func T(lang, key string, args ...interface{}) string {
	if instance == nil {
		return format(defaultTranslations[key], key, args...)
	}

	instance.mu.RLock()
	defer instance.mu.RUnlock()

	if messages, ok := instance.translations[lang]; ok {
		if message, ok := messages[key]; ok {
			return format(message, key, args...)
		}
	}
	if messages, ok := instance.translations[instance.defaultLang]; ok {
		if message, ok := messages[key]; ok {
			return format(message, key, args...)
		}
	}
	return key
}

func format(message, key string, args ...interface{}) string {
	if message == "" {
		return key
	}
	if len(args) == 0 {
		return message
	}
	return fmt.Sprintf(message, args...)
}
