package translator

import (
	"embed"
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

//go:embed translation/*.toml
var translations embed.FS

var Translator *i18n.Bundle

// InitTranslator loads every embedded translation file into Translator.
// Files that fail to parse are logged and skipped.
func InitTranslator() {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := translations.ReadDir("translation")
	if err != nil {
		zap.L().Error("failed to list translations", zap.Error(err))
		return
	}

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		if _, err := Translator.LoadMessageFileFS(translations, path.Join("translation", f.Name())); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", f.Name()), zap.Error(err))
		}
	}
}
