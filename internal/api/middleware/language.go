package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ehtishamsajjad/tm/pkg/translator"
)

const langKey = "lang"

// LanguageMiddleware picks the response language from the Accept-Language header.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.GetHeader("Accept-Language")
		// Keep only the first, most preferred tag.
		lang, _, _ = strings.Cut(lang, ",")
		lang, _, _ = strings.Cut(lang, ";")
		lang = strings.TrimSpace(lang)
		if lang == "" {
			lang = translator.LanguageEn
		}
		c.Set(langKey, lang)
		c.Next()
	}
}

func GetLang(c *gin.Context) string {
	if lang, exists := c.Get(langKey); exists {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return translator.LanguageEn
}
