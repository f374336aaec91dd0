// internal/middleware/i18n.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

var (
	supportedTags = []language.Tag{
		language.English,
		language.MustParse("zh-TW"),
	}
	supportedNames = []string{"en", "zh_TW"}
	langMatcher    = language.NewMatcher(supportedTags)
)

// I18nMiddleware picks the response language from Accept-Language.
func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", matchLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

func matchLanguage(header string) string {
	if header == "" {
		return supportedNames[0]
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return supportedNames[0]
	}
	_, index, confidence := langMatcher.Match(tags...)
	if confidence == language.No {
		return supportedNames[0]
	}
	return supportedNames[index]
}
