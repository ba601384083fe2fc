package locale

import (
	"embed"
	"io/fs"
	"strings"

	"picturestream/logger"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

var (
	i18nBundle       *i18n.Bundle
	defaultLocalizer *i18n.Localizer
)

// I18nFunc is the translation function installed into the gin context by
// LocalizerMiddleware.
type I18nFunc func(key string, params ...string) string

func InitLocalizer(i18nFS embed.FS) error {
	i18nBundle = i18n.NewBundle(language.MustParse("en-US"))
	i18nBundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	if err := parseTranslationFiles(i18nFS, i18nBundle); err != nil {
		return err
	}

	defaultLocalizer = i18n.NewLocalizer(i18nBundle, "en-US")
	return nil
}

// createTemplateData splits "key==value" params into template data.
func createTemplateData(params []string) map[string]any {
	templateData := make(map[string]any)
	for _, param := range params {
		parts := strings.SplitN(param, "==", 2)
		if len(parts) == 2 {
			templateData[parts[0]] = parts[1]
		}
	}
	return templateData
}

func localize(localizer *i18n.Localizer, key string, params ...string) string {
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: createTemplateData(params),
	})
	if err != nil {
		logger.Errorf("Failed to localize message %s: %v", key, err)
		return key
	}
	return msg
}

// I18n resolves key in the default language. Request handlers use the
// per-request function installed by LocalizerMiddleware instead.
func I18n(key string, params ...string) string {
	if defaultLocalizer == nil {
		// Localizer not ready; the key is better than a panic.
		return key
	}
	return localize(defaultLocalizer, key, params...)
}

// LocalizerMiddleware negotiates the language per request from the lang
// cookie or the Accept-Language header. Each request gets its own localizer
// so concurrent requests never see each other's language.
func LocalizerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var lang string

		if cookie, err := c.Request.Cookie("lang"); err == nil {
			lang = cookie.Value
		} else {
			lang = c.GetHeader("Accept-Language")
		}

		localizer := i18n.NewLocalizer(i18nBundle, lang)

		c.Set("localizer", localizer)
		c.Set("I18n", I18nFunc(func(key string, params ...string) string {
			return localize(localizer, key, params...)
		}))
		c.Next()
	}
}

func parseTranslationFiles(i18nFS embed.FS, bundle *i18n.Bundle) error {
	return fs.WalkDir(i18nFS, "translation",
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}

			data, err := i18nFS.ReadFile(path)
			if err != nil {
				return err
			}

			_, err = bundle.ParseMessageFileBytes(data, path)
			return err
		})
}
