package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// LocaleEN 默认语言
	LocaleEN = "en"
	// LocaleHI 印地语
	LocaleHI = "hi"
)

const localeContextKey = "locale"

// ResolveLocale 解析请求语言：query > header > 默认
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return LocaleEN
	}
	if value, ok := c.Get(localeContextKey); ok {
		if locale, ok := value.(string); ok {
			if normalized := Normalize(locale); normalized != "" {
				return normalized
			}
		}
	}
	if normalized := Normalize(c.Query("locale")); normalized != "" {
		return normalized
	}
	if normalized := Normalize(c.GetHeader("Accept-Language")); normalized != "" {
		return normalized
	}
	return LocaleEN
}

// Normalize 归一化语言标识，未知语言返回空
func Normalize(locale string) string {
	normalized := strings.ToLower(strings.TrimSpace(locale))
	if normalized == "" {
		return ""
	}
	// Accept-Language 可能携带权重或地区后缀（hi-IN, en-IN;q=0.9）
	if idx := strings.IndexAny(normalized, ",;"); idx >= 0 {
		normalized = normalized[:idx]
	}
	if idx := strings.Index(normalized, "-"); idx >= 0 {
		normalized = normalized[:idx]
	}
	switch normalized {
	case LocaleEN, LocaleHI:
		return normalized
	}
	return ""
}

// T 返回指定语言的文案，缺失时回退英语，再缺失时返回 key
func T(locale, key string) string {
	locale = Normalize(locale)
	if locale == "" {
		locale = LocaleEN
	}
	if catalog, ok := catalogs[locale]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[LocaleEN][key]; ok {
		return msg
	}
	return key
}

// Sprintf 返回带参数的文案
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
