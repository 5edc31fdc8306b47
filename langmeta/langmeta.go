// Package langmeta provides display metadata for locale codes (native
// names and emoji flags) used by the CLI status output.
package langmeta

import "strings"

// Meta describes locale display metadata.
type Meta struct {
	// Native is the language's own name for itself.
	Native string
	Flag   string
}

// registry holds canonical metadata. Variants not listed here fall back to
// their base language in Resolve.
var registry = map[string]Meta{
	"ar":    {Native: "العربية", Flag: "🇸🇦"},
	"bg":    {Native: "Български", Flag: "🇧🇬"},
	"cs":    {Native: "Čeština", Flag: "🇨🇿"},
	"da":    {Native: "Dansk", Flag: "🇩🇰"},
	"de":    {Native: "Deutsch", Flag: "🇩🇪"},
	"el":    {Native: "Ελληνικά", Flag: "🇬🇷"},
	"en":    {Native: "English", Flag: "🇺🇸"},
	"en-GB": {Native: "English (UK)", Flag: "🇬🇧"},
	"es":    {Native: "Español", Flag: "🇪🇸"},
	"fi":    {Native: "Suomi", Flag: "🇫🇮"},
	"fr":    {Native: "Français", Flag: "🇫🇷"},
	"he":    {Native: "עברית", Flag: "🇮🇱"},
	"hu":    {Native: "Magyar", Flag: "🇭🇺"},
	"it":    {Native: "Italiano", Flag: "🇮🇹"},
	"ja":    {Native: "日本語", Flag: "🇯🇵"},
	"ko":    {Native: "한국어", Flag: "🇰🇷"},
	"nl":    {Native: "Nederlands", Flag: "🇳🇱"},
	"pl":    {Native: "Polski", Flag: "🇵🇱"},
	"pt":    {Native: "Português", Flag: "🇵🇹"},
	"pt-BR": {Native: "Português (Brasil)", Flag: "🇧🇷"},
	"ro":    {Native: "Română", Flag: "🇷🇴"},
	"ru":    {Native: "Русский", Flag: "🇷🇺"},
	"sv":    {Native: "Svenska", Flag: "🇸🇪"},
	"tr":    {Native: "Türkçe", Flag: "🇹🇷"},
	"uk":    {Native: "Українська", Flag: "🇺🇦"},
	"vi":    {Native: "Tiếng Việt", Flag: "🇻🇳"},
	"zh":    {Native: "中文", Flag: "🇨🇳"},
	"zh-TW": {Native: "繁體中文", Flag: "🇹🇼"},
}

// canonicalize normalizes "pt_br" / " EN-us " style input to "pt-BR".
func canonicalize(code string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(code), "_", "-")
	if normalized == "" {
		return ""
	}
	parts := strings.Split(normalized, "-")
	parts[0] = strings.ToLower(parts[0])
	if len(parts) >= 2 {
		parts[1] = strings.ToUpper(parts[1])
	}
	return strings.Join(parts, "-")
}

// Resolve returns best-effort metadata for a locale code, falling back from
// variant to base language and finally to the code itself.
func Resolve(code string) Meta {
	if m, ok := registry[code]; ok {
		return m
	}
	normalized := canonicalize(code)
	if m, ok := registry[normalized]; ok {
		return m
	}
	if parts := strings.SplitN(normalized, "-", 2); len(parts) == 2 {
		if m, ok := registry[parts[0]]; ok {
			return m
		}
	}
	return Meta{Native: code}
}
