// Package locales embeds the shipped translation files. es.toml is the
// default locale and its messages match the built-in Spanish defaults.
package locales

import "embed"

// FS holds every shipped language file at its root
//
//go:embed *.toml *.yaml
var FS embed.FS

// Default is the locale used when none is configured
const Default = "es"
