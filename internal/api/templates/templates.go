// Package templates embeds the server-rendered pages.
package templates

import "embed"

//go:embed *.gohtml
var FS embed.FS
