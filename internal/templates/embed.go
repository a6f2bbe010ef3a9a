// Package templates holds the server-rendered pages compiled into the binary.
package templates

import "embed"

//go:embed *.html
var Files embed.FS
