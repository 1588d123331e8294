// Package example shows a minimal cola.MustGenerate call site, the shape
// `cola sites` is meant to discover in a real module.
package example

import (
	_ "embed"

	"github.com/colalang/cola/cola"
)

//go:embed config.cola
var configSrc []byte

var Config = cola.MustGenerate("config.cola", configSrc, cola.Options{
	BareCola: true,
	Package:  "example",
})
