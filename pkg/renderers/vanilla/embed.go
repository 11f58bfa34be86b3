package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl templates/sections/*.tmpl templates/contact/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

const (
	StylesheetName = "folio.css"
	ScriptName     = "folio.js"
)

// Asset keys resolved through the theme's AssetURL.
const (
	StylesheetAssetKey = "folio.stylesheet"
	ScriptAssetKey     = "folio.script"
)

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded CSS/JS/images for serving over HTTP.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
