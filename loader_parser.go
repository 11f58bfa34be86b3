package folio

import (
	internalLoader "github.com/goliatone/go-folio/internal/openapi/loader"
	internalParser "github.com/goliatone/go-folio/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-folio/pkg/openapi"
)

// NewLoader constructs a contract loader while keeping the concrete type
// hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	cfg := pkgopenapi.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a parser backed by kin-openapi.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	cfg := pkgopenapi.NewParserOptions(options...)
	return internalParser.New(cfg)
}
