package folio

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	pkgopenapi "github.com/goliatone/go-folio/pkg/openapi"
)

func TestRuntimeAssetsFSContainsBundle(t *testing.T) {
	data, err := fs.ReadFile(RuntimeAssetsFS(), "folio.js")
	if err != nil {
		t.Fatalf("expected script to be readable: %v", err)
	}
	if !strings.Contains(string(data), "IntersectionObserver") {
		t.Fatalf("expected script to include section reveal")
	}
	if _, err := fs.ReadFile(RuntimeAssetsFS(), "folio.css"); err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
}

func TestEmbeddedTemplatesContainsPage(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "templates/page.tmpl"); err != nil {
		t.Fatalf("expected page template: %v", err)
	}
}

func TestGenerateHTMLWithEmbeddedContract(t *testing.T) {
	out, err := GenerateHTML(context.Background(), nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), `name="message"`) {
		t.Fatalf("expected contact form in output")
	}
}

func TestValidateFacade(t *testing.T) {
	result := Validate(FormFields{"name": "Ana", "email": "ana@example.com", "message": "Oi"})
	if !result.Valid() {
		t.Fatalf("expected valid result, got %v", result.Errors())
	}
}

func TestLoaderAndParserFacade(t *testing.T) {
	ctx := context.Background()
	loader := NewLoader(pkgopenapi.WithFileSystem(pkgopenapi.ContractFS()))
	doc, err := loader.Load(ctx, pkgopenapi.ContactSource())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ops, err := NewParser().Operations(ctx, doc)
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	if _, ok := ops[pkgopenapi.ContactOperationID]; !ok {
		t.Fatalf("expected %s in %v", pkgopenapi.ContactOperationID, ops)
	}
}
