package model_test

import (
	"context"
	"io/fs"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-folio/internal/openapi/parser"
	"github.com/goliatone/go-folio/pkg/model"
	pkgopenapi "github.com/goliatone/go-folio/pkg/openapi"
)

func contactOperation(t *testing.T) pkgopenapi.Operation {
	t.Helper()
	raw, err := fs.ReadFile(pkgopenapi.ContractFS(), pkgopenapi.ContactContractName)
	if err != nil {
		t.Fatalf("read contract: %v", err)
	}
	doc := pkgopenapi.MustNewDocument(pkgopenapi.ContactSource(), raw)
	ops, err := parser.New(pkgopenapi.NewParserOptions()).Operations(context.Background(), doc)
	if err != nil {
		t.Fatalf("parse contract: %v", err)
	}
	op, ok := ops[pkgopenapi.ContactOperationID]
	if !ok {
		t.Fatalf("contract missing %s", pkgopenapi.ContactOperationID)
	}
	return op
}

func TestBuilder_ContractMatchesBuiltInContactForm(t *testing.T) {
	form, err := model.NewBuilder().Build(contactOperation(t))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if diff := cmp.Diff(model.ContactForm(), form); diff != "" {
		t.Fatalf("contract form mismatch (-builtin +contract):\n%s", diff)
	}
}

func TestBuilder_OrdersByHintThenName(t *testing.T) {
	op := pkgopenapi.MustNewOperation("op", "post", "/x", pkgopenapi.Schema{
		Type: "object",
		Properties: map[string]pkgopenapi.Schema{
			"zeta":  {Type: "string"},
			"alpha": {Type: "string"},
			"beta": {Type: "string", Extensions: map[string]any{
				"x-folio": map[string]any{"order": float64(1)},
			}},
		},
	})

	form, err := model.NewBuilder().Build(op)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if diff := cmp.Diff([]string{"beta", "alpha", "zeta"}, form.Names()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if form.Method != "POST" {
		t.Fatalf("expected upper-cased method, got %q", form.Method)
	}
	if field, _ := form.Field("alpha"); field.Label != "Alpha" {
		t.Fatalf("expected default label, got %q", field.Label)
	}
}

func TestBuilder_RejectsNonStringFields(t *testing.T) {
	op := pkgopenapi.MustNewOperation("op", "POST", "/x", pkgopenapi.Schema{
		Type: "object",
		Properties: map[string]pkgopenapi.Schema{
			"age": {Type: "integer"},
		},
	})
	if _, err := model.NewBuilder().Build(op); err == nil {
		t.Fatalf("expected error for integer field")
	}
}

func TestBuilder_AppliesDecorators(t *testing.T) {
	form, err := model.NewBuilder(model.WithDecorators(model.WithMessages(map[string]map[model.Rule]string{
		model.FieldName: {model.RuleMaxLength: "Nome grande demais"},
	}))).Build(contactOperation(t))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	field, _ := form.Field(model.FieldName)
	if msg, ok := field.Message(model.RuleMaxLength); !ok || msg != "Nome grande demais" {
		t.Fatalf("expected decorated message, got %q", msg)
	}
}

func TestFormFields_CloneIsIndependent(t *testing.T) {
	original := model.FormFields{"name": "Ana"}
	clone := original.Clone()
	clone["name"] = "Bia"
	if original["name"] != "Ana" {
		t.Fatalf("clone mutated original")
	}
	if got := model.ContactForm().Empty(); len(got) != 3 || got[model.FieldEmail] != "" {
		t.Fatalf("unexpected empty fields: %v", got)
	}
}
