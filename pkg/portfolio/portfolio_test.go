package portfolio

import (
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDefault_MatchesSite(t *testing.T) {
	content := Default()
	if content.Owner != "Elielandrade" {
		t.Fatalf("unexpected owner %q", content.Owner)
	}
	if got := len(content.Experience.Items); got != 3 {
		t.Fatalf("expected 3 experiences, got %d", got)
	}
	if got := len(content.About.Skills); got != 4 {
		t.Fatalf("expected 4 skills, got %d", got)
	}
	if content.Contact.SubmitLabel != "Enviar Mensagem" || content.Contact.PendingLabel != "Enviando..." {
		t.Fatalf("unexpected submit labels %+v", content.Contact)
	}
}

func TestProjects_SplitPreservesOrder(t *testing.T) {
	projects := Default().Projects
	featured := titles(projects.Featured())
	other := titles(projects.Other())

	if diff := cmp.Diff([]string{"E-commerce Platform", "Finance Dashboard"}, featured); diff != "" {
		t.Fatalf("featured mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Task Management App", "Portfolio Generator"}, other); diff != "" {
		t.Fatalf("other mismatch (-want +got):\n%s", diff)
	}
}

func titles(projects []Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Title)
	}
	return out
}

func TestView_ExpandsFooterAndMarkdown(t *testing.T) {
	view := Default().View(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	if view.Copyright != "© 2026 Elielandrade. Todos os direitos reservados." {
		t.Fatalf("unexpected copyright %q", view.Copyright)
	}
	if strings.Count(view.AboutHTML, "<p>") != 3 {
		t.Fatalf("expected three paragraphs, got %q", view.AboutHTML)
	}
	if !strings.HasPrefix(Icon("github"), "<svg") {
		t.Fatalf("expected github icon svg, got %q", Icon("github"))
	}
}

func TestRenderMarkdown_Sanitises(t *testing.T) {
	out := RenderMarkdown("Olá **mundo** <script>alert(1)</script> [link](https://example.com)")
	if strings.Contains(out, "<script") {
		t.Fatalf("script survived sanitising: %q", out)
	}
	if !strings.Contains(out, "<strong>mundo</strong>") {
		t.Fatalf("expected emphasis, got %q", out)
	}
	if !strings.Contains(out, `href="https://example.com"`) {
		t.Fatalf("expected link, got %q", out)
	}
	if RenderMarkdown("   ") != "" {
		t.Fatalf("expected empty output for blank input")
	}
}

func TestSanitizeSVG_StripsScripts(t *testing.T) {
	out := SanitizeSVG(`<svg onload="x()"><script>x()</script><path d="M0 0"/></svg>`)
	if strings.Contains(out, "script") || strings.Contains(out, "onload") {
		t.Fatalf("unsafe markup survived: %q", out)
	}
	if Icon("unknown") != "" {
		t.Fatalf("expected empty icon for unknown name")
	}
}

func TestParse_JSONAndYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"site.json": {Data: []byte(`{"owner":"Ana","social":[{"label":"GitHub","href":"https://github.com/ana","icon":"github"}]}`)},
		"site.yml":  {Data: []byte("owner: Bia\n")},
		"bad.yaml":  {Data: []byte("title: sem dono\n")},
		"icon.yaml": {Data: []byte("owner: Ana\nsocial:\n  - label: X\n    icon: nope\n")},
	}

	content, err := LoadFS(fsys, "site.json")
	if err != nil {
		t.Fatalf("load json: %v", err)
	}
	if content.Owner != "Ana" || !content.Social[0].External() {
		t.Fatalf("unexpected json content %+v", content)
	}

	content, err = LoadFS(fsys, "site.yml")
	if err != nil || content.Owner != "Bia" {
		t.Fatalf("load yaml: %v %+v", err, content)
	}

	if _, err := LoadFS(fsys, "bad.yaml"); err == nil {
		t.Fatalf("expected missing owner error")
	}
	if _, err := LoadFS(fsys, "icon.yaml"); err == nil {
		t.Fatalf("expected unknown icon error")
	}
}
