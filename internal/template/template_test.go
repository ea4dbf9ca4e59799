package template_test

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"bookbind/internal/template"
)

func TestRenderSubstitutesInDocumentOrder(t *testing.T) {
	tpl := &template.Template{
		Name: "test.xml",
		Root: &template.Node{
			Tag:   "root",
			Attrs: []template.Attr{{Name: "version", Value: template.Slot}},
			Children: []*template.Node{
				{Tag: "first", Text: template.Slot},
				{Tag: "second", Text: template.Slot},
			},
		},
	}

	if got := tpl.Arity(); got != 3 {
		t.Fatalf("Arity = %d, want 3", got)
	}

	out, err := tpl.Render("1.0", "alpha", "beta")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	doc := string(out)
	if !strings.Contains(doc, `<root version="1.0">`) {
		t.Fatalf("version slot not filled:\n%s", doc)
	}
	if !strings.Contains(doc, "<first>alpha</first>") || !strings.Contains(doc, "<second>beta</second>") {
		t.Fatalf("text slots not filled in order:\n%s", doc)
	}
}

func TestRenderArityMismatch(t *testing.T) {
	tpl := template.Container()

	for _, values := range [][]string{{}, {"a", "b"}} {
		if _, err := tpl.Render(values...); !errors.Is(err, template.ErrArity) {
			t.Fatalf("Render(%d values) error = %v, want ErrArity", len(values), err)
		}
	}
}

func TestRenderEscapesValues(t *testing.T) {
	out, err := template.Nav().Render("uid", `Tom & "Jerry" <3`)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	doc := string(out)
	if strings.Contains(doc, `"Jerry"`) && strings.Contains(doc, "<3") {
		t.Fatalf("value not escaped:\n%s", doc)
	}
	if !strings.Contains(doc, "Tom &amp;") {
		t.Fatalf("ampersand not escaped:\n%s", doc)
	}
}

func TestRenderDoesNotMutateSharedTemplate(t *testing.T) {
	first, err := template.Container().Render("OEBPS/content.opf")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	second, err := template.Container().Render("OEBPS/content.opf")
	if err != nil {
		t.Fatalf("second Render failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("repeated renders diverged; template mutated")
	}
}

func TestBootstrapTemplatesAreWellFormed(t *testing.T) {
	cases := []struct {
		name   string
		doc    []byte
		checks []string
	}{}

	container, err := template.Container().Render(template.PackagePath)
	if err != nil {
		t.Fatalf("container render: %v", err)
	}
	cases = append(cases, struct {
		name   string
		doc    []byte
		checks []string
	}{"container", container, []string{
		`full-path="OEBPS/content.opf"`,
		`media-type="application/oebps-package+xml"`,
	}})

	pkg, err := template.Package().Render("2.0", "urn:uuid:1234", "bookbind 0.3.0", "My Book")
	if err != nil {
		t.Fatalf("package render: %v", err)
	}
	cases = append(cases, struct {
		name   string
		doc    []byte
		checks []string
	}{"package", pkg, []string{
		`version="2.0"`,
		`unique-identifier="bookid"`,
		`id="bookid"`,
		"urn:uuid:1234",
		`content="bookbind 0.3.0"`,
		"<manifest/>",
		"<spine",
	}})

	nav, err := template.Nav().Render("urn:uuid:1234", "My Book")
	if err != nil {
		t.Fatalf("nav render: %v", err)
	}
	cases = append(cases, struct {
		name   string
		doc    []byte
		checks []string
	}{"nav", nav, []string{
		"DOCTYPE ncx",
		`name="dtb:uid" content="urn:uuid:1234"`,
		`name="dtb:depth" content="0"`,
		"<navMap/>",
	}})

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, want := range tc.checks {
				if !strings.Contains(string(tc.doc), want) {
					t.Fatalf("%s missing %q:\n%s", tc.name, want, tc.doc)
				}
			}
			decoder := xml.NewDecoder(bytes.NewReader(tc.doc))
			// Skip the external DTD; only structural well-formedness matters.
			decoder.Strict = true
			for {
				_, err := decoder.Token()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					t.Fatalf("%s not well-formed XML: %v", tc.name, err)
				}
			}
		})
	}
}
