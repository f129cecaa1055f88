package format

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

type node struct {
	Text     string `json:"text"`
	Category string `json:"category"`
	Pending  bool   `json:"pending,omitempty"`
	Children []node `json:"children,omitempty"`
}

func (n node) WriteText(w io.Writer) error {
	_, err := io.WriteString(w, n.Text+"\n")
	return err
}

func TestWrite_EDN(t *testing.T) {
	v := node{Text: "Demo", Category: "project", Children: []node{{Text: "Views", Category: "views-group", Pending: true}}}
	var buf bytes.Buffer
	if err := Write(&buf, v, "edn", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := `{:category "project" :children [{:category "views-group" :pending true :text "Views"}] :text "Demo"}` + "\n"
	if buf.String() != want {
		t.Fatalf("edn = %q\nwant %q", buf.String(), want)
	}
}

func TestWrite_EDNPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"num": 3, "tags": []string{}}, "edn", true); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "{\n  :num 3\n  :tags []\n}\n"
	if buf.String() != want {
		t.Fatalf("edn = %q\nwant %q", buf.String(), want)
	}
}

func TestWrite_TextAndJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, node{Text: "Demo"}, "", false); err != nil {
		t.Fatalf("Write text: %v", err)
	}
	if buf.String() != "Demo\n" {
		t.Fatalf("text = %q", buf.String())
	}

	buf.Reset()
	if err := Write(&buf, node{Text: "Demo", Category: "project"}, "json", false); err != nil {
		t.Fatalf("Write json: %v", err)
	}
	if buf.String() != `{"text":"Demo","category":"project"}`+"\n" {
		t.Fatalf("json = %q", buf.String())
	}

	// Payloads without a Texter fall back to indented json.
	buf.Reset()
	if err := Write(&buf, map[string]int{"a": 1}, "text", false); err != nil {
		t.Fatalf("Write fallback: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"a\": 1") {
		t.Fatalf("fallback = %q", buf.String())
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(io.Discard, 1, "xml", false); err == nil {
		t.Fatalf("expected error")
	}
	if Valid("xml") || !Valid("edn") {
		t.Fatalf("Valid disagrees with Write")
	}
}
