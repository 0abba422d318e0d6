package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

type rowsPayload struct{ names []string }

func (p rowsPayload) Table() ([]string, [][]string) {
	rows := [][]string{}
	for _, n := range p.names {
		rows = append(rows, []string{n})
	}
	return []string{"NAME"}, rows
}

func TestWrite_JSONIsSingleLineUnlessPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": []int{1, 2}}, "json", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Fatalf("expected one line, got %q", buf.String())
	}
	var back map[string]any
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("expected valid json: %v", err)
	}

	buf.Reset()
	_ = Write(&buf, map[string]any{"data": []int{1, 2}}, "", true)
	if strings.Count(buf.String(), "\n") < 3 {
		t.Fatalf("expected indented output, got %q", buf.String())
	}
}

func TestWrite_TextRendersTable(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, rowsPayload{names: []string{"Inbox", "Done"}}, "text", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"NAME", "Inbox", "Done"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}

	buf.Reset()
	_ = Write(&buf, rowsPayload{}, "text", false)
	if strings.TrimSpace(buf.String()) != "(none)" {
		t.Fatalf("unexpected empty table output %q", buf.String())
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, 1, "edn", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
