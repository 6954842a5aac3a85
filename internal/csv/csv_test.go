package csv

import (
	"strings"
	"testing"
)

func TestEncode_Basic(t *testing.T) {
	rows := []map[string]any{
		{"id": "1", "name": "Hammer", "quantity": 2},
		{"id": "2", "name": "Saw", "quantity": 1},
	}
	got := Encode(rows, []string{"id", "name", "quantity"})
	want := "id,name,quantity\r\n1,Hammer,2\r\n2,Saw,1"
	if got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestEncode_Quoting(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"plain", "Garage", "Garage"},
		{"comma", "nuts, bolts", `"nuts, bolts"`},
		{"quote", `say "hi"`, `"say ""hi"""`},
		{"newline", "line1\nline2", "\"line1\nline2\""},
		{"carriage return", "line1\rline2", "\"line1\rline2\""},
		{"nil", nil, ""},
		{"bool", true, "true"},
		{"int", 42, "42"},
		{"float", 2.5, "2.5"},
		{"nested", map[string]string{"k": "v"}, `"{""k"":""v""}"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode([]map[string]any{{"col": tt.value}}, []string{"col"})
			wantText := "col\r\n" + tt.want
			if got != wantText {
				t.Errorf("Encode(%v) = %q, want %q", tt.value, got, wantText)
			}
		})
	}
}

func TestEncode_MissingKeySerializesEmpty(t *testing.T) {
	got := Encode([]map[string]any{{"a": "1"}}, []string{"a", "b"})
	want := "a,b\r\n1,"
	if got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestDecode_Basic(t *testing.T) {
	doc := Decode("id,name\r\n1,Hammer\r\n2,Saw")

	if len(doc.Headers) != 2 || doc.Headers[0] != "id" || doc.Headers[1] != "name" {
		t.Fatalf("Headers = %v, want [id name]", doc.Headers)
	}
	if len(doc.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(doc.Rows))
	}
	if doc.Rows[0]["name"] != "Hammer" || doc.Rows[1]["name"] != "Saw" {
		t.Errorf("Rows = %v", doc.Rows)
	}
}

func TestDecode_QuotedFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"embedded comma", "col\r\n\"a, b\"", "a, b"},
		{"escaped quote", "col\r\n\"say \"\"hi\"\"\"", `say "hi"`},
		{"embedded newline", "col\r\n\"line1\nline2\"", "line1\nline2"},
		{"embedded crlf stays lf", "col\r\n\"line1\r\nline2\"", "line1\nline2"},
		{"quote mid field", "col\r\na\"b\"c", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Decode(tt.input)
			if len(doc.Rows) != 1 {
				t.Fatalf("len(Rows) = %d, want 1", len(doc.Rows))
			}
			if got := doc.Rows[0]["col"]; got != tt.want {
				t.Errorf("field = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecode_LineEndingVariants(t *testing.T) {
	for _, ending := range []string{"\n", "\r\n", "\r"} {
		input := strings.Join([]string{"id,name", "1,a", "2,b"}, ending)
		doc := Decode(input)
		if len(doc.Rows) != 2 {
			t.Errorf("ending %q: len(Rows) = %d, want 2", ending, len(doc.Rows))
		}
	}
}

func TestDecode_DropsBlankRows(t *testing.T) {
	doc := Decode("id,name\r\n1,a\r\n,\r\n\r\n")
	if len(doc.Rows) != 1 {
		t.Errorf("len(Rows) = %d, want 1 (blank rows dropped)", len(doc.Rows))
	}
}

func TestDecode_TrimsHeaders(t *testing.T) {
	doc := Decode(" id , name \r\n1,a")
	if doc.Headers[0] != "id" || doc.Headers[1] != "name" {
		t.Errorf("Headers = %v, want trimmed [id name]", doc.Headers)
	}
	if doc.Rows[0]["id"] != "1" {
		t.Errorf("row keyed by trimmed header: %v", doc.Rows[0])
	}
}

func TestDecode_ShortRowPadsEmpty(t *testing.T) {
	doc := Decode("a,b,c\r\n1,2")
	if got := doc.Rows[0]["c"]; got != "" {
		t.Errorf("missing trailing field = %q, want empty", got)
	}
}

func TestDecode_Empty(t *testing.T) {
	doc := Decode("")
	if len(doc.Headers) != 0 || len(doc.Rows) != 0 {
		t.Errorf("Decode(\"\") = %+v, want empty document", doc)
	}
}

// TestRoundTrip verifies decode(encode(rows)) reproduces the original field
// values for content containing every special character the dialect handles.
func TestRoundTrip(t *testing.T) {
	headers := []string{"id", "name", "notes"}
	rows := []map[string]any{
		{"id": "1", "name": "plain", "notes": "nothing special"},
		{"id": "2", "name": "commas, everywhere", "notes": "a,b,c"},
		{"id": "3", "name": `the "big" one`, "notes": `""`},
		{"id": "4", "name": "multi\nline", "notes": "end with newline\n"},
		{"id": "5", "name": "", "notes": "empty name above"},
	}

	doc := Decode(Encode(rows, headers))

	if len(doc.Rows) != len(rows) {
		t.Fatalf("len(Rows) = %d, want %d", len(doc.Rows), len(rows))
	}
	for i, want := range rows {
		for _, h := range headers {
			if got := doc.Rows[i][h]; got != want[h].(string) {
				t.Errorf("row %d col %s = %q, want %q", i, h, got, want[h])
			}
		}
	}
}
