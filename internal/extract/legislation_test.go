package extract

import "testing"

func TestItemKey(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Res 2025-0142", "2025-0142"},
		{"Int. No. 1234-A", "..1234-"},
		{"  2025-0007  ", "2025-0007"},
		{"LU 0183-2025", "0183-2025"},
		{"Resolution", ""},
		{"", ""},
		{"Ord\t12\n34", "1234"},
	}

	for _, tt := range tests {
		if got := ItemKey(tt.raw); got != tt.want {
			t.Errorf("ItemKey(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestVisibleText_PlainTextUnchanged(t *testing.T) {
	tests := []string{
		"  A Local Law to amend\n the administrative code  ",
		"Section 1.\n\n  Budget   line",
		"Fares rise if ridership < 2025 levels",
		"a <3 b",
	}

	for _, content := range tests {
		got, err := VisibleText(content)
		if err != nil {
			t.Fatalf("%q: expected no error, got %v", content, err)
		}
		if got != content {
			t.Errorf("Expected plain text unchanged, got %q want %q", got, content)
		}
	}
}

func TestVisibleText_SkipInvisibleElements(t *testing.T) {
	content := `
	<html>
	<head>
		<style>body { color: red; }</style>
		<script>var tracking = true;</script>
	</head>
	<body>
		<h1>Int 0142-2025</h1>
		<p>A Local Law to amend the <b>administrative code</b>, in relation to bus fares.</p>
		<noscript>Enable JavaScript</noscript>
		<iframe src="https://example.com">frame</iframe>
	</body>
	</html>
	`

	got, err := VisibleText(content)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := "Int 0142-2025\nA Local Law to amend the administrative code, in relation to bus fares."
	if got != want {
		t.Errorf("VisibleText() = %q, want %q", got, want)
	}
}

func TestVisibleText_Empty(t *testing.T) {
	got, err := VisibleText("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != "" {
		t.Errorf("Expected empty text, got %q", got)
	}
}

func TestVisibleText_LineBreaks(t *testing.T) {
	got, err := VisibleText("<p>Section 1.</p><p>Budget<br>line   two</p>")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if want := "Section 1.\nBudget\nline two"; got != want {
		t.Errorf("VisibleText() = %q, want %q", got, want)
	}
}
