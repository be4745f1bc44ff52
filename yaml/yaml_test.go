package yaml_test

import (
	"strings"
	"testing"

	gson "github.com/sharankruthi/google-gson"
	"github.com/sharankruthi/google-gson/yaml"
)

func TestCodecContentType(t *testing.T) {
	if got := yaml.New().ContentType(); got != "application/yaml" {
		t.Errorf("ContentType = %q", got)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	// Keys are pre-sorted: mappings re-enter the tree in sorted key
	// order, so this shape survives a round trip exactly.
	node := gson.NewObject().
		Set("age", gson.Int(30)).
		Set("name", gson.Str("Ann")).
		Set("tags", gson.NewArray(gson.Str("a"), gson.Str("b")))

	c := yaml.New()
	text, err := c.Format(node)
	if err != nil {
		t.Fatal(err)
	}
	back, err := c.Parse(text)
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(node) {
		t.Errorf("round trip produced %s, want %s", back, node)
	}
}

func TestCodecParseScalars(t *testing.T) {
	c := yaml.New()
	tests := []struct {
		input string
		want  *gson.Value
	}{
		{"true", gson.Bool(true)},
		{"42", gson.Int(42)},
		{"1.5", gson.Float(1.5)},
		{"hello", gson.Str("hello")},
		{"null", gson.Null()},
	}
	for _, tt := range tests {
		got, err := c.Parse([]byte(tt.input))
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.input, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

type account struct {
	Name string `gson:"name"`
	Age  int    `gson:"age"`
}

func TestEngineWithYAMLCodec(t *testing.T) {
	e := gson.New(gson.WithCodec(yaml.New()))

	text, err := e.ToText(account{Name: "Ann", Age: 30})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(text), "name: Ann") {
		t.Errorf("text = %q", text)
	}

	back, err := gson.FromText[account](e, text)
	if err != nil {
		t.Fatal(err)
	}
	if back != (account{Name: "Ann", Age: 30}) {
		t.Errorf("back = %+v", back)
	}
}
