package gson_test

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"

	gson "github.com/sharankruthi/google-gson"
)

type account struct {
	FullName string `gson:"full_name"`
	Age      int
	Email    *string
	cache    map[string]bool
	Notes    string `gson:"-"`
}

func TestEngineTextRoundTrip(t *testing.T) {
	e := gson.New(gson.WithNaming(gson.LowerCamelNaming))

	in := account{FullName: "Ann", Age: 30, cache: map[string]bool{"x": true}, Notes: "secret"}
	text, err := e.ToText(in)
	if err != nil {
		t.Fatal(err)
	}
	got := string(text)
	// Tag name beats the naming policy; unexported and skipped fields and
	// the nil pointer never appear.
	if got != `{"full_name":"Ann","age":30}` {
		t.Errorf("text = %s", got)
	}

	back, err := gson.FromText[account](e, text)
	if err != nil {
		t.Fatal(err)
	}
	if back.FullName != "Ann" || back.Age != 30 {
		t.Errorf("back = %+v", back)
	}
	if back.Notes != "" || back.cache != nil {
		t.Errorf("excluded fields must stay zero: %+v", back)
	}
}

func TestEngineSerializeNulls(t *testing.T) {
	in := account{FullName: "Ann"}

	text, err := gson.New(gson.SerializeNulls()).ToText(in)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(text), `"Email":null`) {
		t.Errorf("nulls requested but absent: %s", text)
	}

	text, err = gson.New().ToText(in)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(text), "Email") {
		t.Errorf("null member leaked into default output: %s", text)
	}
}

func TestEngineVersionedFields(t *testing.T) {
	type record struct {
		ID   string
		New  string `since:"2.0"`
		Old  string `until:"1.5"`
		Both string
	}
	in := record{ID: "r1", New: "n", Old: "o", Both: "b"}

	text, err := gson.New(gson.WithVersion(1.0)).ToText(in)
	if err != nil {
		t.Fatal(err)
	}
	got := string(text)
	if strings.Contains(got, `"New"`) {
		t.Errorf("field from a later version leaked at 1.0: %s", got)
	}
	if !strings.Contains(got, `"Old"`) || !strings.Contains(got, `"Both"`) {
		t.Errorf("missing members at 1.0: %s", got)
	}

	text, err = gson.New(gson.WithVersion(2.5)).ToText(in)
	if err != nil {
		t.Fatal(err)
	}
	got = string(text)
	if !strings.Contains(got, `"New"`) {
		t.Errorf("current field missing at 2.5: %s", got)
	}
	if strings.Contains(got, `"Old"`) {
		t.Errorf("retired field leaked at 2.5: %s", got)
	}
}

func TestEngineCustomExclusion(t *testing.T) {
	type doc struct {
		Keep string
		Drop string
	}
	only := exclusionFunc(func(f gson.Field) bool { return f.Name == "Drop" })

	text, err := gson.New(gson.WithExclusion(only)).ToText(doc{Keep: "k", Drop: "d"})
	if err != nil {
		t.Fatal(err)
	}
	if string(text) != `{"Keep":"k"}` {
		t.Errorf("text = %s", text)
	}
}

type exclusionFunc func(gson.Field) bool

func (f exclusionFunc) SkipField(field gson.Field) bool { return f(field) }
func (f exclusionFunc) SkipType(reflect.Type) bool      { return false }

func TestEngineIndentOutput(t *testing.T) {
	type pair struct{ A, B int }
	text, err := gson.New(gson.WithIndent("  ")).ToText(pair{A: 1, B: 2})
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"A\": 1,\n  \"B\": 2\n}"
	if string(text) != want {
		t.Errorf("got:\n%s\nwant:\n%s", text, want)
	}
}

func TestEngineMaxDepthOverride(t *testing.T) {
	type nested struct{ Child *nested }
	deep := &nested{}
	cur := deep
	for i := 0; i < 10; i++ {
		cur.Child = &nested{}
		cur = cur.Child
	}

	_, err := gson.New(gson.WithMaxDepth(5)).ToTree(deep)
	if !errors.Is(err, gson.ErrDepthExceeded) {
		t.Errorf("err = %v, want ErrDepthExceeded", err)
	}
	if _, err := gson.New().ToTree(deep); err != nil {
		t.Errorf("default depth rejects a shallow graph: %v", err)
	}
}

func TestMarshalUnmarshalDefaults(t *testing.T) {
	text, err := gson.Marshal(person{Name: "Ann", Age: 30})
	if err != nil {
		t.Fatal(err)
	}
	if string(text) != `{"Name":"Ann","Age":30}` {
		t.Errorf("Marshal = %s", text)
	}

	got, err := gson.Unmarshal[person]([]byte(`{"Name":"Bob","Age":41}`))
	if err != nil {
		t.Fatal(err)
	}
	if got != (person{Name: "Bob", Age: 41}) {
		t.Errorf("Unmarshal = %+v", got)
	}
}

func TestUnmarshalSyntaxError(t *testing.T) {
	_, err := gson.Unmarshal[person]([]byte(`{"Name":`))
	if !errors.Is(err, gson.ErrSyntax) {
		t.Errorf("err = %v, want ErrSyntax", err)
	}
}

func TestFromTextTopLevelScalar(t *testing.T) {
	e := gson.New()
	got, err := gson.FromText[[]string](e, []byte(`["a","b"]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "a" {
		t.Errorf("got %v", got)
	}
}

func TestEngineConcurrentUse(t *testing.T) {
	e := gson.New(gson.WithNaming(gson.SnakeCaseNaming))
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				text, err := e.ToText(account{FullName: "Ann", Age: j})
				if err != nil {
					t.Error(err)
					return
				}
				back, err := gson.FromText[account](e, text)
				if err != nil {
					t.Error(err)
					return
				}
				if back.Age != j {
					t.Errorf("age = %d, want %d", back.Age, j)
					return
				}
			}
		}()
	}
	wg.Wait()
}
