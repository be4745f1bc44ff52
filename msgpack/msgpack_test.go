package msgpack_test

import (
	"testing"

	gson "github.com/sharankruthi/google-gson"
	"github.com/sharankruthi/google-gson/msgpack"
)

func TestCodecContentType(t *testing.T) {
	if got := msgpack.New().ContentType(); got != "application/msgpack" {
		t.Errorf("ContentType = %q", got)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	// Keys are pre-sorted: maps re-enter the tree in sorted key order,
	// so this shape survives a round trip exactly.
	node := gson.NewObject().
		Set("age", gson.Int(30)).
		Set("name", gson.Str("Ann")).
		Set("ok", gson.Bool(true)).
		Set("score", gson.Float(1.5)).
		Set("tags", gson.NewArray(gson.Str("a"), gson.Str("b")))

	c := msgpack.New()
	wire, err := c.Format(node)
	if err != nil {
		t.Fatal(err)
	}
	back, err := c.Parse(wire)
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(node) {
		t.Errorf("round trip produced %s, want %s", back, node)
	}
}

func TestCodecParseRejectsGarbage(t *testing.T) {
	if _, err := msgpack.New().Parse([]byte{0xc1}); err == nil {
		t.Error("expected an error for a reserved byte")
	}
}

type account struct {
	Name string `gson:"name"`
	Age  int    `gson:"age"`
}

func TestEngineWithMsgpackCodec(t *testing.T) {
	e := gson.New(gson.WithCodec(msgpack.New()))

	wire, err := e.ToText(account{Name: "Ann", Age: 30})
	if err != nil {
		t.Fatal(err)
	}
	back, err := gson.FromText[account](e, wire)
	if err != nil {
		t.Fatal(err)
	}
	if back != (account{Name: "Ann", Age: 30}) {
		t.Errorf("back = %+v", back)
	}
}
