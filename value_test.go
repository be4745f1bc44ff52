package gson_test

import (
	"testing"

	gson "github.com/sharankruthi/google-gson"
)

func TestValueScalars(t *testing.T) {
	if k := gson.Null().Kind(); k != gson.KindNull {
		t.Errorf("Null kind = %v", k)
	}
	if v := gson.Bool(true); !v.Bool() || v.Kind() != gson.KindBool {
		t.Error("Bool construction broken")
	}
	if v := gson.Str("hi"); v.Str() != "hi" || v.Kind() != gson.KindString {
		t.Error("Str construction broken")
	}

	n := gson.Int(-42)
	if i, err := n.Int64(); err != nil || i != -42 {
		t.Errorf("Int64 = %d, %v", i, err)
	}
	f := gson.Float(1.5)
	if got, err := f.Float64(); err != nil || got != 1.5 {
		t.Errorf("Float64 = %v, %v", got, err)
	}
	// Integral literals convert to int64 and float64 alike.
	if got, err := n.Float64(); err != nil || got != -42 {
		t.Errorf("Float64 of int literal = %v, %v", got, err)
	}
	// Fractional literals truncate toward zero as int64.
	if i, err := f.Int64(); err != nil || i != 1 {
		t.Errorf("Int64 of 1.5 = %d, %v", i, err)
	}
}

func TestObjectInsertionOrder(t *testing.T) {
	obj := gson.NewObject().
		Set("b", gson.Int(1)).
		Set("a", gson.Int(2)).
		Set("c", gson.Int(3))

	want := []string{"b", "a", "c"}
	got := obj.Keys()
	if len(got) != len(want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keys = %v, want insertion order %v", got, want)
		}
	}
}

func TestObjectSetReplaceKeepsPosition(t *testing.T) {
	obj := gson.NewObject().
		Set("a", gson.Int(1)).
		Set("b", gson.Int(2)).
		Set("a", gson.Int(9))

	if obj.Len() != 2 {
		t.Fatalf("Len = %d, want 2", obj.Len())
	}
	if obj.Keys()[0] != "a" {
		t.Error("replaced key should keep its original position")
	}
	v, ok := obj.Member("a")
	if !ok {
		t.Fatal("member a missing")
	}
	if i, _ := v.Int64(); i != 9 {
		t.Errorf("member a = %d, want 9", i)
	}
}

func TestContainerMutationWrongKindPanics(t *testing.T) {
	mustPanic := func(name string, fn func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}

	mustPanic("Set on string", func() { gson.Str("x").Set("k", gson.Int(1)) })
	mustPanic("Set on null", func() { gson.Null().Set("k", gson.Int(1)) })
	mustPanic("Set on array", func() { gson.NewArray().Set("k", gson.Int(1)) })
	mustPanic("Append on object", func() { gson.NewObject().Append(gson.Int(1)) })
	mustPanic("Append on bool", func() { gson.Bool(true).Append(gson.Int(1)) })
}

func TestValueEqual(t *testing.T) {
	cases := []struct {
		name  string
		a, b  *gson.Value
		equal bool
	}{
		{"null", gson.Null(), gson.Null(), true},
		{"bool", gson.Bool(true), gson.Bool(false), false},
		{"number by value", gson.Int(1), gson.Float(1.0), true},
		{"number differs", gson.Int(1), gson.Int(2), false},
		{"kind differs", gson.Str("1"), gson.Int(1), false},
		{"arrays", gson.NewArray(gson.Int(1), gson.Int(2)), gson.NewArray(gson.Int(1), gson.Int(2)), true},
		{"array length", gson.NewArray(gson.Int(1)), gson.NewArray(gson.Int(1), gson.Int(2)), false},
		{
			"objects ordered",
			gson.NewObject().Set("a", gson.Int(1)).Set("b", gson.Int(2)),
			gson.NewObject().Set("a", gson.Int(1)).Set("b", gson.Int(2)),
			true,
		},
		{
			"object order matters",
			gson.NewObject().Set("a", gson.Int(1)).Set("b", gson.Int(2)),
			gson.NewObject().Set("b", gson.Int(2)).Set("a", gson.Int(1)),
			false,
		},
	}
	for _, tc := range cases {
		if got := tc.a.Equal(tc.b); got != tc.equal {
			t.Errorf("%s: Equal = %v, want %v", tc.name, got, tc.equal)
		}
	}
}

func TestNativeRoundTrip(t *testing.T) {
	v := gson.NewObject().
		Set("name", gson.Str("Ann")).
		Set("age", gson.Int(30)).
		Set("tags", gson.NewArray(gson.Str("a"), gson.Str("b"))).
		Set("score", gson.Float(1.5)).
		Set("gone", gson.Null())

	back, err := gson.FromNative(v.Native())
	if err != nil {
		t.Fatalf("FromNative: %v", err)
	}
	// Native round trip sorts keys; compare member by member.
	for _, m := range v.Members() {
		got, ok := back.Member(m.Key)
		if !ok {
			t.Fatalf("member %q lost in native round trip", m.Key)
		}
		if !got.Equal(m.Value) {
			t.Errorf("member %q = %v, want %v", m.Key, got, m.Value)
		}
	}
}

func TestFromNativeRejectsUnknown(t *testing.T) {
	if _, err := gson.FromNative(struct{}{}); err == nil {
		t.Error("expected error for unsupported native type")
	}
}

func TestValueString(t *testing.T) {
	v := gson.NewObject().Set("a", gson.NewArray(gson.Int(1), gson.Null()))
	if got := v.String(); got != `{"a":[1,null]}` {
		t.Errorf("String = %s", got)
	}
}
