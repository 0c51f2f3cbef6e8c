package raw

import "testing"

func TestArenaIdentities(t *testing.T) {
	var a Arena
	for i := 1; i <= 5; i++ {
		ref := a.Add(NumberInt(int64(i * 10)))
		if ref.Num != i || ref.Gen != 0 {
			t.Fatalf("Add #%d returned %v", i, ref)
		}
	}
	if a.Len() != 5 {
		t.Fatalf("Len = %d", a.Len())
	}
	if _, ok := a.Get(0); ok {
		t.Fatalf("identity 0 is reserved")
	}
	if _, ok := a.Get(6); ok {
		t.Fatalf("identity past the end must not resolve")
	}
	o, ok := a.Get(3)
	if !ok || o.(NumberObj).I != 30 {
		t.Fatalf("Get(3) = %v, %v", o, ok)
	}
	next := 1
	a.Each(func(ref ObjectRef, _ Object) {
		if ref.Num != next {
			t.Fatalf("Each visited %d, want %d", ref.Num, next)
		}
		next++
	})
}

func TestSerializeDictKeepsInsertionOrder(t *testing.T) {
	d := Dict().
		Set("Type", NameLiteral("Page")).
		Set("Parent", Ref(2, 0)).
		Set("MediaBox", NewArray(NumberInt(0), NumberInt(0), NumberInt(595), NumberInt(842))).
		Set("Resources", Dict().Set("Font", Dict().Set("F1", Ref(5, 0)).Set("F2", Ref(6, 0)))).
		Set("Contents", Ref(4, 0))
	want := "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 5 0 R /F2 6 0 R >> >> /Contents 4 0 R >>"
	if got := string(Serialize(d)); got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
	d.Set("Type", NameLiteral("Pages"))
	if d.Entries[0].Value.(NameObj).Val != "Pages" || len(d.Entries) != 5 {
		t.Fatalf("Set must replace existing keys in place")
	}
}

func TestSerializeStream(t *testing.T) {
	s := NewStream(nil, []byte("BT\nET"))
	want := "<< /Length 5 >>\nstream\nBT\nET\nendstream"
	if got := string(Serialize(s)); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSerializeScalars(t *testing.T) {
	cases := []struct {
		obj  Object
		want string
	}{
		{NumberFloat(0.5), "0.5"},
		{NumberInt(-7), "-7"},
		{NumberFloat(841.5), "841.5"},
		{NewArray(Ref(3, 0), NameLiteral("F1")), "[3 0 R /F1]"},
		{NewArray(), "[]"},
		{Dict(), "<< >>"},
	}
	for _, tc := range cases {
		if got := string(Serialize(tc.obj)); got != tc.want {
			t.Fatalf("Serialize(%#v) = %q, want %q", tc.obj, got, tc.want)
		}
	}
}
