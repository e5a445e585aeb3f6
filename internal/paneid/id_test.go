package paneid

import "testing"

func TestLessOrdersTerminalBeforePlugin(t *testing.T) {
	term := Terminal(5)
	plug := Plugin("abc")
	if !Less(term, plug) {
		t.Error("expected Terminal ids to sort before Plugin ids")
	}
	if Less(plug, term) {
		t.Error("Plugin should not sort before Terminal")
	}
}

func TestSorted(t *testing.T) {
	ids := []ID{Terminal(3), Plugin("b"), Terminal(1), Plugin("a")}
	sorted := Sorted(ids)
	want := []ID{Terminal(1), Terminal(3), Plugin("a"), Plugin("b")}
	if len(sorted) != len(want) {
		t.Fatalf("len = %d, want %d", len(sorted), len(want))
	}
	for i := range want {
		if sorted[i] != want[i] {
			t.Errorf("sorted[%d] = %v, want %v", i, sorted[i], want[i])
		}
	}
	// original input must be unmodified
	if ids[0] != Terminal(3) {
		t.Error("Sorted mutated its input")
	}
}

func TestNewPluginIDUnique(t *testing.T) {
	a := NewPluginID()
	b := NewPluginID()
	if a == b {
		t.Error("expected distinct plugin ids")
	}
	if a.Kind != KindPlugin {
		t.Errorf("Kind = %v, want KindPlugin", a.Kind)
	}
}
