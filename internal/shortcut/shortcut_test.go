package shortcut

import "testing"

func TestDispatch_CaseInsensitiveAndAliases(t *testing.T) {
	var b Binder
	calls := 0
	b.Bind("Escape", func() { calls++ })

	for _, key := range []string{"esc", "ESC", "escape", "Escape"} {
		if !b.Dispatch(key) {
			t.Fatalf("Dispatch(%q) = false, want match", key)
		}
	}
	if calls != 4 {
		t.Fatalf("calls = %d, want 4", calls)
	}
	if b.Dispatch("enter") {
		t.Fatalf("Dispatch(enter) = true, want no match")
	}
}

func TestUnbind_DetachesAndIsIdempotent(t *testing.T) {
	var b Binder
	calls := 0
	binding := b.Bind("esc", func() { calls++ })

	binding.Unbind()
	binding.Unbind()

	if b.Dispatch("esc") {
		t.Fatalf("Dispatch after Unbind matched")
	}
	if calls != 0 {
		t.Fatalf("calls = %d, want 0", calls)
	}
	if b.Len() != 0 {
		t.Fatalf("Len = %d, want 0", b.Len())
	}
}

func TestRebind_NeverLeavesDuplicateListeners(t *testing.T) {
	var b Binder
	first, second := 0, 0
	binding := b.Bind("esc", func() { first++ })

	binding.Rebind("esc", func() { second++ })
	binding.Rebind("Escape", func() { second++ })

	b.Dispatch("esc")
	if first != 0 || second != 1 {
		t.Fatalf("first=%d second=%d, want 0 and 1", first, second)
	}
	if b.Len() != 1 {
		t.Fatalf("Len = %d, want 1", b.Len())
	}
}

func TestDispatch_ActionMayUnbindItself(t *testing.T) {
	var b Binder
	var binding *Binding
	binding = b.Bind("esc", func() { binding.Unbind() })

	if !b.Dispatch("esc") {
		t.Fatalf("first Dispatch did not match")
	}
	if b.Dispatch("esc") {
		t.Fatalf("second Dispatch matched after self-unbind")
	}
}
