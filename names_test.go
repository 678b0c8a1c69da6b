package sheet

import "testing"

func TestNameRegistryBindResolve(t *testing.T) {
	reg := NewNameRegistry()
	if err := reg.Bind("radius", "A1"); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if id, ok := reg.Resolve("radius"); !ok || id != "A1" {
		t.Errorf("Resolve(radius) = %q, %v, want A1, true", id, ok)
	}
	if name := reg.NameOf("A1"); name != "radius" {
		t.Errorf("NameOf(A1) = %q, want radius", name)
	}
	if !reg.IsBound("radius") {
		t.Error("IsBound(radius) = false, want true")
	}
}

func TestNameRegistryDuplicateName(t *testing.T) {
	reg := NewNameRegistry()
	if err := reg.Bind("radius", "A1"); err != nil {
		t.Fatalf("bind: %v", err)
	}
	err := reg.Bind("radius", "B2")
	if err == nil {
		t.Fatal("binding radius to a second cell succeeded, want error")
	}
	if CodeOf(err) != CodeDuplicateName {
		t.Errorf("CodeOf(err) = %v, want CodeDuplicateName", CodeOf(err))
	}
	if id, _ := reg.Resolve("radius"); id != "A1" {
		t.Errorf("after failed rebind Resolve(radius) = %q, want A1", id)
	}
}

func TestNameRegistryRebindSameCell(t *testing.T) {
	reg := NewNameRegistry()
	if err := reg.Bind("radius", "A1"); err != nil {
		t.Fatalf("bind: %v", err)
	}
	// same owner may rebind, and renaming replaces the old name
	if err := reg.Bind("radius", "A1"); err != nil {
		t.Errorf("rebinding same cell: %v", err)
	}
	if err := reg.Bind("diameter", "A1"); err != nil {
		t.Errorf("renaming cell: %v", err)
	}
	if reg.IsBound("radius") {
		t.Error("old name radius still bound after rename")
	}
	if id, _ := reg.Resolve("diameter"); id != "A1" {
		t.Errorf("Resolve(diameter) = %q, want A1", id)
	}
}

func TestNameRegistryUnbind(t *testing.T) {
	reg := NewNameRegistry()
	reg.Bind("x", "A1")
	reg.Bind("y", "B1")
	reg.Unbind("x")
	if reg.IsBound("x") {
		t.Error("x still bound after Unbind")
	}
	if name := reg.NameOf("A1"); name != "" {
		t.Errorf("NameOf(A1) = %q after Unbind, want empty", name)
	}
	reg.UnbindCell("B1")
	if reg.IsBound("y") {
		t.Error("y still bound after UnbindCell(B1)")
	}
	if reg.Len() != 0 {
		t.Errorf("Len() = %d, want 0", reg.Len())
	}
}

func TestNameRegistryNames(t *testing.T) {
	reg := NewNameRegistry()
	reg.Bind("width", "A1")
	reg.Bind("area", "C3")
	reg.Bind("height", "B2")
	got := reg.Names()
	want := []string{"area", "height", "width"}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", got, want)
		}
	}
}
