package seed

import (
	"testing"

	"garnish/internal/gcontext"
	"garnish/internal/gvm"
)

// TestSeedPrograms runs every named seed to completion and checks it
// against the corresponding spec §8 scenario result.
func TestSeedPrograms(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"arithmetic", "30"},
		{"call", "30"},
		{"list-access", "20"},
		{"range-narrow", "6..14"},
		{"slice-concat", "[18, 19, 20, 21, 22]"},
		{"reapply", "2"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prog, ok := Build(tc.name)
			if !ok {
				t.Fatalf("unknown seed %q", tc.name)
			}
			vm := gvm.New(prog.Store, gcontext.NoopContext{})
			vm.Start()
			prog.Store.SetInstructionCursor(prog.Entry)
			if err := vm.Run(); err != nil {
				t.Fatal(err)
			}
			if prog.Store.JumpPathLen() != 0 {
				t.Fatalf("jump path not balanced: depth %d", prog.Store.JumpPathLen())
			}
			idx, ok := vm.Result()
			if !ok {
				t.Fatal("expected a result")
			}
			got := prog.Store.Display(idx)
			if got != tc.want {
				t.Fatalf("%s => %s, want %s", tc.name, got, tc.want)
			}
		})
	}
}

func TestBuildUnknownName(t *testing.T) {
	if _, ok := Build("does-not-exist"); ok {
		t.Fatal("expected ok=false for an unknown seed name")
	}
}

// TestNamesMatchBuild guards against Names/Build drifting apart.
func TestNamesMatchBuild(t *testing.T) {
	for _, name := range Names {
		if _, ok := Build(name); !ok {
			t.Fatalf("Names lists %q but Build does not recognize it", name)
		}
	}
}
