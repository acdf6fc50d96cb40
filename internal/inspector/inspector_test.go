package inspector

import (
	"testing"

	"garnish/internal/gcontext"
	"garnish/internal/gvm"
	"garnish/internal/seed"
)

func TestStepAndBroadcastNoClients(t *testing.T) {
	srv := New()
	if srv.SessionID == "" {
		t.Fatal("expected a non-empty session id")
	}
	if got := srv.ClientCount(); got != 0 {
		t.Fatalf("ClientCount() = %d, want 0", got)
	}

	prog, ok := seed.Build("arithmetic")
	if !ok {
		t.Fatal("seed \"arithmetic\" not found")
	}
	vm := gvm.New(prog.Store, gcontext.NoopContext{})
	vm.Start()
	prog.Store.SetInstructionCursor(prog.Entry)

	for vm.State() == gvm.Running {
		instr, err := prog.Store.GetInstruction(prog.Store.GetInstructionCursor())
		if err != nil {
			t.Fatal(err)
		}
		// Broadcasting with zero attached clients must still run the
		// underlying Step and report its error, if any.
		if err := StepAndBroadcast(srv, vm, prog.Store, instr.Op.String()); err != nil {
			t.Fatal(err)
		}
	}

	idx, ok := vm.Result()
	if !ok {
		t.Fatal("expected a result")
	}
	if got := prog.Store.Display(idx); got != "30" {
		t.Fatalf("result = %s, want 30", got)
	}
}
