package residency

import "testing"

func TestStageBorrowedAliasesHost(t *testing.T) {
	host := []float32{1, 2, 3}
	h, err := Stage(host, Borrowed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h.Data()[0] = 99
	if host[0] != 99 {
		t.Error("borrowed handle should alias the host buffer")
	}
}

func TestStageOwnedCopiesHost(t *testing.T) {
	host := []float32{1, 2, 3}
	h, err := Stage(host, Owned)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h.Data()[0] = 99
	if host[0] == 99 {
		t.Error("owned handle must not alias the host buffer")
	}
}

func TestRetrieveOwnedCopiesBack(t *testing.T) {
	host := make([]float32, 3)
	h, err := Stage([]float32{1, 2, 3}, Owned)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h.Data()[1] = 42
	if err := h.Retrieve(host); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if host[1] != 42 {
		t.Errorf("got %v, want 42 at index 1", host[1])
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	h, err := Stage([]float32{1}, Owned)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h.Release()
	h.Release()
}

func TestRetrieveAfterReleaseFails(t *testing.T) {
	h, err := Stage([]float32{1}, Owned)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h.Release()
	if err := h.Retrieve(make([]float32, 1)); err == nil {
		t.Error("expected an error retrieving from a released handle")
	}
}
