package classify

import "testing"

func TestTransitionStepsForward(t *testing.T) {
	s := stateInit
	sequence := []state{stateStaged, stateConditioned, stateClassified, stateDelivered, stateReleased}
	for _, next := range sequence {
		got, err := s.transition(next)
		if err != nil {
			t.Fatalf("transition %s -> %s: unexpected error: %v", s, next, err)
		}
		s = got
	}
}

func TestTransitionRejectsSkippingAStage(t *testing.T) {
	if _, err := stateInit.transition(stateConditioned); err == nil {
		t.Error("expected an error skipping a lifecycle stage")
	}
}

func TestTransitionAllowsReleaseFromAnyState(t *testing.T) {
	for _, s := range []state{stateInit, stateStaged, stateConditioned, stateClassified, stateDelivered} {
		if _, err := s.transition(stateReleased); err != nil {
			t.Errorf("state %s: unexpected error releasing: %v", s, err)
		}
	}
}
