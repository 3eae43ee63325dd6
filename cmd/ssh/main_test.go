package main

import "testing"

func TestSizeTracker(t *testing.T) {
	s := newSizeTracker(80, 24)
	s.update(120, 40)
	w, h, err := s.getSize()
	if err != nil || w != 120 || h != 40 {
		t.Fatalf("getSize = %d, %d, %v; want 120, 40, nil", w, h, err)
	}
}
