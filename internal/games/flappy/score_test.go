package flappy

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

func newTestScore(store core.HighScoreStore) *ScoreTracker {
	return NewScoreTracker(store, config.DefaultFlappyConfig().Effects)
}

func TestScoreAddIgnoresNonPositive(t *testing.T) {
	s := newTestScore(&core.MemoryHighScore{})

	if s.Add(0) || s.Add(-3) {
		t.Error("Add should reject n <= 0")
	}
	if s.Current() != 0 {
		t.Errorf("score = %d, expected 0", s.Current())
	}
	if s.Scale() != 1 {
		t.Errorf("rejected add should not animate, scale = %f", s.Scale())
	}

	if !s.Add(2) || s.Current() != 2 {
		t.Errorf("Add(2): score = %d, expected 2", s.Current())
	}
}

func TestHighScoreDurability(t *testing.T) {
	store := &countingStore{score: 30}
	s := newTestScore(store)

	s.Add(50)
	if !s.Finalize() {
		t.Error("50 over 30 should be a new high score")
	}
	if store.score != 50 || s.High() != 50 {
		t.Errorf("high = %d (stored %d), expected 50", s.High(), store.score)
	}

	s.Reset()
	if s.Current() != 0 || s.High() != 50 {
		t.Errorf("after Reset: current=%d high=%d, expected 0 and 50", s.Current(), s.High())
	}

	s.Add(10)
	if s.Finalize() {
		t.Error("10 under 50 should not be a new high score")
	}
	if store.score != 50 {
		t.Errorf("stored high = %d, expected 50", store.score)
	}

	// A fresh tracker reads the durable value back.
	if again := newTestScore(store); again.High() != 50 {
		t.Errorf("reloaded high = %d, expected 50", again.High())
	}
}

func TestSharedStoreHighScore(t *testing.T) {
	store := &countingStore{score: 10}
	first := newTestScore(store)
	second := newTestScore(store)

	first.Add(50)
	if !first.Finalize() {
		t.Fatal("50 over 10 should be a new high score")
	}

	second.Add(20)
	if second.Finalize() {
		t.Error("20 should not beat the 50 stored by another tracker")
	}
	if second.High() != 50 {
		t.Errorf("high = %d, expected 50 from the shared store", second.High())
	}
	if store.score != 50 || store.writes != 1 {
		t.Errorf("stored %d after %d writes, expected 50 after 1", store.score, store.writes)
	}

	store.score = 70
	second.Reset()
	if second.High() != 70 {
		t.Errorf("high after Reset = %d, expected 70", second.High())
	}
}

func TestFinalizeOncePerRun(t *testing.T) {
	store := &countingStore{}
	s := newTestScore(store)

	s.Add(5)
	s.Finalize()
	s.Add(5)
	if s.Finalize() {
		t.Error("second Finalize in the same run should do nothing")
	}
	if store.writes != 1 || store.score != 5 {
		t.Errorf("store %+v, expected one write of 5", *store)
	}
}

func TestScoreEmphasisDecays(t *testing.T) {
	s := newTestScore(&core.MemoryHighScore{})
	s.Add(1)

	if s.Scale() != 1.5 {
		t.Errorf("scale right after scoring = %f, expected 1.5", s.Scale())
	}
	s.Update(0.25)
	if math.Abs(s.Scale()-1.25) > 1e-9 {
		t.Errorf("scale halfway = %f, expected 1.25", s.Scale())
	}
	s.Update(1)
	if s.Scale() != 1 {
		t.Errorf("scale after the animation = %f, expected 1", s.Scale())
	}
}
