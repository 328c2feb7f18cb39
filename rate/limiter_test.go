package rate

import (
	"testing"
	"time"
)

func TestLimiter(t *testing.T) {
	burst := 1

	interval := 10 * time.Millisecond
	lim := NewLimiter(burst, 100, Every(interval))

	tooshort := 1 * time.Millisecond

	client := "203.0.113.7"
	expected := []bool{true, false, true, true, false, false}
	waits := []time.Duration{tooshort, interval, interval, tooshort, tooshort, tooshort}
	for i, exp := range expected {
		if got := lim.Check(client); got != exp {
			t.Fatalf("iteration %d: expected %v, but got %v", i, exp, got)
		}
		time.Sleep(waits[i])
	}
}

func TestLimiterWithBurst(t *testing.T) {
	client := "203.0.113.7"
	burst := 10

	interval := 100 * time.Millisecond

	tooshort := 10 * time.Millisecond
	shortest := 1 * time.Millisecond

	expected := []bool{true, true, true, true, true, true, true, true, true, true}
	waits := []time.Duration{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}

	expected = append(expected, false, true, true, false, false, false)
	waits = append(waits, interval, interval, tooshort, tooshort, shortest, shortest)

	lim := NewLimiter(burst, 100, Every(interval))
	for i, exp := range expected {
		if got := lim.Check(client); got != exp {
			t.Fatalf("iteration %d: expected %v, but got %v", i, exp, got)
		}
		time.Sleep(waits[i])
	}
}

func TestLimiterIndependentClients(t *testing.T) {
	lim := NewLimiter(1, 100, Every(time.Minute))

	if !lim.Check("a") {
		t.Fatal("first request for client a should pass")
	}
	if lim.Check("a") {
		t.Fatal("second request for client a should be throttled")
	}
	if !lim.Check("b") {
		t.Fatal("client b must not share client a's bucket")
	}
}
