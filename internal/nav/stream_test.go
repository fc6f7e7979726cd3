package nav

import "testing"

func TestSubject_SubscribeDeliversCurrentValue(t *testing.T) {
	s := NewSubject(3)
	var got []int
	cancel := s.Subscribe(func(v int) { got = append(got, v) })
	defer cancel()

	if len(got) != 1 || got[0] != 3 {
		t.Fatalf("initial delivery = %v, want [3]", got)
	}
}

func TestSubject_LastValueWins(t *testing.T) {
	s := NewSubject("")
	s.Publish("a")
	s.Publish("b")

	var got []string
	cancel := s.Subscribe(func(v string) { got = append(got, v) })
	defer cancel()

	if len(got) != 1 || got[0] != "b" {
		t.Errorf("late subscriber saw %v, want only [b]", got)
	}
	if s.Value() != "b" {
		t.Errorf("Value() = %q, want b", s.Value())
	}
}

func TestSubject_CancelStopsDelivery(t *testing.T) {
	s := NewSubject(0)
	var a, b []int
	cancelA := s.Subscribe(func(v int) { a = append(a, v) })
	cancelB := s.Subscribe(func(v int) { b = append(b, v) })
	defer cancelB()

	s.Publish(1)
	cancelA()
	cancelA()
	s.Publish(2)

	if len(a) != 2 || a[1] != 1 {
		t.Errorf("cancelled subscriber saw %v, want [0 1]", a)
	}
	if len(b) != 3 || b[2] != 2 {
		t.Errorf("live subscriber saw %v, want [0 1 2]", b)
	}
	if s.Subscribers() != 1 {
		t.Errorf("Subscribers() = %d, want 1", s.Subscribers())
	}
}

func TestSubject_CancelDuringPublish(t *testing.T) {
	s := NewSubject(0)
	var cancel func()
	calls := 0
	cancel = s.Subscribe(func(v int) {
		calls++
		if v == 1 {
			cancel()
		}
	})
	s.Publish(1)
	s.Publish(2)
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (initial + first publish)", calls)
	}
}
