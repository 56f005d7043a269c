package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNew_DefaultRegistry(t *testing.T) {
	c := New(nil)
	if c == nil {
		t.Fatal("New(nil) returned nil")
	}
	if c.registry == nil {
		t.Error("registry should not be nil")
	}
}

func TestCollector_IncCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.IncCounter("recall_test_counter", 5)
	c.IncCounter("recall_test_counter", 3)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	found := false
	for _, m := range metrics {
		if m.GetName() == "recall_test_counter" {
			found = true
			if val := m.GetMetric()[0].GetCounter().GetValue(); val != 8 {
				t.Errorf("counter value = %v, want 8", val)
			}
		}
	}
	if !found {
		t.Error("counter recall_test_counter not found in registry")
	}
}

func TestCollector_SetGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.SetGauge("recall_test_gauge", 42)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	found := false
	for _, m := range metrics {
		if m.GetName() == "recall_test_gauge" {
			found = true
			if val := m.GetMetric()[0].GetGauge().GetValue(); val != 42 {
				t.Errorf("gauge value = %v, want 42", val)
			}
		}
	}
	if !found {
		t.Error("gauge recall_test_gauge not found in registry")
	}
}

func TestCollector_AlreadyRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()

	existing := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recall_preexisting",
		Help: "recall_preexisting",
	})
	reg.MustRegister(existing)
	existing.Add(100)

	c := New(reg)
	c.IncCounter("recall_preexisting", 5)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	for _, m := range metrics {
		if m.GetName() == "recall_preexisting" {
			if val := m.GetMetric()[0].GetCounter().GetValue(); val != 105 {
				t.Errorf("counter value = %v, want 105", val)
			}
		}
	}
}

func TestCollector_Concurrent(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				c.IncCounter("recall_concurrent", 1)
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, m := range metrics {
		if m.GetName() == "recall_concurrent" {
			if val := m.GetMetric()[0].GetCounter().GetValue(); val != 1000 {
				t.Errorf("counter value = %v, want 1000", val)
			}
		}
	}
}
