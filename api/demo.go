/*
demo.go - Demo dataset loader

PURPOSE:
  Seeds the engine with a realistic four-week clinic setup for demos and
  walkthroughs: four providers across three skill categories, ten clients,
  and twenty-one one-hour slots spanning 24 March - 20 April 2025. The
  demo pins the harness clock to 23 March 2025 00:00 so every temporal
  check behaves the same on every run.

USAGE VIA API:

	POST /api/demo/load

  Loading into an already-seeded engine fails on the first duplicate ID;
  restart the process for a clean slate.

SEE ALSO:
  - handlers.go: LoadDemo handler
  - cmd/demo: text walkthrough built on the same dataset
*/
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/bpc/clinic-engine/clinic"
)

// DemoTime is the fixed "current time" the demo dataset assumes.
var DemoTime = clinic.NewTimePoint(2025, time.March, 23, 0)

// LoadDemo seeds the demo dataset and pins the harness clock.
func (h *Handler) LoadDemo(w http.ResponseWriter, r *http.Request) {
	if err := SeedDemo(h.Engine); err != nil {
		writeDomainError(w, "Failed to load demo dataset", err)
		return
	}
	h.setNow(DemoTime)
	writeJSON(w, http.StatusOK, map[string]any{
		"providers": len(h.Engine.Registry().Providers()),
		"clients":   len(h.Engine.Registry().Clients()),
		"slots":     h.Engine.Timetable().Len(),
		"now":       DemoTime.String(),
	})
}

// SeedDemo populates an engine with the demo roster, clients and timetable.
func SeedDemo(engine *clinic.Engine) error {
	reg := engine.Registry()

	p1 := clinic.NewProvider("P1", "Dr. Smith", "123 Main St", "555-0101")
	p1.AddSkill("Physiotherapy")
	p1.AddSkill("Rehabilitation")
	p1.AddOffering(clinic.NewPricedTreatment("Massage", "Physiotherapy", "45.00"))
	p1.AddOffering(clinic.NewPricedTreatment("Pool Rehabilitation", "Rehabilitation", "60.00"))

	p2 := clinic.NewProvider("P2", "Dr. Jones", "456 Oak St", "555-0102")
	p2.AddSkill("Osteopathy")
	p2.AddOffering(clinic.NewPricedTreatment("Acupuncture", "Osteopathy", "50.00"))

	p3 := clinic.NewProvider("P3", "Dr. Lee", "789 Pine St", "555-0103")
	p3.AddSkill("Physiotherapy")
	p3.AddOffering(clinic.NewPricedTreatment("Neural Mobilisation", "Physiotherapy", "55.00"))

	p4 := clinic.NewProvider("P4", "Dr. Brown", "321 Elm St", "555-0104")
	p4.AddSkill("Rehabilitation")
	p4.AddOffering(clinic.NewPricedTreatment("Mobilisation of the Spine", "Rehabilitation", "65.00"))

	reg.AddProvider(p1)
	reg.AddProvider(p2)
	reg.AddProvider(p3)
	reg.AddProvider(p4)

	demoClients := []struct{ id, name, address, phone string }{
		{"PT1", "Alice Brown", "789 Pine St", "555-0201"},
		{"PT2", "Bob White", "321 Elm St", "555-0202"},
		{"PT3", "Charlie Green", "654 Maple St", "555-0203"},
		{"PT4", "Diana Blue", "987 Cedar St", "555-0204"},
		{"PT5", "Eve Black", "123 Birch St", "555-0205"},
		{"PT6", "Frank Red", "456 Spruce St", "555-0206"},
		{"PT7", "Grace Yellow", "789 Willow St", "555-0207"},
		{"PT8", "Henry Orange", "321 Ash St", "555-0208"},
		{"PT9", "Ivy Purple", "654 Oak St", "555-0209"},
		{"PT10", "Jack Gray", "987 Pine St", "555-0210"},
	}
	for _, c := range demoClients {
		if err := reg.AddClient(clinic.NewClient(clinic.ClientID(c.id), c.name, c.address, c.phone)); err != nil {
			return fmt.Errorf("seed client %s: %w", c.id, err)
		}
	}

	tt := engine.Timetable()
	demoSlots := []struct {
		id       clinic.SlotID
		start    clinic.TimePoint
		provider *clinic.Provider
		offering int
	}{
		// Week 1
		{"A1", clinic.NewTimePoint(2025, time.March, 24, 9), p1, 0},
		{"A2", clinic.NewTimePoint(2025, time.March, 24, 10), p1, 1},
		{"A3", clinic.NewTimePoint(2025, time.March, 24, 11), p2, 0},
		{"A4", clinic.NewTimePoint(2025, time.March, 26, 9), p3, 0},
		{"A5", clinic.NewTimePoint(2025, time.March, 27, 9), p4, 0},
		{"A18", clinic.NewTimePoint(2025, time.March, 27, 14), p4, 0},
		// Week 2
		{"A6", clinic.NewTimePoint(2025, time.March, 31, 9), p1, 0},
		{"A7", clinic.NewTimePoint(2025, time.April, 1, 9), p2, 0},
		{"A8", clinic.NewTimePoint(2025, time.April, 2, 9), p3, 0},
		{"A9", clinic.NewTimePoint(2025, time.April, 3, 9), p4, 0},
		{"A19", clinic.NewTimePoint(2025, time.April, 3, 14), p4, 0},
		// Week 3
		{"A10", clinic.NewTimePoint(2025, time.April, 7, 9), p1, 0},
		{"A11", clinic.NewTimePoint(2025, time.April, 8, 9), p2, 0},
		{"A12", clinic.NewTimePoint(2025, time.April, 9, 9), p3, 0},
		{"A13", clinic.NewTimePoint(2025, time.April, 10, 9), p4, 0},
		{"A20", clinic.NewTimePoint(2025, time.April, 10, 14), p4, 0},
		// Week 4
		{"A14", clinic.NewTimePoint(2025, time.April, 14, 9), p1, 0},
		{"A15", clinic.NewTimePoint(2025, time.April, 15, 9), p2, 0},
		{"A16", clinic.NewTimePoint(2025, time.April, 16, 9), p3, 0},
		{"A17", clinic.NewTimePoint(2025, time.April, 17, 9), p4, 0},
		{"A21", clinic.NewTimePoint(2025, time.April, 17, 14), p4, 0},
	}
	for _, s := range demoSlots {
		slot := clinic.NewSlot(s.id, s.start, s.provider.ID, s.provider.Offering(s.offering))
		if err := tt.AddSlot(slot); err != nil {
			return fmt.Errorf("seed slot %s: %w", s.id, err)
		}
	}

	return nil
}
