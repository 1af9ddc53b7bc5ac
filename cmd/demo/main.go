/*
main.go - Self-running text demo

PURPOSE:
  Walks the full booking lifecycle against the demo dataset and prints a
  report, exercising every engine operation: both booking paths, a
  reschedule, attendance marking, cancellations, the client appointment
  view, and the reporting rollups. All mutation goes through the engine;
  this program only renders text.

  The clock is pinned to 23 March 2025 00:00, the instant the demo
  timetable assumes, so output is identical on every run.
*/
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bpc/clinic-engine/api"
	"github.com/bpc/clinic-engine/clinic"
	"github.com/bpc/clinic-engine/clinic/store"
)

func main() {
	engine := clinic.NewEngine(clinic.NewRegistry(), clinic.NewTimetable())
	if err := api.SeedDemo(engine); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}

	events := store.NewMemory()
	ctx := context.Background()
	now := api.DemoTime

	fmt.Println("=== Clinic Scheduling Demo ===")
	fmt.Printf("Current time: %s\n", now)
	fmt.Printf("Seeded %d providers, %d clients, %d slots\n\n",
		len(engine.Registry().Providers()), len(engine.Registry().Clients()), engine.Timetable().Len())

	// Register and remove a walk-in client.
	fmt.Println("-- Client registration --")
	reg := engine.Registry()
	must(reg.AddClient(clinic.NewClient("PT11", "Kelly Pink", "111 Rose St", "555-0211")))
	fmt.Println("Registered PT11 (Kelly Pink)")
	if err := reg.AddClient(clinic.NewClient("PT11", "Duplicate", "222 Lily St", "555-0212")); err != nil {
		fmt.Printf("Duplicate rejected: %v\n", err)
	}
	reg.RemoveClient("PT11")
	fmt.Println("Removed PT11")

	// Available slots by category and by provider.
	fmt.Println("\n-- Availability --")
	printSlots("Physiotherapy slots:", engine.Timetable().AvailableByCategory("Physiotherapy"))
	printSlots("Dr. Lee (P3) slots:", engine.Timetable().AvailableByProvider("P3"))

	// Book by category and by provider.
	fmt.Println("\n-- Booking --")
	book := func(ev clinic.EventType, f func() (*clinic.Slot, error), who clinic.ClientID) {
		slot, err := f()
		if err != nil {
			fmt.Printf("Booking failed: %v\n", err)
			return
		}
		fmt.Printf("Booked %s (%s) for %s\n", slot.ID, slot.Treatment.Name, who)
		record(ctx, events, ev, slot.ID, who, now)
	}
	book(clinic.EventBooked, func() (*clinic.Slot, error) {
		return engine.BookByCategory("Physiotherapy", "A1", "PT1", now)
	}, "PT1")
	book(clinic.EventBooked, func() (*clinic.Slot, error) {
		return engine.BookByCategory("Physiotherapy", "A4", "PT2", now)
	}, "PT2")
	book(clinic.EventBooked, func() (*clinic.Slot, error) {
		return engine.BookByProvider("P3", "A12", "PT5", now)
	}, "PT5")
	book(clinic.EventBooked, func() (*clinic.Slot, error) {
		return engine.BookByProvider("P2", "A3", "PT6", now)
	}, "PT6")

	// Double-booking is rejected: A1 left the available set.
	if _, err := engine.BookByCategory("Physiotherapy", "A1", "PT4", now); err != nil {
		fmt.Printf("Double booking rejected: %v\n", err)
	}

	// Reschedule Eve (PT5) from A12 to A16.
	fmt.Println("\n-- Reschedule --")
	if err := engine.Reschedule("A12", "A16", "PT5", now); err != nil {
		fmt.Printf("Reschedule failed: %v\n", err)
	} else {
		fmt.Println("Moved PT5 from A12 to A16")
		record(ctx, events, clinic.EventRescheduled, "A16", "PT5", now)
	}
	printStatus(engine, "A12")
	printStatus(engine, "A16")

	// Attend and cancel.
	fmt.Println("\n-- Attendance and cancellation --")
	for _, id := range []clinic.SlotID{"A1", "A4", "A16"} {
		must(engine.Attend(id))
		record(ctx, events, clinic.EventAttended, id, "", now)
	}
	fmt.Println("Marked A1, A4, A16 attended")
	must(engine.Cancel("A3", "PT6"))
	record(ctx, events, clinic.EventCancelled, "A3", "PT6", now)
	fmt.Println("Cancelled A3 for PT6")
	if err := engine.Cancel("A2", "PT1"); err != nil {
		fmt.Printf("Cancelling an unbooked slot rejected: %v\n", err)
	}

	// Client appointment view.
	fmt.Println("\n-- Client appointments --")
	for _, id := range []clinic.ClientID{"PT1", "PT5", "PT6"} {
		appts := engine.ClientAppointments(id)
		fmt.Printf("%s: %d appointment(s)\n", id, len(appts))
		for _, a := range appts {
			fmt.Printf("  %s %s %s [%s]\n", a.ID, a.Start, a.Treatment.Name, a.Status())
		}
	}

	// Report.
	fmt.Println("\n=== Report ===")
	printReport(clinic.BuildReport(engine.Registry(), engine.Timetable()))

	// Audit trail.
	evs, err := events.Events(ctx)
	must(err)
	fmt.Printf("\n%d events recorded\n", len(evs))
}

func record(ctx context.Context, events clinic.EventLog, evType clinic.EventType, slot clinic.SlotID, client clinic.ClientID, at clinic.TimePoint) {
	err := events.Append(ctx, clinic.Event{
		ID:       fmt.Sprintf("ev-%d", time.Now().UnixNano()),
		Type:     evType,
		SlotID:   slot,
		ClientID: client,
		At:       at,
	})
	must(err)
}

func printSlots(title string, slots []*clinic.Slot) {
	fmt.Println(title)
	for _, s := range slots {
		fmt.Printf("  %s %s %s (%s)\n", s.ID, s.Start, s.Treatment.Name, s.Provider)
	}
}

func printStatus(engine *clinic.Engine, id clinic.SlotID) {
	if s, ok := engine.Timetable().FindByID(id); ok {
		fmt.Printf("%s status: %s\n", id, s.Status())
	}
}

func printReport(rep *clinic.Report) {
	for _, sched := range rep.Schedules {
		fmt.Printf("\nProvider: %s\n", sched.Provider.Name)
		for _, s := range sched.Slots {
			client := "-"
			if s.Client() != "" {
				client = string(s.Client())
			}
			fmt.Printf("  %s %s %s client=%s [%s]\n", s.ID, s.Start, s.Treatment.Name, client, s.Status())
		}
	}

	fmt.Println("\nProviders by attended visits:")
	for _, rank := range rep.Ranking {
		fmt.Printf("  %s: %d attended, revenue %s\n", rank.Provider.Name, rank.Attended, rank.Revenue.StringFixed(2))
	}

	sum := rep.Summary
	fmt.Printf("\nTotal: %d  Available: %d  Booked: %d  Attended: %d  Cancelled: %d\n",
		sum.Total, sum.Available, sum.Booked, sum.Attended, sum.Cancelled)
	if !sum.Consistent {
		fmt.Println("Warning: status counts do not add up to total slots")
	}
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
