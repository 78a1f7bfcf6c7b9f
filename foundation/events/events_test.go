package events_test

import (
	"testing"

	"github.com/inkwell/dashboard/foundation/events"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Events(t *testing.T) {
	t.Log("Given the need to fan out change events to receivers.")
	{
		evts := events.New()

		all := evts.Acquire("all", nil)
		blog1 := evts.Acquire("blog1", func(e events.Event) bool { return e.BlogID == "b1" })

		if evts.Acquire("all", nil) != all {
			t.Fatalf("\t%s\tShould get the same channel for the same id.", failed)
		}
		t.Logf("\t%s\tShould get the same channel for the same id.", success)

		evts.Send(events.Event{Type: "post.created", BlogID: "b2"})
		evts.Send(events.Event{Type: "blog.updated", BlogID: "b1"})

		if e := <-all; e.BlogID != "b2" || e.Time.IsZero() {
			t.Fatalf("\t%s\tShould receive the first event stamped with a time, got %+v.", failed, e)
		}
		if e := <-all; e.BlogID != "b1" {
			t.Fatalf("\t%s\tShould receive the second event, got %+v.", failed, e)
		}
		t.Logf("\t%s\tShould deliver every event to an unfiltered receiver.", success)

		if e := <-blog1; e.Type != "blog.updated" {
			t.Fatalf("\t%s\tShould only receive the filtered event, got %+v.", failed, e)
		}
		if len(blog1) != 0 {
			t.Fatalf("\t%s\tShould not queue events rejected by the filter.", failed)
		}
		t.Logf("\t%s\tShould deliver only accepted events to a filtered receiver.", success)

		if err := evts.Release("blog1"); err != nil {
			t.Fatalf("\t%s\tShould be able to release a receiver: %v", failed, err)
		}
		if _, open := <-blog1; open {
			t.Fatalf("\t%s\tShould close the released channel.", failed)
		}
		t.Logf("\t%s\tShould close the released channel.", success)

		if err := evts.Release("blog1"); err == nil {
			t.Fatalf("\t%s\tShould not release an unknown receiver.", failed)
		}
		t.Logf("\t%s\tShould not release an unknown receiver.", success)

		evts.Shutdown()
		if evts.Count() != 0 {
			t.Fatalf("\t%s\tShould remove every receiver on shutdown.", failed)
		}
		if _, open := <-all; open {
			t.Fatalf("\t%s\tShould close remaining channels on shutdown.", failed)
		}
		t.Logf("\t%s\tShould close remaining channels on shutdown.", success)
	}
}
