package application

import (
	"reflect"
	"testing"
	"time"

	"charity-recommender/recommender/domain"
)

func dailyCatalog() []domain.Charity {
	names := []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot", "Golf", "Hotel", "India", "Juliett"}
	out := make([]domain.Charity, len(names))
	for i, n := range names {
		out[i] = domain.Charity{Name: n, IssueFamily: "other"}
	}
	return out
}

func fixedDay(day string) func() time.Time {
	ts, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return ts }
}

func TestDailyPicks_SameDaySameOrder(t *testing.T) {
	a := NewDailyPicks(dailyCatalog(), "segredo")
	a.Now = fixedDay("2026-08-25")
	b := NewDailyPicks(dailyCatalog(), "segredo")
	b.Now = fixedDay("2026-08-25")

	first := a.Select(3)
	second := b.Select(3)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical picks for the same day, got %v vs %v", names(first), names(second))
	}
}

func TestDailyPicks_RepeatedCallsAreStable(t *testing.T) {
	d := NewDailyPicks(dailyCatalog(), "segredo")
	d.Now = fixedDay("2026-08-25")

	if !reflect.DeepEqual(d.Select(5), d.Select(5)) {
		t.Fatalf("expected repeated calls to return the same sequence")
	}
}

func TestDailyPicks_DifferentDayDiffers(t *testing.T) {
	a := NewDailyPicks(dailyCatalog(), "segredo")
	a.Now = fixedDay("2026-08-25")
	b := NewDailyPicks(dailyCatalog(), "segredo")
	b.Now = fixedDay("2026-08-26")

	if reflect.DeepEqual(a.Select(10), b.Select(10)) {
		t.Fatalf("expected a different shuffle on a different day")
	}
}

func TestDailyPicks_DifferentSecretDiffers(t *testing.T) {
	a := NewDailyPicks(dailyCatalog(), "segredo")
	a.Now = fixedDay("2026-08-25")
	b := NewDailyPicks(dailyCatalog(), "outro-segredo")
	b.Now = fixedDay("2026-08-25")

	if reflect.DeepEqual(a.Select(10), b.Select(10)) {
		t.Fatalf("expected a different shuffle with a different secret")
	}
}

func TestDailyPicks_LimitClampsToCatalog(t *testing.T) {
	d := NewDailyPicks(dailyCatalog(), "segredo")
	d.Now = fixedDay("2026-08-25")

	if got := d.Select(100); len(got) != 10 {
		t.Fatalf("expected whole catalog, got %d", len(got))
	}
	if got := d.Select(0); len(got) != 0 {
		t.Fatalf("expected empty picks for limit 0, got %d", len(got))
	}
}
