package history

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/andresuchdata/popar-tracker/internal/domain"
)

type fakeRepo struct {
	mu    sync.Mutex
	po    []domain.POAggregate
	par   []domain.PARAggregate
	poErr error
	since []time.Time
}

func (f *fakeRepo) MonthlyPOAggregates(_ context.Context, since time.Time) ([]domain.POAggregate, error) {
	f.mu.Lock()
	f.since = append(f.since, since)
	f.mu.Unlock()
	return f.po, f.poErr
}

func (f *fakeRepo) MonthlyPARAggregates(_ context.Context, since time.Time) ([]domain.PARAggregate, error) {
	f.mu.Lock()
	f.since = append(f.since, since)
	f.mu.Unlock()
	return f.par, nil
}

func fixedClock() time.Time {
	return time.Date(2024, time.June, 17, 9, 30, 0, 0, time.UTC)
}

func TestLoadMergesBothSides(t *testing.T) {
	repo := &fakeRepo{
		po: []domain.POAggregate{
			{Period: "2024-02", POCount: 3, POAmount: 300, SupplierCount: 2},
			{Period: "2024-03", POCount: 1, POAmount: 100, SupplierCount: 1},
		},
		par: []domain.PARAggregate{
			{Period: "2024-01", PARCount: 2, PARAmount: 50, RecipientCount: 2},
			{Period: "2024-03", PARCount: 5, PARAmount: 80, RecipientCount: 4},
		},
	}

	got, err := NewLoader(repo, WithClock(fixedClock)).Load(context.Background(), 6)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []domain.PeriodRecord{
		{Period: "2024-01", PARCount: 2, PARAmount: 50, RecipientCount: 2, Demand: 2},
		{Period: "2024-02", POCount: 3, POAmount: 300, SupplierCount: 2, Demand: 3},
		{Period: "2024-03", POCount: 1, POAmount: 100, SupplierCount: 1, PARCount: 5, PARAmount: 80, RecipientCount: 4, Demand: 5},
	}
	if len(got) != len(want) {
		t.Fatalf("len(records) = %d, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("records[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	wantSince := time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)
	for _, s := range repo.since {
		if !s.Equal(wantSince) {
			t.Errorf("query since = %v, want %v", s, wantSince)
		}
	}
}

func TestLoadZeroFillsGaps(t *testing.T) {
	repo := &fakeRepo{
		po: []domain.POAggregate{
			{Period: "2023-11", POCount: 1, POAmount: 10},
			{Period: "2024-02", POCount: 2, POAmount: 20},
		},
	}

	tests := []struct {
		name     string
		zeroFill bool
		periods  []string
	}{
		{"filled", true, []string{"2023-11", "2023-12", "2024-01", "2024-02"}},
		{"raw", false, []string{"2023-11", "2024-02"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewLoader(repo, WithClock(fixedClock), WithZeroFill(tt.zeroFill)).Load(context.Background(), 12)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if len(got) != len(tt.periods) {
				t.Fatalf("got %d records, want %d", len(got), len(tt.periods))
			}
			for i, p := range tt.periods {
				if got[i].Period != p {
					t.Errorf("records[%d].Period = %s, want %s", i, got[i].Period, p)
				}
			}
			if tt.zeroFill && (got[1].POAmount != 0 || got[1].Demand != 0) {
				t.Errorf("filled month = %+v, want zeroes", got[1])
			}
		})
	}
}

func TestLoadDataUnavailable(t *testing.T) {
	_, err := NewLoader(&fakeRepo{}, WithClock(fixedClock)).Load(context.Background(), 12)
	if !errors.Is(err, domain.ErrDataUnavailable) {
		t.Errorf("Load() error = %v, want ErrDataUnavailable", err)
	}
}

func TestLoadPropagatesQueryErrors(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := NewLoader(&fakeRepo{poErr: boom}).Load(context.Background(), 12)
	if !errors.Is(err, boom) {
		t.Errorf("Load() error = %v, want wrapped %v", err, boom)
	}
}

func TestSinceDefaultsLookback(t *testing.T) {
	l := NewLoader(&fakeRepo{}, WithClock(fixedClock))
	want := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	for _, months := range []int{0, -3, DefaultLookbackMonths} {
		if got := l.Since(months); !got.Equal(want) {
			t.Errorf("Since(%d) = %v, want %v", months, got, want)
		}
	}
}

func TestMergeRejectsMalformedPeriod(t *testing.T) {
	_, err := Merge([]domain.POAggregate{{Period: "March 2024"}}, nil)
	if err == nil {
		t.Error("Merge() accepted a malformed period")
	}
}

func TestZeroFillAcrossYear(t *testing.T) {
	in := []domain.PeriodRecord{{Period: "2023-12", POAmount: 5}, {Period: "2024-03", PARAmount: 7}}
	got, err := ZeroFill(in)
	if err != nil {
		t.Fatalf("ZeroFill() error = %v", err)
	}
	want := []string{"2023-12", "2024-01", "2024-02", "2024-03"}
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Period != want[i] {
			t.Errorf("records[%d] = %s, want %s", i, got[i].Period, want[i])
		}
	}
	if got[3].PARAmount != 7 {
		t.Errorf("last record lost its data: %+v", got[3])
	}
}
