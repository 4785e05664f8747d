package advisor

import (
	"testing"

	"github.com/ahvonen/phoneadvisor/internal/testutil"
	"github.com/ahvonen/phoneadvisor/pkg/models"
)

// fourPhones builds a catalog A, B, C, D with distinct labels at
// positions 0..3.
func fourPhones() []models.Phone {
	return []models.Phone{
		testutil.NewPhone(testutil.WithModel("A")),
		testutil.NewPhone(testutil.WithModel("B")),
		testutil.NewPhone(testutil.WithModel("C")),
		testutil.NewPhone(testutil.WithModel("D")),
	}
}

func TestEngine_Recommend_RanksByScoreThenPosition(t *testing.T) {
	// From A: B and C tie at 0.9, D trails. The tie breaks by catalog
	// position, so B (position 1) precedes C (position 2).
	ds := testutil.Dataset(t, fourPhones(), [][]float64{
		{1.0, 0.9, 0.9, 0.1},
		{0.9, 1.0, 0.3, 0.2},
		{0.9, 0.3, 1.0, 0.4},
		{0.1, 0.2, 0.4, 1.0},
	})
	engine := NewEngine(ds)

	phones, found := engine.Recommend("Acme A", 2)
	if !found {
		t.Fatal("expected label to resolve")
	}
	if len(phones) != 2 {
		t.Fatalf("len = %d, want 2", len(phones))
	}
	if phones[0].Model != "B" || phones[1].Model != "C" {
		t.Errorf("got [%s, %s], want [B, C]", phones[0].Model, phones[1].Model)
	}
}

func TestEngine_Recommend_NeverIncludesSelf(t *testing.T) {
	// Self-similarity is the row maximum, so without the exclusion the
	// query phone would always rank first.
	ds := testutil.Dataset(t, fourPhones(), [][]float64{
		{1.0, 0.9, 0.9, 0.1},
		{0.9, 1.0, 0.3, 0.2},
		{0.9, 0.3, 1.0, 0.4},
		{0.1, 0.2, 0.4, 1.0},
	})
	engine := NewEngine(ds)

	for _, label := range []string{"Acme A", "Acme B", "Acme C", "Acme D"} {
		phones, found := engine.Recommend(label, 10)
		if !found {
			t.Fatalf("label %q did not resolve", label)
		}
		for _, p := range phones {
			if p.Label() == label {
				t.Errorf("recommendations for %q include the query phone itself", label)
			}
		}
	}
}

func TestEngine_Recommend_LenNeverExceedsN(t *testing.T) {
	ds := testutil.Dataset(t, fourPhones(), [][]float64{
		{1.0, 0.9, 0.8, 0.1},
		{0.9, 1.0, 0.3, 0.2},
		{0.8, 0.3, 1.0, 0.4},
		{0.1, 0.2, 0.4, 1.0},
	})
	engine := NewEngine(ds)

	for n := 0; n <= 6; n++ {
		phones, _ := engine.Recommend("Acme A", n)
		if len(phones) > n {
			t.Errorf("n=%d: len = %d, want <= %d", n, len(phones), n)
		}
	}
}

func TestEngine_Recommend_UnknownLabel(t *testing.T) {
	ds := testutil.Dataset(t, fourPhones(), [][]float64{
		{1.0, 0.9, 0.8, 0.1},
		{0.9, 1.0, 0.3, 0.2},
		{0.8, 0.3, 1.0, 0.4},
		{0.1, 0.2, 0.4, 1.0},
	})
	engine := NewEngine(ds)

	for _, n := range []int{0, 1, 10} {
		phones, found := engine.Recommend("Nokia 3310", n)
		if found {
			t.Errorf("n=%d: unknown label reported as found", n)
		}
		if len(phones) != 0 {
			t.Errorf("n=%d: got %d phones for unknown label, want 0", n, len(phones))
		}
	}
}

func TestEngine_Recommend_DeduplicatesSharedLabels(t *testing.T) {
	// B (0.9) and C (0.85) share a label; C is skipped as a duplicate
	// and D (0.5) fills the second slot.
	phones := []models.Phone{
		testutil.NewPhone(testutil.WithModel("Q")),
		testutil.NewPhone(testutil.WithModel("X")),
		testutil.NewPhone(testutil.WithModel("X"), testutil.WithPrice(999)),
		testutil.NewPhone(testutil.WithModel("D")),
	}
	ds := testutil.Dataset(t, phones, [][]float64{
		{1.0, 0.9, 0.85, 0.5},
		{0.9, 1.0, 0.7, 0.2},
		{0.85, 0.7, 1.0, 0.4},
		{0.5, 0.2, 0.4, 1.0},
	})
	engine := NewEngine(ds)

	got, found := engine.Recommend("Acme Q", 2)
	if !found {
		t.Fatal("expected label to resolve")
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Model != "X" || got[0].Position != 1 {
		t.Errorf("first = %s at %d, want X at position 1", got[0].Model, got[0].Position)
	}
	if got[1].Model != "D" {
		t.Errorf("second = %s, want D", got[1].Model)
	}
}

func TestEngine_Recommend_SharedLabelCatalogYieldsAtMostOne(t *testing.T) {
	// Every phone carries the same label; however large n is, the result
	// can hold only one entry.
	phones := []models.Phone{
		testutil.NewPhone(),
		testutil.NewPhone(testutil.WithPrice(100)),
		testutil.NewPhone(testutil.WithPrice(200)),
		testutil.NewPhone(testutil.WithPrice(300)),
	}
	ds := testutil.Dataset(t, phones, [][]float64{
		{1.0, 0.9, 0.8, 0.7},
		{0.9, 1.0, 0.6, 0.5},
		{0.8, 0.6, 1.0, 0.4},
		{0.7, 0.5, 0.4, 1.0},
	})
	engine := NewEngine(ds)

	got, found := engine.Recommend("Acme One", 10)
	if !found {
		t.Fatal("expected label to resolve")
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Position != 1 {
		t.Errorf("position = %d, want 1 (highest-ranked non-self)", got[0].Position)
	}
}

func TestEngine_Recommend_ZeroN(t *testing.T) {
	ds := testutil.Dataset(t, fourPhones(), [][]float64{
		{1.0, 0.9, 0.8, 0.1},
		{0.9, 1.0, 0.3, 0.2},
		{0.8, 0.3, 1.0, 0.4},
		{0.1, 0.2, 0.4, 1.0},
	})
	engine := NewEngine(ds)

	phones, found := engine.Recommend("Acme A", 0)
	if !found {
		t.Fatal("expected label to resolve")
	}
	if len(phones) != 0 {
		t.Errorf("len = %d, want 0", len(phones))
	}
}

func TestEngine_Recommend_SingletonCatalog(t *testing.T) {
	ds := testutil.Dataset(t,
		[]models.Phone{testutil.NewPhone()},
		[][]float64{{1.0}},
	)
	engine := NewEngine(ds)

	phones, found := engine.Recommend("Acme One", 5)
	if !found {
		t.Fatal("expected label to resolve")
	}
	if len(phones) != 0 {
		t.Errorf("len = %d, want 0 (only candidate is the query itself)", len(phones))
	}
}

func TestEngine_Recommend_EqualScoresPreservePositionOrder(t *testing.T) {
	// All candidates tie, so the output must follow catalog positions.
	ds := testutil.Dataset(t, fourPhones(), [][]float64{
		{1.0, 0.5, 0.5, 0.5},
		{0.5, 1.0, 0.5, 0.5},
		{0.5, 0.5, 1.0, 0.5},
		{0.5, 0.5, 0.5, 1.0},
	})
	engine := NewEngine(ds)

	phones, found := engine.Recommend("Acme B", 3)
	if !found {
		t.Fatal("expected label to resolve")
	}
	wantPositions := []int{0, 2, 3}
	if len(phones) != len(wantPositions) {
		t.Fatalf("len = %d, want %d", len(phones), len(wantPositions))
	}
	for i, want := range wantPositions {
		if phones[i].Position != want {
			t.Errorf("phones[%d].Position = %d, want %d", i, phones[i].Position, want)
		}
	}
}

func TestEngine_Recommend_Deterministic(t *testing.T) {
	ds := testutil.Dataset(t, fourPhones(), [][]float64{
		{1.0, 0.9, 0.9, 0.9},
		{0.9, 1.0, 0.9, 0.9},
		{0.9, 0.9, 1.0, 0.9},
		{0.9, 0.9, 0.9, 1.0},
	})
	engine := NewEngine(ds)

	first, _ := engine.Recommend("Acme A", 3)
	for run := 0; run < 20; run++ {
		again, _ := engine.Recommend("Acme A", 3)
		if len(again) != len(first) {
			t.Fatalf("run %d: len = %d, want %d", run, len(again), len(first))
		}
		for i := range first {
			if again[i].Position != first[i].Position {
				t.Fatalf("run %d: position[%d] = %d, want %d",
					run, i, again[i].Position, first[i].Position)
			}
		}
	}
}

func TestEngine_Recommend_NegativeNTreatedAsZero(t *testing.T) {
	ds := testutil.Dataset(t, fourPhones(), [][]float64{
		{1.0, 0.9, 0.8, 0.1},
		{0.9, 1.0, 0.3, 0.2},
		{0.8, 0.3, 1.0, 0.4},
		{0.1, 0.2, 0.4, 1.0},
	})
	engine := NewEngine(ds)

	phones, found := engine.Recommend("Acme A", -3)
	if !found {
		t.Fatal("expected label to resolve")
	}
	if len(phones) != 0 {
		t.Errorf("len = %d, want 0", len(phones))
	}
}
