package model

import (
	"testing"
)

func TestMoveHandle_Range(t *testing.T) {
	inc := IncomeStream{ID: "a", StartYear: 2030, EndYear: 2040}

	tests := []struct {
		name      string
		h         Handle
		year      int
		wantStart int
		wantEnd   int
	}{
		{"start earlier", HandleStart, 2028, 2028, 2040},
		{"start past end", HandleStart, 2045, 2039, 2040},
		{"end later", HandleEnd, 2050, 2030, 2050},
		{"end before start", HandleEnd, 2020, 2030, 2031},
		{"clamped low", HandleStart, 1990, 2025, 2040},
		{"clamped high", HandleEnd, 2200, 2030, 2070},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MoveHandle(inc, tt.h, tt.year, 2025, 2070).(IncomeStream)
			if got.StartYear != tt.wantStart || got.EndYear != tt.wantEnd {
				t.Errorf("got %d-%d, want %d-%d", got.StartYear, got.EndYear, tt.wantStart, tt.wantEnd)
			}
		})
	}
	if inc.StartYear != 2030 || inc.EndYear != 2040 {
		t.Error("MoveHandle modified its argument")
	}
}

func TestMoveHandle_OneTimeMovesWhole(t *testing.T) {
	got := MoveHandle(OneTimeExpense{ID: "x", Year: 2030}, HandleEnd, 2033, 2025, 2070).(OneTimeExpense)
	if got.Year != 2033 {
		t.Errorf("year = %d, want 2033", got.Year)
	}
}

func TestMoveHandle_Debt(t *testing.T) {
	d := Debt{ID: "d", StartYear: 2030}
	if got := MoveHandle(d, HandleEnd, 2040, 2025, 2070).(Debt); got.StartYear != 2030 {
		t.Errorf("end handle moved debt start to %d", got.StartYear)
	}
	if got := MoveHandle(d, HandleStart, 2027, 2025, 2070).(Debt); got.StartYear != 2027 {
		t.Errorf("start = %d, want 2027", got.StartYear)
	}
}

func TestMoveHandle_Asset(t *testing.T) {
	a := Asset{ID: "h", PurchaseYear: 2030}

	sold := MoveHandle(a, HandleEnd, 2029, 2025, 2070).(Asset)
	if sold.SellYear == nil || *sold.SellYear != 2031 {
		t.Fatalf("sell year = %v, want 2031", sold.SellYear)
	}
	if a.SellYear != nil {
		t.Error("MoveHandle modified the original asset")
	}

	bought := MoveHandle(a, HandleStart, 2026, 2025, 2070).(Asset)
	if bought.PurchaseYear != 2026 {
		t.Errorf("purchase = %d, want 2026", bought.PurchaseYear)
	}
}

func TestTimelineSpan(t *testing.T) {
	a := Asset{ID: "h", PurchaseYear: 2030}
	if StartYear(a) != 2030 || EndYear(a) != OpenEndedYear {
		t.Errorf("unsold asset span = %d-%d", StartYear(a), EndYear(a))
	}
	a.SellYear = ptr(2040)
	if EndYear(a) != 2040 {
		t.Errorf("sold asset end = %d", EndYear(a))
	}
	if EndYear(Debt{StartYear: 2030}) != OpenEndedYear {
		t.Error("debt should be open-ended")
	}
	if !IsOneTime(OneTimeIncome{}) || IsOneTime(Investment{}) {
		t.Error("IsOneTime misclassified")
	}
}

func TestParseKind(t *testing.T) {
	for _, in := range []string{"one-time-income", "ONE_TIME_INCOME", " one_time_income "} {
		k, err := ParseKind(in)
		if err != nil || k != KindOneTimeIncome {
			t.Errorf("ParseKind(%q) = %q, %v", in, k, err)
		}
	}
	if _, err := ParseKind("pension"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestNewElement(t *testing.T) {
	for _, k := range Kinds {
		e, err := NewElement(k, 2030)
		if err != nil {
			t.Fatalf("NewElement(%s): %v", k, err)
		}
		if e.Kind() != k {
			t.Errorf("kind = %s, want %s", e.Kind(), k)
		}
		if e.ElementID() == "" {
			t.Errorf("%s: empty id", k)
		}
		if err := e.Validate(); err != nil {
			t.Errorf("%s: new element invalid: %v", k, err)
		}
		if StartYear(e) != 2030 {
			t.Errorf("%s: start = %d", k, StartYear(e))
		}
	}

	a, _ := NewElement(KindDebt, 2030)
	b, _ := NewElement(KindDebt, 2030)
	if a.ElementID() == b.ElementID() {
		t.Error("NewElement reused an id")
	}
	if _, err := NewElement("pension", 2030); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestGroupFor(t *testing.T) {
	if len(Groups) != len(Kinds) {
		t.Fatalf("groups = %d, kinds = %d", len(Groups), len(Kinds))
	}
	if g := GroupFor(KindAsset); g.Label != "Assets" {
		t.Errorf("asset group label = %q", g.Label)
	}
}
