package domain

import "testing"

func TestFingerprint(t *testing.T) {
	a := []ChecklistItem{
		{ID: "ppe_01", Value: ValueChecked},
		{ID: "fall_01", Value: ValueUnchecked},
	}
	b := []ChecklistItem{
		{ID: "FALL_01 ", Value: ValueUnchecked},
		{ID: "ppe_01", Value: ValueChecked, DisplayName: "Helmet"},
	}

	if got, want := Fingerprint(a), "fall_01:unchecked|ppe_01:checked"; got != want {
		t.Errorf("Fingerprint() = %q, want %q", got, want)
	}
	if Fingerprint(a) != Fingerprint(b) {
		t.Error("expected order and display name to be ignored")
	}

	b[0].Value = ValueChecked
	if Fingerprint(a) == Fingerprint(b) {
		t.Error("expected different values to change the fingerprint")
	}

	if Fingerprint(nil) != "" {
		t.Error("expected empty fingerprint for empty checklist")
	}
}
