package inspector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeWeight_Anchors(t *testing.T) {
	assert.InDelta(t, 1.0, TimeWeight(0), 1e-9)
	assert.InDelta(t, 0.75, TimeWeight(15), 1e-9)
	assert.InDelta(t, 0.5, TimeWeight(30), 1e-9)
	assert.InDelta(t, 0.5, TimeWeight(45), 1e-9)
	assert.InDelta(t, 0.5, TimeWeight(365), 1e-9)
	assert.InDelta(t, 1.0, TimeWeight(-3), 1e-9)
}

func TestTimeWeight_Monotonic(t *testing.T) {
	prev := TimeWeight(0)
	for age := 0.0; age <= 40; age += 0.25 {
		w := TimeWeight(age)
		assert.LessOrEqual(t, w, prev, "age %.2f", age)
		assert.GreaterOrEqual(t, w, MinWeight)
		prev = w
	}
}

func TestConfidence(t *testing.T) {
	assert.Equal(t, 0, Confidence(0, 0, 0))
	assert.Equal(t, 100, Confidence(10, 14, 1))
	assert.Equal(t, 100, Confidence(50, 90, 3))
	assert.Equal(t, 50, Confidence(5, 7, 0.5))
	assert.Equal(t, 0, Confidence(-1, -5, -2))
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Kim Min-su", "kimminsu"},
		{"  KIM  MINSU ", "kimminsu"},
		{"kim.minsu", "kimminsu"},
		{"ＫＩＭ Ｍｉｎｓｕ", "kimminsu"},
		{"김 민수", "김민수"},
		{"Park (supervisor) 2", "parksupervisor2"},
		{"", ""},
		{" - ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeName(tt.in), tt.in)
	}
}
