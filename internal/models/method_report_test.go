package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bigocheck/internal/models"
)

func TestMethodReport_TimeComplexity(t *testing.T) {
	tests := []struct {
		name      string
		loops     []models.LoopGrowth
		depths    []int
		recursive bool
		want      string
	}{
		{name: "no loops", want: "O(1)"},
		{name: "recursive without loops", recursive: true, want: "O(n)"},
		{name: "single loop", loops: []models.LoopGrowth{models.GrowthLinear}, depths: []int{1}, want: "O(n)"},
		{
			name:   "nested pair",
			loops:  []models.LoopGrowth{models.GrowthLinear, models.GrowthLogarithmic},
			depths: []int{1, 2},
			want:   "O(n * log n)",
		},
		{
			name:   "nested pair then sequential",
			loops:  []models.LoopGrowth{models.GrowthLinear, models.GrowthLinear, models.GrowthLinear},
			depths: []int{1, 2, 1},
			want:   "O(n * n + n)",
		},
		{
			name:   "sequential loops",
			loops:  []models.LoopGrowth{models.GrowthLogarithmic, models.GrowthLinear},
			depths: []int{1, 1},
			want:   "O(log n + n)",
		},
		{
			name:      "recursive with loops keeps the loop estimate",
			loops:     []models.LoopGrowth{models.GrowthLinear},
			depths:    []int{1},
			recursive: true,
			want:      "O(n)",
		},
		{
			name:   "two disjoint nested pairs",
			loops:  []models.LoopGrowth{models.GrowthLinear, models.GrowthLinear, models.GrowthLinear, models.GrowthLinear},
			depths: []int{1, 2, 1, 2},
			want:   "O(n * n + n + n)",
		},
		{
			name:   "unknown and constant terms",
			loops:  []models.LoopGrowth{models.GrowthConstant, models.GrowthUnknown},
			depths: []int{1, 2},
			want:   "O(1 * ?)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := models.NewMethodReport("f")
			for i, g := range tt.loops {
				r.AddLoop(g, tt.depths[i])
			}
			r.IsRecursive = tt.recursive
			assert.Equal(t, tt.want, r.TimeComplexity())
		})
	}
}

func TestMethodReport(t *testing.T) {
	t.Run("Should model stack space for recursion only", func(t *testing.T) {
		r := models.NewMethodReport("f")
		assert.Equal(t, "O(1)", r.SpaceComplexity())
		r.IsRecursive = true
		assert.Equal(t, "O(n)", r.SpaceComplexity())
	})

	t.Run("Should keep the deepest nesting seen", func(t *testing.T) {
		r := models.NewMethodReport("f")
		r.AddLoop(models.GrowthLinear, 1)
		r.AddLoop(models.GrowthLinear, 3)
		r.AddLoop(models.GrowthLinear, 2)
		assert.Equal(t, 3, r.MaxNestedDepth)
		assert.Equal(t, "[LINEAR, LINEAR, LINEAR]", r.LoopsString())
	})

	t.Run("Should record callees once in first-call order", func(t *testing.T) {
		r := models.NewMethodReport("f")
		assert.True(t, r.AddCall("b"))
		assert.True(t, r.AddCall("a"))
		assert.False(t, r.AddCall("b"))

		assert.Equal(t, []string{"b", "a"}, r.Callees())
		assert.True(t, r.Calls("a"))
		assert.False(t, r.Calls("c"))

		callees := r.Callees()
		callees[0] = "changed"
		assert.Equal(t, []string{"b", "a"}, r.Callees())
	})

	t.Run("Should grade severity by depth and recursion", func(t *testing.T) {
		r := models.NewMethodReport("f")
		assert.Equal(t, models.SeverityLow, r.Severity())
		r.IsRecursive = true
		assert.Equal(t, models.SeverityMedium, r.Severity())

		r.AddLoop(models.GrowthLinear, 3)
		assert.Equal(t, models.SeverityHigh, r.Severity())
		r.AddLoop(models.GrowthLinear, 4)
		assert.Equal(t, models.SeverityCritical, r.Severity())
	})

	t.Run("Should render the boundary result", func(t *testing.T) {
		r := models.NewMethodReport("fact")
		r.Line = 2
		r.IsRecursive = true

		data, err := json.Marshal(r.Result())
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"method": "fact",
			"timeComplexity": "O(n)",
			"spaceComplexity": "O(n)",
			"isRecursive": true,
			"nestedDepth": 0,
			"loops": "[]",
			"line": 2,
			"severity": "MEDIUM"
		}`, string(data))
	})
}

func TestLoopGrowth(t *testing.T) {
	assert.Equal(t, "LOGARITHMIC", models.GrowthLogarithmic.String())
	assert.Equal(t, "log n", models.GrowthLogarithmic.Term())
	assert.Equal(t, "UNKNOWN", models.LoopGrowth(9).String())
	assert.Equal(t, "[]", models.FormatGrowths(nil))

	data, err := json.Marshal([]models.LoopGrowth{models.GrowthLinear, models.GrowthConstant})
	require.NoError(t, err)
	assert.Equal(t, `["LINEAR","CONSTANT"]`, string(data))
}
