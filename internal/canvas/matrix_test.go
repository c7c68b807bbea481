package canvas

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestMatrix_MultiplyAppliesRightOperandFirst(t *testing.T) {
	m := Translation(10, 0).Multiply(Rotation(math.Pi / 2))
	x, y := m.Apply(1, 0)
	if diff := cmp.Diff([]float64{10, 1}, []float64{x, y}, approx); diff != "" {
		t.Errorf("Apply mismatch (-want +got):\n%s", diff)
	}
}

func TestMatrix_Shearing(t *testing.T) {
	x, y := Shearing(2, 0.5).Apply(3, 4)
	if x != 11 || y != 5.5 {
		t.Errorf("Shearing(2, 0.5).Apply(3, 4) = (%v, %v), want (11, 5.5)", x, y)
	}
}

func TestMatrix_Decompose(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"identity", Identity()},
		{"translation", Translation(5, -7)},
		{"rotation", Rotation(0.7)},
		{"shear", Shearing(0.4, 0.2)},
		{"mirror", Matrix{A: -1, E: 1}},
		{"composite", Translation(3, 4).Multiply(Rotation(-1.1)).Multiply(Shearing(0.3, 0)).Multiply(Matrix{A: 2, E: 0.5})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := tt.m.decompose()
			if !ok {
				t.Fatal("decompose reported a singular matrix")
			}
			got := Translation(d.tx, d.ty).
				Multiply(Rotation(d.theta)).
				Multiply(Shearing(d.k, 0)).
				Multiply(Matrix{A: d.sx, E: d.sy})
			if diff := cmp.Diff(tt.m, got, approx); diff != "" {
				t.Errorf("recomposed matrix mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, ok := Shearing(1, 1).decompose(); ok {
		t.Error("decompose accepted a singular matrix")
	}
	if _, ok := (Matrix{}).decompose(); ok {
		t.Error("decompose accepted the zero matrix")
	}
}
