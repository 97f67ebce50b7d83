package payslip

import "testing"

func TestStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"pending to released", StatusPending, StatusReleased, true},
		{"pending to needs recalculation", StatusPending, StatusNeedsRecalculation, true},
		{"pending to pending", StatusPending, StatusPending, false},
		{"released to needs recalculation", StatusReleased, StatusNeedsRecalculation, true},
		{"released back to pending", StatusReleased, StatusPending, false},
		{"released to released", StatusReleased, StatusReleased, false},
		{"needs recalculation to pending", StatusNeedsRecalculation, StatusPending, true},
		{"needs recalculation straight to released", StatusNeedsRecalculation, StatusReleased, false},
		{"unknown status", Status("draft"), StatusReleased, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo(%q -> %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}
