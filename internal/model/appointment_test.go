package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	// Existing interval is 10:00-12:00 in every case.
	tests := []struct {
		name             string
		newStart, newEnd time.Time
		want             bool
	}{
		{name: "partial overlap on the left", newStart: at(0), newEnd: at(2), want: true},
		{name: "partial overlap on the right", newStart: at(2), newEnd: at(4), want: true},
		{name: "new contains existing", newStart: at(0), newEnd: at(4), want: true},
		{name: "existing contains new", newStart: at(1).Add(30 * time.Minute), newEnd: at(2).Add(30 * time.Minute), want: true},
		{name: "identical intervals", newStart: at(1), newEnd: at(3), want: true},
		{name: "new ends where existing starts", newStart: at(0), newEnd: at(1), want: false},
		{name: "new starts where existing ends", newStart: at(3), newEnd: at(4), want: false},
		{name: "disjoint before", newStart: at(-3), newEnd: at(-1), want: false},
		{name: "disjoint after", newStart: at(5), newEnd: at(7), want: false},
	}

	existingStart, existingEnd := at(1), at(3)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(existingStart, existingEnd, tt.newStart, tt.newEnd))
			// The predicate is symmetric in its two intervals.
			assert.Equal(t, tt.want, Overlaps(tt.newStart, tt.newEnd, existingStart, existingEnd))
		})
	}
}
