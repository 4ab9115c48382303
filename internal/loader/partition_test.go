package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionExactSum(t *testing.T) {
	tests := []struct {
		name    string
		total   int64
		workers int
	}{
		{"even split", 100, 4},
		{"remainder", 17, 6},
		{"single worker", 1_000_000, 1},
		{"more workers than rows", 3, 10},
		{"zero total", 0, 4},
		{"large", 17_000_000, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := Partition(tt.total, tt.workers)
			require.NoError(t, err)
			require.Len(t, shares, tt.workers)

			var sum int64
			for i, s := range shares {
				assert.Equal(t, i, s.WorkerID)
				assert.GreaterOrEqual(t, s.AssignedCount, int64(0))
				sum += s.AssignedCount
			}
			assert.Equal(t, tt.total, sum)
		})
	}
}

func TestPartitionRemainderGoesToLowestIDs(t *testing.T) {
	shares, err := Partition(17, 6)
	require.NoError(t, err)

	var counts []int64
	for _, s := range shares {
		counts = append(counts, s.AssignedCount)
	}
	assert.Equal(t, []int64{3, 3, 3, 3, 3, 2}, counts)
}

func TestPartitionNeverDiffersByMoreThanOne(t *testing.T) {
	shares, err := Partition(1_000_003, 7)
	require.NoError(t, err)

	min, max := shares[0].AssignedCount, shares[0].AssignedCount
	for _, s := range shares {
		if s.AssignedCount < min {
			min = s.AssignedCount
		}
		if s.AssignedCount > max {
			max = s.AssignedCount
		}
	}
	assert.LessOrEqual(t, max-min, int64(1))
}

func TestPartitionRejectsInvalidInput(t *testing.T) {
	_, err := Partition(10, 0)
	assert.Error(t, err)

	_, err = Partition(10, -1)
	assert.Error(t, err)

	_, err = Partition(-1, 4)
	assert.Error(t, err)
}
