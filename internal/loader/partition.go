package loader

import "fmt"

// Partition детерминированно делит общий бюджет между воркерами.
// Остаток (total mod workers) распределяется по одной строке
// воркерам 0..remainder-1. Сумма долей всегда равна total.
func Partition(total int64, workers int) ([]WorkerShare, error) {
	if total < 0 {
		return nil, fmt.Errorf("total records must be non-negative, got %d", total)
	}
	if workers <= 0 {
		return nil, fmt.Errorf("worker count must be positive, got %d", workers)
	}

	base := total / int64(workers)
	remainder := total % int64(workers)

	shares := make([]WorkerShare, workers)
	for i := range shares {
		assigned := base
		if int64(i) < remainder {
			assigned++
		}
		shares[i] = WorkerShare{
			WorkerID:      i,
			AssignedCount: assigned,
		}
	}

	return shares, nil
}
