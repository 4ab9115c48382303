package loader

import (
	"fmt"
)

// ShareError - отказ одного воркера. Inserted хранит количество
// строк, успешно записанных до отказа: они остаются в таблице
// и учитываются в итоговом отчете.
type ShareError struct {
	WorkerID int
	Inserted int64
	Cause    error
}

func (e *ShareError) Error() string {
	return fmt.Sprintf("worker %d failed after %d rows: %v", e.WorkerID, e.Inserted, e.Cause)
}

func (e *ShareError) Unwrap() error {
	return e.Cause
}

// PartialRunError - итоговая ошибка прогона, в котором отказала
// хотя бы одна доля. Несет разбивку по воркерам.
type PartialRunError struct {
	Summary *RunSummary
}

func (e *PartialRunError) Error() string {
	failed := e.Summary.FailedShares()
	return fmt.Sprintf("run failed: %d of %d shares failed, %d rows inserted",
		len(failed), len(e.Summary.Outcomes), e.Summary.TotalInserted)
}
