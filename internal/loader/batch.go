package loader

// BatchBuilder собирает строки генератора в батчи фиксированного
// размера. Последний батч может быть меньше batchSize.
type BatchBuilder struct {
	source    Synthesizer
	batchSize int
}

// NewBatchBuilder создает сборщик батчей поверх генератора.
func NewBatchBuilder(source Synthesizer, batchSize int) *BatchBuilder {
	return &BatchBuilder{
		source:    source,
		batchSize: batchSize,
	}
}

// Next возвращает очередной батч размером min(batchSize, remaining)
// или nil, когда строить больше нечего. Пустой батч не возвращается.
func (b *BatchBuilder) Next(remaining int64) [][]any {
	if remaining <= 0 {
		return nil
	}

	size := int64(b.batchSize)
	if remaining < size {
		size = remaining
	}

	rows := make([][]any, size)
	for i := range rows {
		rows[i] = b.source.NextRow()
	}

	return rows
}
