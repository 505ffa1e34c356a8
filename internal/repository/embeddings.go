package repository

import (
	"fmt"

	"github.com/google/uuid"

	"realestate-agent/internal/model"
)

// partitionEmbeddingItems drops items whose property ID is not a UUID,
// reporting each one. A malformed ID sent to PostgreSQL would abort the
// whole batch transaction.
func partitionEmbeddingItems(items []model.EmbeddingItem) ([]model.EmbeddingItem, []string) {
	valid := make([]model.EmbeddingItem, 0, len(items))
	var errs []string
	for _, item := range items {
		if _, err := uuid.Parse(item.PropertyID); err != nil {
			errs = append(errs, fmt.Sprintf("property %s: invalid id", item.PropertyID))
			continue
		}
		valid = append(valid, item)
	}
	return valid, errs
}
