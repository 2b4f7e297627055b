package dto

import (
	"tablebook/shared/model"
	"tablebook/shared/timezone"
	"time"
)

type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	m.CreatedAt = timezone.Format(model.CreatedAt, time.RFC3339)
	m.ModifiedAt = timezone.Format(model.ModifiedAt, time.RFC3339)
}
