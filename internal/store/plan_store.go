package store

import (
	"context"
	"fmt"

	"github.com/pocketbase/pocketbase/core"

	"academy-system/internal/status"
	"academy-system/models"
)

const plansCollection = "plans"

// PlanStore reads the seeded plan reference data. Plans are immutable at
// runtime; extension math uses the fixed set in models, this store only
// serves the catalog to clients.
type PlanStore struct {
	app core.App
}

func NewPlanStore(app core.App) *PlanStore {
	return &PlanStore{app: app}
}

func (s *PlanStore) List(ctx context.Context) ([]models.Plan, error) {
	query := s.app.RecordQuery(plansCollection).OrderBy("months ASC")

	records := []*core.Record{}
	if err := query.All(&records); err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}

	plans := make([]models.Plan, 0, len(records))
	for _, record := range records {
		plans = append(plans, planFromRecord(record))
	}
	return plans, nil
}

func (s *PlanStore) Get(ctx context.Context, planID string) (models.Plan, error) {
	record, err := s.app.FindFirstRecordByData(plansCollection, "plan_id", planID)
	if err != nil {
		return models.Plan{}, fmt.Errorf("plan %q: %w", planID, status.ErrNotFound)
	}
	return planFromRecord(record), nil
}

func planFromRecord(record *core.Record) models.Plan {
	return models.Plan{
		ID:      record.GetString("plan_id"),
		Label:   record.GetString("label"),
		Price:   record.GetFloat("price"),
		Months:  record.GetInt("months"),
		Billing: record.GetString("billing"),
	}
}
