package migrations

import (
	"time"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"

	"academy-system/models"
)

// Seed data for the class schedule and the subscription plans. The schedule
// cycles four base classes over consecutive days, 200 occurrences total.
func init() {
	m.Register(func(app core.App) error {
		plansCol, err := app.FindCollectionByNameOrId("plans")
		if err != nil {
			return err
		}
		for _, plan := range models.Plans {
			record := core.NewRecord(plansCol)
			record.Set("plan_id", plan.ID)
			record.Set("label", plan.Label)
			record.Set("price", plan.Price)
			record.Set("months", plan.Months)
			record.Set("billing", plan.Billing)
			if err := app.Save(record); err != nil {
				return err
			}
		}

		classesCol, err := app.FindCollectionByNameOrId("scheduled_classes")
		if err != nil {
			return err
		}

		type baseClass struct {
			title          string
			teacher        string
			hour, minute   int
			spotsAvailable int
			spotsTotal     int
			color          string
		}
		baseClasses := []baseClass{
			{"BJJ - Gi", "Matteo", 7, 0, 8, 15, "#7EC2B9"},
			{"BJJ - No-Gi", "Matteo", 9, 30, 12, 15, "#C7E76D"},
			{"Yoga Flow", "Maria", 8, 0, 5, 10, "#9DC4E5"},
			{"Strength & Conditioning", "John", 10, 0, 15, 20, "#F7D47B"},
		}

		day := time.Date(2025, time.November, 26, 0, 0, 0, 0, time.UTC)
		classID := 9
		for i := 0; i < 200; i++ {
			b := baseClasses[i%len(baseClasses)]
			start := time.Date(day.Year(), day.Month(), day.Day(), b.hour, b.minute, 0, 0, time.UTC)

			record := core.NewRecord(classesCol)
			record.Set("class_id", classID)
			record.Set("title", b.title)
			record.Set("teacher", b.teacher)
			record.Set("start", start.Format(time.RFC3339))
			record.Set("end", start.Add(time.Hour).Format(time.RFC3339))
			record.Set("spots_booked", b.spotsTotal-b.spotsAvailable)
			record.Set("spots_total", b.spotsTotal)
			record.Set("background_color", b.color)
			if err := app.Save(record); err != nil {
				return err
			}

			classID++
			if (i+1)%len(baseClasses) == 0 {
				day = day.AddDate(0, 0, 1)
			}
		}

		return nil
	}, func(app core.App) error {
		if _, err := app.DB().NewQuery("DELETE FROM scheduled_classes").Execute(); err != nil {
			return err
		}
		_, err := app.DB().NewQuery("DELETE FROM plans").Execute()
		return err
	})
}
