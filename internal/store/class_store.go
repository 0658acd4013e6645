package store

import (
	"context"
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"academy-system/internal/status"
	"academy-system/models"
)

const classesCollection = "scheduled_classes"

// ClassStore reads and mutates scheduled class occurrences. Seat counters
// are only ever changed through AdjustSpots, which pushes the bounds check
// into a single conditional UPDATE so concurrent bookings cannot both take
// the last seat.
type ClassStore struct {
	app core.App
}

func NewClassStore(app core.App) *ClassStore {
	return &ClassStore{app: app}
}

func (s *ClassStore) Get(ctx context.Context, classID int) (*models.ClassOccurrence, error) {
	record, err := s.app.FindFirstRecordByData(classesCollection, "class_id", classID)
	if err != nil {
		return nil, fmt.Errorf("class %d: %w", classID, status.ErrNotFound)
	}
	return classFromRecord(record), nil
}

// List returns occurrences ordered by start time ascending. A limit <= 0
// means no limit. Each call re-queries the collection.
func (s *ClassStore) List(ctx context.Context, limit int) ([]models.ClassOccurrence, error) {
	query := s.app.RecordQuery(classesCollection).OrderBy("start ASC")
	if limit > 0 {
		query.Limit(int64(limit))
	}

	records := []*core.Record{}
	if err := query.All(&records); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}

	classes := make([]models.ClassOccurrence, 0, len(records))
	for _, record := range records {
		classes = append(classes, *classFromRecord(record))
	}
	return classes, nil
}

// AdjustSpots applies delta to spots_booked, enforcing
// 0 <= spots_booked <= spots_total inside the UPDATE itself. This is the
// serialization point for concurrent bookings against the same occurrence.
func (s *ClassStore) AdjustSpots(ctx context.Context, classID, delta int) (*models.ClassOccurrence, error) {
	res, err := s.app.DB().NewQuery(
		"UPDATE " + classesCollection + " SET spots_booked = spots_booked + {:delta} " +
			"WHERE class_id = {:classId} " +
			"AND spots_booked + {:delta} >= 0 " +
			"AND spots_booked + {:delta} <= spots_total",
	).Bind(dbx.Params{"delta": delta, "classId": classID}).Execute()
	if err != nil {
		return nil, fmt.Errorf("adjust spots for class %d: %w", classID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		current, err := s.Get(ctx, classID)
		if err != nil {
			return nil, err
		}
		if _, err := models.ApplySpotsDelta(current.SpotsBooked, current.SpotsTotal, delta); err != nil {
			return nil, err
		}
		// The bounds held on re-read, so the conditional update lost a race
		// with a concurrent writer that has since freed or taken a seat.
		return nil, fmt.Errorf("adjust spots for class %d: concurrent update, retry", classID)
	}

	return s.Get(ctx, classID)
}

func classFromRecord(record *core.Record) *models.ClassOccurrence {
	return &models.ClassOccurrence{
		ID:              record.GetInt("class_id"),
		Title:           record.GetString("title"),
		Teacher:         record.GetString("teacher"),
		Start:           record.GetDateTime("start").Time(),
		End:             record.GetDateTime("end").Time(),
		SpotsBooked:     record.GetInt("spots_booked"),
		SpotsTotal:      record.GetInt("spots_total"),
		BackgroundColor: record.GetString("background_color"),
	}
}
