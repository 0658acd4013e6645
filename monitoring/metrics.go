package monitoring

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"academy-system/models"
)

var (
	bookingOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_operations_total",
			Help: "Total booking operations",
		},
		[]string{"operation", "result"},
	)

	checkoutOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_operations_total",
			Help: "Total checkout operations",
		},
		[]string{"operation", "result"},
	)

	subscriptionExtensions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subscription_extensions_total",
			Help: "Total subscription extensions per plan",
		},
		[]string{"plan_id"},
	)

	classSpotsBooked = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "class_spots_booked",
			Help: "Current booked spots per class occurrence",
		},
		[]string{"class_id"},
	)

	classSpotsTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "class_spots_total",
			Help: "Seat capacity per class occurrence",
		},
		[]string{"class_id"},
	)
)

// ClassLister is the slice of the class store the occupancy collector needs.
type ClassLister interface {
	List(ctx context.Context, limit int) ([]models.ClassOccurrence, error)
}

type Monitor struct {
	classes ClassLister
}

func NewMonitor(classes ClassLister) *Monitor {
	return &Monitor{classes: classes}
}

func (m *Monitor) TrackBookingOperation(operation, result string) {
	bookingOperations.WithLabelValues(operation, result).Inc()
}

func (m *Monitor) TrackCheckoutOperation(operation, result string) {
	checkoutOperations.WithLabelValues(operation, result).Inc()
}

func (m *Monitor) TrackSubscriptionExtension(planID string) {
	subscriptionExtensions.WithLabelValues(planID).Inc()
}

func (m *Monitor) SetClassOccupancy(classID, booked, total int) {
	label := strconv.Itoa(classID)
	classSpotsBooked.WithLabelValues(label).Set(float64(booked))
	classSpotsTotal.WithLabelValues(label).Set(float64(total))
}

// Run refreshes the occupancy gauges from the store until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.collectOccupancy(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (m *Monitor) collectOccupancy(ctx context.Context) {
	classes, err := m.classes.List(ctx, 0)
	if err != nil {
		slog.Error("occupancy collection failed", "error", err)
		return
	}
	for _, class := range classes {
		m.SetClassOccupancy(class.ID, class.SpotsBooked, class.SpotsTotal)
	}
}
