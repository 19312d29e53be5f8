// internal/metrics/repository_metrics.go
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"northwind-orders/internal/domain"
	"northwind-orders/internal/repository"
)

const (
	resultOK    = "ok"
	resultError = "error"
)

// RepositoryMetrics holds the collectors for order repository calls.
type RepositoryMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewRepositoryMetrics registers the collectors with registerer, or with the
// default registry when registerer is nil.
func NewRepositoryMetrics(registerer prometheus.Registerer) *RepositoryMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &RepositoryMetrics{
		operations: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "northwind_repository_operations_total",
			Help: "Total number of order repository operations by outcome",
		}, []string{"operation", "result"}),
		duration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "northwind_repository_operation_duration_seconds",
			Help:    "Duration of order repository operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"operation"}),
	}
}

func (m *RepositoryMetrics) observe(operation string, start time.Time, err error) {
	result := resultOK
	if err != nil {
		result = resultError
	}
	m.operations.WithLabelValues(operation, result).Inc()
	m.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// InstrumentedOrderRepository records a count and a latency sample for every
// call to the wrapped repository.
type InstrumentedOrderRepository struct {
	next    repository.OrderRepository
	metrics *RepositoryMetrics
}

// NewInstrumentedOrderRepository wraps next with metrics.
func NewInstrumentedOrderRepository(next repository.OrderRepository, metrics *RepositoryMetrics) *InstrumentedOrderRepository {
	return &InstrumentedOrderRepository{next: next, metrics: metrics}
}

var _ repository.OrderRepository = (*InstrumentedOrderRepository)(nil)

func (r *InstrumentedOrderRepository) AddOrder(ctx context.Context, order *domain.Order) (int64, error) {
	start := time.Now()
	id, err := r.next.AddOrder(ctx, order)
	r.metrics.observe("add_order", start, err)
	return id, err
}

func (r *InstrumentedOrderRepository) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	start := time.Now()
	order, err := r.next.GetOrder(ctx, orderID)
	r.metrics.observe("get_order", start, err)
	return order, err
}

func (r *InstrumentedOrderRepository) FindOrder(ctx context.Context, orderID int64) (*domain.Order, bool, error) {
	start := time.Now()
	order, found, err := r.next.FindOrder(ctx, orderID)
	r.metrics.observe("find_order", start, err)
	return order, found, err
}

func (r *InstrumentedOrderRepository) GetOrders(ctx context.Context, skip, count int) ([]domain.Order, error) {
	start := time.Now()
	orders, err := r.next.GetOrders(ctx, skip, count)
	r.metrics.observe("get_orders", start, err)
	return orders, err
}

func (r *InstrumentedOrderRepository) RemoveOrder(ctx context.Context, orderID int64) error {
	start := time.Now()
	err := r.next.RemoveOrder(ctx, orderID)
	r.metrics.observe("remove_order", start, err)
	return err
}

func (r *InstrumentedOrderRepository) UpdateOrder(ctx context.Context, order *domain.Order) error {
	start := time.Now()
	err := r.next.UpdateOrder(ctx, order)
	r.metrics.observe("update_order", start, err)
	return err
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}
