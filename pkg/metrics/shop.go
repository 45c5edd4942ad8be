package metrics

import "github.com/prometheus/client_golang/prometheus"

// ShopMetrics counts domain events.
type ShopMetrics struct {
	orders    prometheus.Counter
	itemsSold *prometheus.CounterVec
	resets    prometheus.Counter
}

// NewShopMetrics registers the shop counters on the provided registerer.
func NewShopMetrics(reg prometheus.Registerer) *ShopMetrics {
	if reg == nil {
		return &ShopMetrics{}
	}
	orders := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders placed successfully.",
	})
	itemsSold := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_items_sold_total",
		Help: "Units sold per product.",
	}, []string{"product_id"})
	resets := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "store_resets_total",
		Help: "Successful store resets.",
	})
	reg.MustRegister(orders, itemsSold, resets)
	return &ShopMetrics{orders: orders, itemsSold: itemsSold, resets: resets}
}

// OrderCreated counts an order and the units of each product it took.
func (m *ShopMetrics) OrderCreated(units map[string]int) {
	if m == nil || m.orders == nil {
		return
	}
	m.orders.Inc()
	for productID, qty := range units {
		m.itemsSold.WithLabelValues(normalizeLabel(productID)).Add(float64(qty))
	}
}

func (m *ShopMetrics) StoreReset() {
	if m == nil || m.resets == nil {
		return
	}
	m.resets.Inc()
}
