// Package metrics содержит счетчики Prometheus сервиса.
//
// Ошибки зеркалирования каталога в поисковый индекс не прерывают запрос,
// поэтому единственный способ их заметить — логи и этот счетчик.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SearchIndexErrors считает неудачные best-effort операции с поисковым
// индексом, по одной метке op на операцию: index, update, delete.
var SearchIndexErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "movie_catalog",
		Name:      "search_index_errors_total",
		Help:      "Number of failed best-effort search index operations.",
	},
	[]string{"op"},
)
