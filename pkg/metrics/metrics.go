package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "catalog", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "catalog", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	// ChatReplies counts chat answers by the stage that produced them (faq, product, fallback).
	ChatReplies = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "catalog", Name: "chat_replies_total", Help: "Chat replies by answering stage."},
		[]string{"source"},
	)
	StoreErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "catalog", Name: "store_errors_total", Help: "Document store failures swallowed at the engine boundary, by operation."},
		[]string{"operation"},
	)
	ContactMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "catalog", Name: "contact_messages_total", Help: "Contact form submissions by delivery outcome."},
		[]string{"outcome"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(ChatReplies)
	reg.MustRegister(StoreErrors)
	reg.MustRegister(ContactMessages)
}
