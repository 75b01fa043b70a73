package chat

import (
	"context"
	"strings"

	"github.com/meridiantrade/catalog-services/internal/catalog"
	"github.com/meridiantrade/catalog-services/pkg/metrics"
)

// Source names the stage that produced a reply.
type Source string

const (
	SourceFAQ      Source = "faq"
	SourceProduct  Source = "product"
	SourceFallback Source = "fallback"
)

// FAQMatcher is satisfied by *faq.Service.
type FAQMatcher interface {
	FindMatchingFAQ(ctx context.Context, query string) *catalog.FAQ
}

// Reply is what the chat widget receives.
type Reply struct {
	Text   string `json:"reply"`
	Source Source `json:"source"`
	FAQID  string `json:"faqId,omitempty"`
}

// Responder answers chat messages: a FAQ match first, then a catalog answer,
// then the hand-off fallback.
type Responder struct {
	faqs       FAQMatcher
	classifier *Classifier
	fallback   string
}

func NewResponder(faqs FAQMatcher, classifier *Classifier, fallback string) *Responder {
	return &Responder{faqs: faqs, classifier: classifier, fallback: fallback}
}

func (r *Responder) Respond(ctx context.Context, message string) Reply {
	reply := r.respond(ctx, strings.TrimSpace(message))
	metrics.ChatReplies.WithLabelValues(string(reply.Source)).Inc()
	return reply
}

func (r *Responder) respond(ctx context.Context, message string) Reply {
	if message == "" {
		return Reply{Text: r.fallback, Source: SourceFallback}
	}
	if r.faqs != nil {
		if f := r.faqs.FindMatchingFAQ(ctx, message); f != nil {
			return Reply{Text: f.Answer, Source: SourceFAQ, FAQID: f.ID}
		}
	}
	if r.classifier != nil {
		if text, ok := r.classifier.ProcessProductQuery(ctx, message); ok {
			return Reply{Text: text, Source: SourceProduct}
		}
	}
	return Reply{Text: r.fallback, Source: SourceFallback}
}
