package chat

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/meridiantrade/catalog-services/internal/faq"
	"github.com/meridiantrade/catalog-services/pkg/metrics"
)

const handOff = "Let me connect you with our team."

func newResponder(t *testing.T) *Responder {
	t.Helper()
	faqs := faq.NewMemoryService()
	require.True(t, faqs.EnsureSeeded(context.Background()))
	return NewResponder(faqs, NewClassifier(newCatalog(t)), handOff)
}

func TestRespond_FAQFirst(t *testing.T) {
	r := newResponder(t)
	before := testutil.ToFloat64(metrics.ChatReplies.WithLabelValues("faq"))

	// also a category-listing trigger, but the FAQ wins
	reply := r.Respond(context.Background(), "What do you offer?")
	require.Equal(t, SourceFAQ, reply.Source)
	require.NotEmpty(t, reply.FAQID)
	require.Equal(t, before+1, testutil.ToFloat64(metrics.ChatReplies.WithLabelValues("faq")))
}

func TestRespond_ProductQuery(t *testing.T) {
	reply := newResponder(t).Respond(context.Background(), "tell me about rice")
	require.Equal(t, SourceProduct, reply.Source)
	require.Contains(t, reply.Text, "1121 Basmati Rice")
	require.Empty(t, reply.FAQID)
}

func TestRespond_Fallback(t *testing.T) {
	r := newResponder(t)
	for _, msg := range []string{"hello there", "", "   "} {
		reply := r.Respond(context.Background(), msg)
		require.Equal(t, SourceFallback, reply.Source, msg)
		require.Equal(t, handOff, reply.Text)
	}
}

func TestRespond_NoStores(t *testing.T) {
	r := NewResponder(nil, nil, handOff)
	reply := r.Respond(context.Background(), "what categories do you have")
	require.Equal(t, SourceFallback, reply.Source)
}

func TestRespond_BrokenCatalog(t *testing.T) {
	r := NewResponder(faq.NewMemoryService(), NewClassifier(brokenCatalog{}), handOff)
	reply := r.Respond(context.Background(), "show me your rice")
	require.Equal(t, SourceProduct, reply.Source)
	require.Equal(t, StoreApology, reply.Text)
}
