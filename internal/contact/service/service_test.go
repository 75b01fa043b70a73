package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/meridiantrade/catalog-services/internal/config"
	"github.com/meridiantrade/catalog-services/internal/contact"
	"github.com/meridiantrade/catalog-services/pkg/metrics"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []*contact.Message
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, m *contact.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m)
	return nil
}

var req = contact.Request{Name: " Priya ", Email: "priya@buyer.example", Company: "Acme Foods", Message: "Need 2 containers of 1121 basmati."}

func TestSubmit_Emailed(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewMemoryService(mailer)
	before := testutil.ToFloat64(metrics.ContactMessages.WithLabelValues("emailed"))

	m, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	require.True(t, m.Emailed)
	require.Equal(t, "Priya", m.Name)
	require.Len(t, mailer.sent, 1)
	require.Equal(t, before+1, testutil.ToFloat64(metrics.ContactMessages.WithLabelValues("emailed")))

	list, err := svc.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.True(t, list[0].Emailed)
}

func TestSubmit_MailFailureKeepsMessage(t *testing.T) {
	svc := NewMemoryService(&fakeMailer{err: errors.New("connection refused")})

	m, err := svc.Submit(context.Background(), req)
	require.ErrorIs(t, err, ErrDelivery)
	require.NotNil(t, m)
	require.NotEmpty(t, m.ID)

	list, err := svc.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.False(t, list[0].Emailed)
}

func TestSubmit_NoMailer(t *testing.T) {
	svc := NewMemoryService(NewSMTPMailer(config.MailConfig{}))
	m, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	require.False(t, m.Emailed)
}

func TestBuildMessage(t *testing.T) {
	m := &contact.Message{Name: "Priya", Email: "priya@buyer.example", Phone: "+91 1234", Message: "Hello", CreatedAt: time.Now()}
	msg, err := BuildMessage("web@meridiantrade.example", "sales@meridiantrade.example", m)
	require.NoError(t, err)

	var b strings.Builder
	_, err = msg.WriteTo(&b)
	require.NoError(t, err)
	out := b.String()
	require.Contains(t, out, "Subject: [Contact] Website enquiry - Priya")
	require.Contains(t, out, "Reply-To: <priya@buyer.example>")
	require.Contains(t, out, "Phone: +91 1234")

	_, err = BuildMessage("not an address", "sales@meridiantrade.example", m)
	require.Error(t, err)
}
