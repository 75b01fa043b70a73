package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/meridiantrade/catalog-services/internal/catalog"
	"github.com/meridiantrade/catalog-services/internal/catalog/service"
	"github.com/meridiantrade/catalog-services/internal/chat"
	"github.com/meridiantrade/catalog-services/internal/faq"
)

type brokenFAQs struct{}

func (brokenFAQs) GetAllFAQs(ctx context.Context) ([]*catalog.FAQ, error) {
	return nil, errors.New("down")
}

func setup(t *testing.T) *gin.Engine {
	t.Helper()
	ctx := context.Background()
	faqs := faq.NewMemoryService()
	require.True(t, faqs.EnsureSeeded(ctx))
	svc := service.NewMemoryService()
	_, err := svc.CreateProduct(ctx, &catalog.Product{Name: "Hulled Sesame Seeds", Category: "seeds"})
	require.NoError(t, err)

	g := gin.New()
	RegisterChatRoutes(g, chat.NewResponder(faqs, chat.NewClassifier(svc), "fallback"), faqs)
	return g
}

func send(g *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat/message", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)
	return w
}

func TestChatMessage(t *testing.T) {
	g := setup(t)
	cases := []struct {
		msg    string
		source chat.Source
		text   string
	}{
		{"What products do you offer?", chat.SourceFAQ, ""},
		{"do you have seeds", chat.SourceProduct, "Hulled Sesame Seeds"},
		{"good morning", chat.SourceFallback, "fallback"},
	}
	for _, tc := range cases {
		body, _ := json.Marshal(map[string]string{"message": tc.msg})
		w := send(g, string(body))
		require.Equal(t, http.StatusOK, w.Code, tc.msg)
		var reply chat.Reply
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
		require.Equal(t, tc.source, reply.Source, tc.msg)
		require.Contains(t, reply.Text, tc.text)
	}
}

func TestChatMessage_BadRequest(t *testing.T) {
	g := setup(t)
	require.Equal(t, http.StatusBadRequest, send(g, `{}`).Code)
	require.Equal(t, http.StatusBadRequest, send(g, `{"message":"`+strings.Repeat("x", 1001)+`"}`).Code)
}

func TestChatFAQs(t *testing.T) {
	g := setup(t)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/chat/faqs", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 5)
	require.Equal(t, "What products do you offer?", list[0]["question"])

	broken := gin.New()
	RegisterChatRoutes(broken, chat.NewResponder(nil, nil, "x"), brokenFAQs{})
	w = httptest.NewRecorder()
	broken.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/chat/faqs", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())
}
