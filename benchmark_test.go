package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/FACorreiaa/horus-ai/internal/recommender"
)

func BenchmarkRecommendationRequest(b *testing.B) {
	h, _ := newTestApp(b, 0)
	body := []byte(`{"location":"Luxor","interests":["temples","pharaohs"],"liked_places":["Valley of the Kings"],"top_n":5}`)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", bytes.NewReader(body))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", w.Code)
		}
	}
}

func BenchmarkConcurrentRecommendations(b *testing.B) {
	h, _ := newTestApp(b, 0)

	b.ResetTimer()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations?interests=pyramids,museums&top_n=3", nil)
			h.ServeHTTP(httptest.NewRecorder(), req)
		}
	})
}

func BenchmarkCatalogRebuild(b *testing.B) {
	_, svc := newTestApp(b, 0)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.BuildCatalog(ctx); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExplanation(b *testing.B) {
	scored := make([]recommender.Scored, 10)
	for i := range scored {
		scored[i] = recommender.Scored{
			Attraction: recommender.Attraction{Name: "Karnak Temple", City: "Luxor", Category: "Temple", Description: "A vast temple complex."},
			Scores:     recommender.ScoreComponents{Final: 0.5 + float64(i)/100},
		}
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = recommender.FormatExplanation(scored)
	}
}
