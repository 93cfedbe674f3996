package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/adviserhq/adviser/server/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, HealthResponse{
		Status: "ok",
		Ready:  s.service.Ready(),
		Chunks: s.service.Len(),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	requestID := uuid.NewString()
	start := time.Now()
	rctx := s.service.Retrieve(r.Context(), req.Query)
	elapsed := time.Since(start)

	s.recordTrace(r.Context(), store.QueryTrace{
		TraceID:   requestID,
		Question:  req.Query,
		Operation: "search",
		Outcome:   string(rctx.Outcome),
		Matches:   rctx.Count,
		ElapsedMs: elapsed.Milliseconds(),
		Timestamp: time.Now().Unix(),
	})

	matches := make([]MatchInfo, len(rctx.Matches))
	for i, m := range rctx.Matches {
		matches[i] = MatchInfo{
			ID:    m.Chunk.ID,
			Title: m.Chunk.Title,
			Text:  m.Chunk.Text,
			Score: m.Score,
		}
	}

	writeJSON(w, SearchResponse{
		RequestID: requestID,
		Joined:    rctx.Joined,
		Count:     rctx.Count,
		Matches:   matches,
		ElapsedMs: elapsed.Milliseconds(),
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if s.assembler == nil {
		http.Error(w, "report assembly not configured", http.StatusServiceUnavailable)
		return
	}

	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	requestID := uuid.NewString()
	start := time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 120*time.Second)
	defer cancel()

	rctx := s.service.Retrieve(ctx, req.Question)
	rep, err := s.assembler.Assemble(ctx, req.Question, rctx)
	elapsed := time.Since(start)

	outcome := string(rctx.Outcome)
	if err != nil {
		outcome = "degraded"
	}
	s.recordTrace(r.Context(), store.QueryTrace{
		TraceID:   requestID,
		Question:  req.Question,
		Operation: "report",
		Outcome:   outcome,
		Matches:   rctx.Count,
		ElapsedMs: elapsed.Milliseconds(),
		Timestamp: time.Now().Unix(),
	})

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, ReportResponse{
		RequestID: requestID,
		Body:      rep.Body,
		Sources:   rep.Sources,
		Usage:     rep.Usage,
		ElapsedMs: elapsed.Milliseconds(),
	})
}

func (s *Server) handleMetricsSummary(w http.ResponseWriter, r *http.Request) {
	traceSummary, err := s.traces.Summary(r.Context())
	if err != nil {
		log.Printf("[server] trace summary failed: %v", err)
	}

	writeJSON(w, MetricsSummaryResponse{
		Search: s.metrics.Snapshot(),
		Traces: traceSummary,
	})
}

func (s *Server) handleTraceList(w http.ResponseWriter, r *http.Request) {
	traces, err := s.traces.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, TraceListResponse{Traces: traces})
}

func (s *Server) recordTrace(ctx context.Context, t store.QueryTrace) {
	if err := s.traces.Add(ctx, t); err != nil {
		log.Printf("[server] record trace: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
