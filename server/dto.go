package server

import (
	"github.com/adviserhq/adviser/llm"
	"github.com/adviserhq/adviser/monitor"
	"github.com/adviserhq/adviser/server/store"
)

type HealthResponse struct {
	Status string `json:"status"`
	Ready  bool   `json:"ready"`
	Chunks int    `json:"chunks"`
}

type SearchRequest struct {
	Query string `json:"query"`
}

type MatchInfo struct {
	ID    string  `json:"id"`
	Title string  `json:"title,omitempty"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

type SearchResponse struct {
	RequestID string      `json:"request_id"`
	Joined    string      `json:"joined"`
	Count     int         `json:"count"`
	Matches   []MatchInfo `json:"matches"`
	ElapsedMs int64       `json:"elapsed_ms"`
}

type ReportRequest struct {
	Question string `json:"question"`
}

type ReportResponse struct {
	RequestID string    `json:"request_id"`
	Body      string    `json:"body"`
	Sources   int       `json:"sources"`
	Usage     llm.Usage `json:"usage"`
	ElapsedMs int64     `json:"elapsed_ms"`
}

type MetricsSummaryResponse struct {
	Search monitor.Summary `json:"search"`
	Traces store.Summary   `json:"traces"`
}

type TraceListResponse struct {
	Traces []store.QueryTrace `json:"traces"`
}
