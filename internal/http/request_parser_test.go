package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func parserFor(body, contentType string) *RequestBodyParser {
	req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return NewRequestBodyParser(httptest.NewRecorder(), req)
}

func TestRequestBodyParser(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		ctype string
		key   string
		want  string
	}{
		{"json string", `{"text":"  read book "}`, "application/json", "text", "read book"},
		{"json number kept exact", `{"amount":0.1}`, "application/json", "amount", "0.1"},
		{"json large number", `{"amount":12345678.905}`, "", "amount", "12345678.905"},
		{"json exponent amount", `{"amount":1e2}`, "application/json", "amount", "100"},
		{"json exponent with fraction", `{"amount":1.25E1}`, "application/json", "amount", "12.5"},
		{"json missing key", `{"text":"x"}`, "application/json", "amount", ""},
		{"json object value ignored", `{"text":{"a":1}}`, "application/json", "text", ""},
		{"form", "amount=12%2C50&type=expense", "application/x-www-form-urlencoded", "amount", "12,50"},
		{"control characters stripped", "text=a%00b%07c", "application/x-www-form-urlencoded", "text", "abc"},
		{"empty body", "", "", "text", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parserFor(tt.body, tt.ctype)
			if err := p.Parse(); err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got := p.Get(tt.key); got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestRequestBodyParserErrors(t *testing.T) {
	if err := parserFor(`{"text":`, "application/json").Parse(); err == nil {
		t.Fatal("expected error for truncated json")
	}
	if err := parserFor(`["a"]`, "application/json").Parse(); err == nil {
		t.Fatal("expected error for a json array")
	}

	big := `{"text":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	if err := parserFor(big, "application/json").Parse(); err == nil {
		t.Fatal("expected error for oversized body")
	}
}

func TestParseLimit(t *testing.T) {
	cases := map[string]struct {
		want    int
		wantErr bool
	}{
		"":    {-1, false},
		"5":   {5, false},
		"0":   {0, true},
		"-2":  {0, true},
		"abc": {0, true},
	}
	for raw, tc := range cases {
		got, err := parseLimit(url.Values{"limit": {raw}})
		if (err != nil) != tc.wantErr || (!tc.wantErr && got != tc.want) {
			t.Errorf("parseLimit(%q) = %d, %v", raw, got, err)
		}
	}
}

func TestParseConfirm(t *testing.T) {
	for raw, want := range map[string]bool{"true": true, "1": true, "": false, "no": false, "false": false} {
		if got := parseConfirm(url.Values{"confirm": {raw}}); got != want {
			t.Errorf("parseConfirm(%q) = %v", raw, got)
		}
	}
}

func TestViewKey(t *testing.T) {
	day := time.Date(2025, 6, 2, 23, 59, 0, 0, time.UTC)
	if got := viewKey(day, 7); got != "2025-06-02:v7" {
		t.Fatalf("viewKey = %q", got)
	}
	if viewKey(day, 7) == viewKey(day.Add(2*time.Minute), 7) {
		t.Fatal("different days must not share a key")
	}
}
