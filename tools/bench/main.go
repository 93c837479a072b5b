package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"
)

// Feed load generator: hammers the public endpoints with configurable
// concurrency and reports latency and QPS.

type APITestStats struct {
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	AverageLatency     time.Duration
	MaxLatency         time.Duration
	MinLatency         time.Duration
	mu                 sync.Mutex
}

func (s *APITestStats) Add(success bool, latency time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TotalRequests++
	if success {
		s.SuccessfulRequests++
		if s.AverageLatency == 0 {
			s.AverageLatency = latency
			s.MaxLatency = latency
			s.MinLatency = latency
		} else {
			s.AverageLatency = (s.AverageLatency + latency) / 2
			if latency > s.MaxLatency {
				s.MaxLatency = latency
			}
			if latency < s.MinLatency {
				s.MinLatency = latency
			}
		}
	} else {
		s.FailedRequests++
	}
}

func hit(url string, stats *APITestStats) {
	start := time.Now()
	client := &http.Client{Timeout: 8 * time.Second}
	resp, err := client.Get(url)
	lat := time.Since(start)
	if err != nil {
		stats.Add(false, lat)
		return
	}
	resp.Body.Close()
	stats.Add(resp.StatusCode == 200, lat)
}

func runHTTPBench(base string, concurrency, perGoroutine int) {
	fmt.Println("\n=== HTTP bench start ===")
	fmt.Printf("target: %s concurrency: %d requests/worker: %d\n", base, concurrency, perGoroutine)

	stats := &APITestStats{}
	var wg sync.WaitGroup
	start := time.Now()

	endpoints := []string{
		"/",
		"/health",
		"/api/v1/listings",
		"/api/v1/listings?minPrice=5000&maxPrice=10000",
		"/api/v1/listings?category=PG&wifi=true",
		"/api/v1/colleges",
	}
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				url := base + endpoints[(id+j)%len(endpoints)]
				hit(url, stats)
				time.Sleep(5 * time.Millisecond)
			}
		}(i)
	}

	wg.Wait()

	took := time.Since(start)
	fmt.Println("\n=== results ===")
	fmt.Printf("elapsed: %v\n", took)
	fmt.Printf("total: %d success: %d failed: %d\n", stats.TotalRequests, stats.SuccessfulRequests, stats.FailedRequests)
	fmt.Printf("latency avg: %v max: %v min: %v\n", stats.AverageLatency, stats.MaxLatency, stats.MinLatency)
	if took > 0 {
		fmt.Printf("QPS: %.2f\n", float64(stats.SuccessfulRequests)/took.Seconds())
	}
	if stats.TotalRequests > 0 {
		fmt.Printf("success rate: %.2f%%\n", float64(stats.SuccessfulRequests)/float64(stats.TotalRequests)*100)
	}
}

func main() {
	concurrency := 5
	perGoroutine := 10

	if len(os.Args) > 1 {
		if val, err := strconv.Atoi(os.Args[1]); err == nil {
			concurrency = val
		}
	}
	if len(os.Args) > 2 {
		if val, err := strconv.Atoi(os.Args[2]); err == nil {
			perGoroutine = val
		}
	}

	baseURL := "http://localhost:8080"
	if v := os.Getenv("BENCH_BASE_URL"); v != "" {
		baseURL = v
	}

	fmt.Printf("start: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	runHTTPBench(baseURL, concurrency, perGoroutine)
	fmt.Println("\n=== done ===")
}
