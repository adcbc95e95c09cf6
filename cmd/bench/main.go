// Command bench runs a synthetic GetOrFetch workload against the cache and
// exposes optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"os"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/IvanBrykalov/fetchcache/cache"
	pmet "github.com/IvanBrykalov/fetchcache/metrics/prom"
)

func main() {
	// ---- Flags ----
	var (
		dir      = flag.String("dir", "", "store directory (empty = temp dir)")
		maxSize  = flag.Int64("max_bytes", 64<<20, "persisted-size cap in bytes")
		maxAge   = flag.Duration("max_age", 24*time.Hour, "persisted-age cap")
		memOnly  = flag.Bool("mem", false, "memory-only (no persistence)")
		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		keys     = flag.Int("keys", 10_000, "keyspace size")
		zipfS    = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV    = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed     = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		fetchLat = flag.Duration("fetch_latency", 2*time.Millisecond, "simulated fetch latency")
		valSize  = flag.Int("value_bytes", 4<<10, "simulated fetch result size")
		pruneEvy = flag.Duration("prune_every", time.Second, "interval between Prune passes (0 = never)")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr")
	)
	flag.Parse()

	// ---- pprof server (on DefaultServeMux) ----
	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", *pprofAddr)
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	// ---- Prometheus metrics (on DefaultServeMux) ----
	metrics := pmet.New(nil, "fetchcache", "bench", nil)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("metrics: serving at %s", *metricsAddr)
		log.Println(http.ListenAndServe(*metricsAddr, nil))
	}()

	// ---- Build cache ----
	opt := cache.Options{Metrics: metrics}
	if !*memOnly {
		d := *dir
		if d == "" {
			var err error
			if d, err = os.MkdirTemp("", "fetchcache-bench-"); err != nil {
				log.Fatalf("temp dir: %v", err)
			}
			defer func() { _ = os.RemoveAll(d) }()
		} else if err := os.MkdirAll(d, 0o755); err != nil {
			log.Fatalf("store dir: %v", err)
		}
		opt.Dir = d
		opt.MaxBytes = *maxSize
		opt.MaxAge = *maxAge
		log.Printf("store: %s (cap %d bytes, age %s)", d, *maxSize, *maxAge)
	}
	c := cache.New(opt)
	defer func() { _ = c.Close() }()

	// ---- Periodic eviction sweep ----
	stop := make(chan struct{})
	if !*memOnly && *pruneEvy > 0 {
		go func() {
			t := time.NewTicker(*pruneEvy)
			defer t.Stop()
			for {
				select {
				case <-t.C:
					if err := c.Prune(); err != nil {
						log.Printf("prune: %v", err)
					}
				case <-stop:
					return
				}
			}
		}()
	}

	// ---- Workload ----
	payload := make([]byte, *valSize)
	var fetches, ops atomic.Int64
	deadline := time.Now().Add(*duration)

	var wg sync.WaitGroup
	wg.Add(*workers)
	for w := 0; w < *workers; w++ {
		go func(id int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(*seed + int64(id)*9973))
			z := rand.NewZipf(r, *zipfS, *zipfV, uint64(*keys-1))
			for time.Now().Before(deadline) {
				name := "k:" + strconv.FormatUint(z.Uint64(), 10)
				_, err := c.GetOrFetch(context.Background(), name, func() ([]byte, error) {
					fetches.Add(1)
					time.Sleep(*fetchLat)
					return payload, nil
				})
				if err != nil {
					log.Printf("get: %v", err)
				}
				ops.Add(1)
			}
		}(w)
	}
	wg.Wait()
	close(stop)

	o, f := ops.Load(), fetches.Load()
	fmt.Printf("ops=%d fetches=%d dedup+hit ratio=%.2f%% resident=%d\n",
		o, f, 100*float64(o-f)/float64(o), c.Len())
}
