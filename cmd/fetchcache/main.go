// Command fetchcache fetches URLs (or local files) through the dedup cache
// and manages its persisted entries.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/IvanBrykalov/fetchcache/cache"
	"github.com/IvanBrykalov/fetchcache/internal/config"
	"github.com/IvanBrykalov/fetchcache/internal/logx"
)

func main() {
	logx.Init()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Warn("config load failed, using defaults")
	}

	app := &cli.Command{
		Name:  "fetchcache",
		Usage: "deduplicating disk-persisted fetch cache",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Value: cfg.Dir,
				Usage: "cache directory",
			},
			&cli.StringFlag{
				Name:  "max-size",
				Value: cfg.MaxSize,
				Usage: "persisted-size cap, e.g. 50MB",
			},
			&cli.IntFlag{
				Name:  "max-age-days",
				Value: cfg.MaxAgeDays,
				Usage: "persisted-age cap in days",
			},
			&cli.BoolFlag{
				Name:  "no-store",
				Usage: "memory-only: skip disk entirely",
			},
		},
		Commands: []*cli.Command{
			getCommand(),
			pruneCommand(),
			statsCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.WithError(err).Error("fetchcache failed")
		os.Exit(1)
	}
}

func getCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "fetch a URL or file through the cache and print it",
		ArgsUsage: "<url|path>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return fmt.Errorf("get: missing url or path argument")
			}

			c, err := buildCache(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			b, err := c.GetOrFetch(ctx, name, func() ([]byte, error) {
				log.WithField("name", name).Info("fetching")
				return fetch(ctx, name)
			})
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(b)
			return err
		},
	}
}

func pruneCommand() *cli.Command {
	return &cli.Command{
		Name:  "prune",
		Usage: "enforce the size and age bounds on persisted entries",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c, err := buildCache(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			st := cache.NewStore(cmd.String("dir"))
			before, _ := totalSize(st)

			if err := c.Prune(); err != nil {
				return err
			}

			after, n := totalSize(st)
			fmt.Printf("kept %d entries (%s), reclaimed %s\n",
				n, humanize.Bytes(uint64(after)), humanize.Bytes(uint64(max(before-after, 0))))
			return nil
		},
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "list persisted entries with age and size",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st := cache.NewStore(cmd.String("dir"))
			names, err := st.List()
			if err != nil {
				return err
			}
			sort.Strings(names)
			for _, name := range names {
				e, ok := cache.ParseEntry(name)
				if !ok {
					continue
				}
				size, err := st.Size(name)
				if err != nil {
					return err
				}
				fmt.Printf("%-24d %-16s %s\n",
					e.Hash, humanize.Time(e.Time), humanize.Bytes(uint64(size)))
			}
			return nil
		},
	}
}

// buildCache assembles cache.Options from flags. The CLI, not the core,
// owns creating the cache directory.
func buildCache(cmd *cli.Command) (cache.Cache, error) {
	if cmd.Bool("no-store") {
		return cache.New(cache.Options{}), nil
	}

	dir := cmd.String("dir")
	maxBytes, err := humanize.ParseBytes(cmd.String("max-size"))
	if err != nil {
		return nil, fmt.Errorf("max-size %q: %w", cmd.String("max-size"), err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	log.WithField("dir", dir).Debug("cache ready")
	return cache.New(cache.Options{
		Dir:      dir,
		MaxBytes: int64(maxBytes),
		MaxAge:   time.Duration(cmd.Int("max-age-days")) * 24 * time.Hour,
	}), nil
}

// fetch is the caller-supplied computation: an HTTP GET for URLs, a file
// read for everything else. The cache treats it as opaque.
func fetch(ctx context.Context, name string) ([]byte, error) {
	if !strings.HasPrefix(name, "http://") && !strings.HasPrefix(name, "https://") {
		return os.ReadFile(name)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, name, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", name, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// totalSize sums the sizes of all parseable entries in the store.
func totalSize(st *cache.Store) (bytes int64, entries int) {
	names, err := st.List()
	if err != nil {
		return 0, 0
	}
	for _, name := range names {
		if _, ok := cache.ParseEntry(name); !ok {
			continue
		}
		if size, err := st.Size(name); err == nil {
			bytes += size
			entries++
		}
	}
	return bytes, entries
}
