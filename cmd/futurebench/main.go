package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	futureset "github.com/joeycumines/go-futureset"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"github.com/urfave/cli/v3"
)

const (
	membersKey = "members"
	roundsKey  = "rounds"
	sleepKey   = "sleep"
	seedKey    = "seed"
	verboseKey = "verbose"
)

// Scenario sizes, capped by the members flag.
var nn = []int{100, 1_000, 10_000}

func main() {
	cmd := &cli.Command{
		Name:  "futurebench",
		Usage: "Benchmark completion-order multiplexing of futures",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  membersKey,
				Usage: "Largest number of futures per scenario",
				Value: 10_000,
			},
			&cli.IntFlag{
				Name:  roundsKey,
				Usage: "Maximum scheduling rounds per self-waking future",
				Value: 4,
			},
			&cli.DurationFlag{
				Name:  sleepKey,
				Usage: "Maximum simulated work duration per spawned future",
				Value: time.Millisecond,
			},
			&cli.IntFlag{
				Name:  seedKey,
				Usage: "Workload RNG seed",
				Value: 1,
			},
			&cli.BoolFlag{
				Name:  verboseKey,
				Usage: "Log set lifecycle events to stderr",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	log.Print("Starting futureset benchmark, please wait...")
	defer log.Print("Finished futureset benchmark")

	members := int(cmd.Int(membersKey))
	maxRounds := int(cmd.Int(roundsKey))
	maxSleep := cmd.Duration(sleepKey)
	rng := rand.New(rand.NewSource(cmd.Int(seedKey)))

	var logger *logiface.Logger[logiface.Event]
	if cmd.Bool(verboseKey) {
		logger = stumpy.L.New(
			stumpy.L.WithStumpy(stumpy.WithWriter(os.Stderr), stumpy.WithTimeField(``)),
			stumpy.L.WithLevel(logiface.LevelTrace),
		).Logger()
	}

	tbl := table.NewWriter()
	tbl.SetTitle("futureset")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{
		"scenario", "futures", "elapsed", "results/s",
		"avg", "p75", "p99", "max",
		"wakes", "inconsistent",
	})

	for _, n := range nn {
		if n > members {
			continue
		}

		r, err := runSpawn(ctx, n, maxSleep, rng, logger)
		if err != nil {
			return err
		}
		appendResult(tbl, r)

		r, err = runPending(ctx, n, maxRounds, rng, logger)
		if err != nil {
			return err
		}
		appendResult(tbl, r)
	}

	tbl.Render()
	return nil
}

type scenarioResult struct {
	name    string
	n       int
	elapsed time.Duration
	calc    *tachymeter.Metrics
	stats   futureset.Stats
}

func appendResult(tbl table.Writer, r scenarioResult) {
	rate := float64(r.n) / r.elapsed.Seconds()
	tbl.AppendRows([]table.Row{
		{
			fmt.Sprintf("%s: %s", r.name, humanize.Comma(int64(r.n))),
			humanize.Comma(int64(r.n)),
			r.elapsed.Round(time.Microsecond),
			humanize.Comma(int64(rate)),
			r.calc.Time.Avg,
			r.calc.Time.P75,
			r.calc.Time.P99,
			r.calc.Time.Max,
			humanize.Comma(int64(r.stats.Wakes)),
			humanize.Comma(int64(r.stats.Inconsistent)),
		},
	})
}

// runSpawn measures goroutine-backed futures completing from arbitrary
// goroutines: n functions sleep for a random duration, then resolve to
// their index. Latency is push-to-result per future, and every result
// must arrive exactly once.
func runSpawn(ctx context.Context, n int, maxSleep time.Duration, rng *rand.Rand, logger *logiface.Logger[logiface.Event]) (scenarioResult, error) {
	s := futureset.New[int](futureset.WithLogger(logger))
	tach := tachymeter.New(&tachymeter.Config{Size: n})

	pushed := make([]time.Time, n)
	for i := 0; i < n; i++ {
		d := time.Duration(rng.Int63n(int64(maxSleep) + 1))
		pushed[i] = time.Now()
		s.Push(futureset.Go(func(ctx context.Context) int {
			timer := time.NewTimer(d)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
			}
			return i
		}))
	}

	seen := mapset.NewSet[int]()
	start := time.Now()
	for v, err := range s.Results(ctx) {
		if err != nil {
			return scenarioResult{}, err
		}
		if !seen.Add(v) {
			return scenarioResult{}, fmt.Errorf("spawn: duplicate result %d", v)
		}
		tach.AddTime(time.Since(pushed[v]))
	}
	elapsed := time.Since(start)

	if seen.Cardinality() != n {
		return scenarioResult{}, fmt.Errorf("spawn: lost results: %d of %d", seen.Cardinality(), n)
	}

	return scenarioResult{name: "spawn", n: n, elapsed: elapsed, calc: tach.Calc(), stats: s.Stats()}, nil
}

// runPending measures pure driver throughput: n self-waking futures churn
// through a random number of scheduling rounds each, with no goroutines
// involved. Latency is the gap between successive results.
func runPending(ctx context.Context, n, maxRounds int, rng *rand.Rand, logger *logiface.Logger[logiface.Event]) (scenarioResult, error) {
	s := futureset.New[int](futureset.WithLogger(logger))
	for i := 0; i < n; i++ {
		s.Push(futureset.PendingFor(rng.Intn(maxRounds+1), i))
	}

	seen := mapset.NewSet[int]()
	tach := tachymeter.New(&tachymeter.Config{Size: n})
	start := time.Now()
	last := start
	for {
		v, err := s.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return scenarioResult{}, err
		}
		now := time.Now()
		tach.AddTime(now.Sub(last))
		last = now
		if !seen.Add(v) {
			return scenarioResult{}, fmt.Errorf("pending: duplicate result %d", v)
		}
	}
	elapsed := time.Since(start)

	if seen.Cardinality() != n {
		return scenarioResult{}, fmt.Errorf("pending: lost results: %d of %d", seen.Cardinality(), n)
	}

	return scenarioResult{name: "pending", n: n, elapsed: elapsed, calc: tach.Calc(), stats: s.Stats()}, nil
}
