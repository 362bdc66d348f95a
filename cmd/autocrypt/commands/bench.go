package commands

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"autocrypt/internal/crypto"
	"autocrypt/internal/domain"
	"autocrypt/internal/protocol/handshake"
	"autocrypt/internal/util/memzero"
)

type benchStats struct {
	handshakes    int
	handshakeTime time.Duration
	messages      int
	messageTime   time.Duration
}

func (s *benchStats) add(o benchStats) {
	s.handshakes += o.handshakes
	s.handshakeTime += o.handshakeTime
	s.messages += o.messages
	s.messageTime += o.messageTime
}

func benchCmd() *cobra.Command {
	var (
		workers  int
		duration time.Duration
		size     int
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure concurrent handshake and seal/open throughput",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if workers < 1 || size < 0 || duration <= 0 {
				return fmt.Errorf("workers must be >= 1, size >= 0 and duration > 0")
			}
			keco, err := crypto.GenerateKeyPair()
			if err != nil {
				return err
			}
			defer keco.Wipe()
			charger, err := crypto.GenerateKeyPair()
			if err != nil {
				return err
			}
			defer charger.Wipe()

			pad := wire.Config.PaddingScheme()
			payload := make([]byte, size)
			ctx, cancel := context.WithTimeout(cmd.Context(), duration)
			defer cancel()

			stats := make([]benchStats, workers)
			g, ctx := errgroup.WithContext(ctx)
			for i := range stats {
				i := i
				g.Go(func() error {
					return benchWorker(ctx, keco, charger, payload, pad, &stats[i])
				})
			}
			start := time.Now()
			if err := g.Wait(); err != nil {
				return err
			}
			elapsed := time.Since(start)

			var total benchStats
			for _, s := range stats {
				total.add(s)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "workers: %d  duration: %s  payload: %d bytes  padding: %s\n", workers, elapsed.Round(time.Millisecond), size, pad)
			printRate(out, "handshake", total.handshakes, total.handshakeTime, elapsed)
			printRate(out, "seal+open", total.messages, total.messageTime, elapsed)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVarP(&workers, "workers", "w", runtime.NumCPU(), "concurrent workers")
	f.DurationVarP(&duration, "duration", "d", 2*time.Second, "how long to run")
	f.IntVar(&size, "size", 8, "message payload size in bytes")
	return cmd
}

func benchWorker(ctx context.Context, keco, charger domain.KeyPair, payload []byte, pad domain.Padding, st *benchStats) error {
	id := make([]byte, 16)
	for ctx.Err() == nil {
		if err := benchRound(keco, charger, id, payload, pad, st); err != nil {
			return err
		}
	}
	return nil
}

// benchRound runs one handshake and one seal/open. Every secret is wiped on return.
func benchRound(keco, charger domain.KeyPair, id, payload []byte, pad domain.Padding, st *benchStats) error {
	t0 := time.Now()
	in := handshake.NewInitiator(keco.PrivateKey, charger.PublicKey)
	defer in.Close()
	msg, err := in.Begin(id)
	if err != nil {
		return err
	}
	b, err := handshake.NewResponder(charger.PrivateKey, keco.PublicKey).Accept(msg)
	if err != nil {
		return err
	}
	defer b.Close()
	a, err := in.Finish()
	if err != nil {
		return err
	}
	defer a.Close()
	st.handshakes++
	st.handshakeTime += time.Since(t0)

	t1 := time.Now()
	env, err := a.Seal(payload, pad)
	if err != nil {
		return err
	}
	pt, err := b.Open(env)
	if err != nil {
		return err
	}
	memzero.Zero(pt)
	st.messages++
	st.messageTime += time.Since(t1)
	return nil
}

func printRate(out io.Writer, name string, ops int, busy, elapsed time.Duration) {
	if ops == 0 {
		fmt.Fprintf(out, "%-10s no operations completed\n", name)
		return
	}
	fmt.Fprintf(out, "%-10s %8d ops  %10.1f ops/s  %10s avg latency\n",
		name, ops, float64(ops)/elapsed.Seconds(), (busy / time.Duration(ops)).Round(time.Microsecond))
}
