package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/shpandrak/shpansample/integrations/file"
	"github.com/shpandrak/shpansample/integrations/jsonstream"
	"github.com/shpandrak/shpansample/sampler"
	"github.com/shpandrak/shpansample/stream"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "rsample [file...]",
		Short: "Prints a uniform random sample of the input lines",
		Long: "Reads lines from the given files, or stdin when none are given, and prints a uniform random sample of them " +
			"in random order. The input is read once and only the sample is kept in memory.",
		RunE:         rsampleFunc,
		SilenceUsage: true,
	}
	AddFlags(c.Flags())
	return c
}

func rsampleFunc(c *cobra.Command, args []string) error {
	config, err := ParseFlags(c.Flags(), args)
	if err != nil {
		return err
	}

	log := newLogger(c.ErrOrStderr(), config.Verbose)
	defer func() {
		_ = log.Sync()
	}()

	return run(c.Context(), config, c.InOrStdin(), c.OutOrStdout(), log)
}

func run(ctx context.Context, config *Config, stdin io.Reader, stdout io.Writer, log *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	src, err := inputStream(config, stdin)
	if err != nil {
		return err
	}

	rnd := sampler.NewRand()
	if config.Seed != 0 {
		rnd = sampler.NewSeededRand(config.Seed)
	}

	log.Debug("sampling input",
		zap.Int("size", config.Size),
		zap.Uint64("seed", config.Seed),
		zap.String("input", config.Input),
		zap.Strings("files", config.Files),
	)

	startTime := time.Now()
	seen := 0
	sample, err := src.
		Peek(func(any) {
			seen++
		}).
		CollectRandomSampleWithRand(ctx, config.Size, rnd)
	if err != nil {
		return err
	}

	log.Debug("sampling done",
		zap.Int("seen", seen),
		zap.Int("sampled", len(sample)),
		zap.Duration("elapsed", time.Since(startTime)),
	)

	return writeSample(stdout, config.Format, sample)
}

// inputStream streams the items of all files one after the other, or of stdin when there are none.
func inputStream(config *Config, stdin io.Reader) (stream.Stream[any], error) {
	if len(config.Files) == 0 {
		return itemStream(config, file.StreamLinesFromReader(stdin), func(context.Context) (io.ReadCloser, error) {
			return io.NopCloser(stdin), nil
		}), nil
	}

	streams := make([]stream.Stream[any], 0, len(config.Files))
	for _, f := range config.Files {
		// The line stream treats a missing file as empty, which is not what a user asking for it means
		if _, err := os.Stat(f); err != nil {
			return stream.Stream[any]{}, errors.Wrapf(err, "can't read input file %s", f)
		}
		streams = append(streams, itemStream(config, file.StreamLinesFromFile(f), func(context.Context) (io.ReadCloser, error) {
			return os.Open(f)
		}))
	}
	return stream.ConcatStreams(streams...), nil
}

// itemStream splits a single input into items according to the configured input kind
func itemStream(
	config *Config,
	lines stream.Stream[string],
	readCloserProvider func(ctx context.Context) (io.ReadCloser, error),
) stream.Stream[any] {
	if config.Input == InputJsonArray {
		return jsonstream.StreamJsonArray[any](readCloserProvider)
	}
	if config.SkipBlank {
		lines = lines.Filter(func(line string) bool {
			return line != ""
		})
	}
	return stream.Map(lines, func(line string) any {
		return line
	})
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core).Named("rsample")
}
