package stream

import (
	"context"

	"github.com/shpandrak/shpansample/sampler"
)

// CollectRandomSample consumes the stream once and returns a uniform random sample of
// min(sampleSize, n) of its n elements, in random order. Only the sample is kept in memory.
// A negative sampleSize fails with sampler.ErrInvalidSize before the stream is opened.
func (s Stream[T]) CollectRandomSample(ctx context.Context, sampleSize int) ([]T, error) {
	return s.CollectRandomSampleWithRand(ctx, sampleSize, nil)
}

// CollectRandomSampleWithRand is like CollectRandomSample, drawing from rnd.
// Passing a seeded generator makes the sample reproducible. A nil rnd uses a fresh generator.
func (s Stream[T]) CollectRandomSampleWithRand(ctx context.Context, sampleSize int, rnd sampler.Rand) ([]T, error) {
	reservoir, err := sampler.NewReservoir[T](sampleSize, rnd)
	if err != nil {
		return nil, err
	}
	if err := s.Consume(ctx, reservoir.Offer); err != nil {
		return nil, err
	}
	return reservoir.Sample(), nil
}

// RandomSample returns a stream of a uniform random sample of the source stream elements.
// The source is consumed entirely when the returned stream is materialized.
func (s Stream[T]) RandomSample(sampleSize int) Stream[T] {
	return s.RandomSampleWithRand(sampleSize, nil)
}

// RandomSampleWithRand is like RandomSample, drawing from rnd.
// rnd is shared by every materialization of the returned stream.
func (s Stream[T]) RandomSampleWithRand(sampleSize int, rnd sampler.Rand) Stream[T] {
	return newStreamFromCollector(s, func(ctx context.Context, src Stream[T]) ([]T, error) {
		return src.CollectRandomSampleWithRand(ctx, sampleSize, rnd)
	})
}
