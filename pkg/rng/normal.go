package rng

import (
	"math/rand"
	"time"
)

var _ RNG = &NormalRNG{}
var _ RNG = &BernoulliRNG{}

// NormalRNG generates normally distributed measurements
type NormalRNG struct {
	mean  float64
	stdev float64
	r     *rand.Rand
}

func (r *NormalRNG) Rand() float64 {
	return r.r.NormFloat64()*r.stdev + r.mean
}

// NewNormalRNG returns a generator seeded from the clock
func NewNormalRNG(mean float64, stdev float64) *NormalRNG {
	return NewSeededNormalRNG(mean, stdev, time.Now().UnixNano())
}

// NewSeededNormalRNG returns a generator that repeats its sequence for the same seed
func NewSeededNormalRNG(mean float64, stdev float64, seed int64) *NormalRNG {
	return &NormalRNG{
		mean:  mean,
		stdev: stdev,
		r:     rand.New(rand.NewSource(seed)),
	}
}

// BernoulliRNG generates attribute measurements, 1 (defective) with probability p and 0 otherwise
type BernoulliRNG struct {
	p float64
	r *rand.Rand
}

func (r *BernoulliRNG) Rand() float64 {
	if r.r.Float64() < r.p {
		return 1
	}
	return 0
}

// NewBernoulliRNG returns a generator seeded from the clock
func NewBernoulliRNG(p float64) *BernoulliRNG {
	return NewSeededBernoulliRNG(p, time.Now().UnixNano())
}

func NewSeededBernoulliRNG(p float64, seed int64) *BernoulliRNG {
	return &BernoulliRNG{p: p, r: rand.New(rand.NewSource(seed))}
}

// Fill returns n draws from r
func Fill(r RNG, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = r.Rand()
	}
	return out
}
