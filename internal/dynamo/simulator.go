package dynamo

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/sirupsen/logrus"
)

// Simulator drives a System at a fixed tick for a bounded duration.
type Simulator struct {
	metrics   []Metric
	observers []Observer
	log       logrus.FieldLogger
}

func New() *Simulator {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	return &Simulator{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		log:       quiet,
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// SetLogger replaces the default discarding logger.
func (s *Simulator) SetLogger(l logrus.FieldLogger) {
	if l != nil {
		s.log = l
	}
}

func (s *Simulator) Run(ctx context.Context, sys System, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	result := &Result{
		Labels:  sys.Labels(),
		States:  make([]State, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	x := sys.State()
	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	initialEnergy := computeEnergy(sys)
	s.log.WithFields(logrus.Fields{
		"dt":       cfg.Dt,
		"duration": cfg.Duration,
		"steps":    steps,
	}).Debug("simulation started")

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.log.WithField("step", i).Warn("simulation canceled")
			return result, &SimulationError{Step: i, Time: t, State: x, Wrapped: ErrContextCanceled}
		default:
		}

		for _, m := range s.metrics {
			m.Observe(x, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, t)
		}

		sys.Step(cfg.Dt)
		x = sys.State()
		t += cfg.Dt

		if cfg.ValidateState && !x.IsValid() {
			s.log.WithFields(logrus.Fields{"step": i, "time": t}).Error("state diverged")
			return result, &SimulationError{Step: i, Time: t, State: x.Clone(), Wrapped: ErrInvalidState}
		}

		result.StepsTaken++
		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)
	}

	finalEnergy := computeEnergy(sys)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.log.WithFields(logrus.Fields{
		"steps":        result.StepsTaken,
		"energy_drift": result.EnergyDrift,
	}).Debug("simulation finished")

	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

func computeEnergy(sys System) float64 {
	if h, ok := sys.(Hamiltonian); ok {
		return h.Energy()
	}
	return 0
}
