package testutil

import (
	"context"
	"errors"
	"time"
)

// FakeSource — управляемый источник цены для тестов.
type FakeSource struct {
	Value int64
	Err   error
	Delay time.Duration // опциональная задержка для имитации сети

	Calls int
}

func (f *FakeSource) LatestPrice(ctx context.Context) (int64, error) {
	f.Calls++
	if f.Delay > 0 {
		select {
		case <-time.After(f.Delay):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	if f.Err != nil {
		return 0, f.Err
	}
	return f.Value, nil
}

// FailingWriter возвращает Err на каждую запись.
type FailingWriter struct {
	Err error
}

func (w FailingWriter) Write(_ []byte) (int, error) {
	return 0, w.Err
}

// CountingMetrics считает вызовы вместо Prometheus.
type CountingMetrics struct {
	SourceOK     int
	SourceFailed int
	Written      int
}

func (m *CountingMetrics) ObserveSourceCall(_ time.Duration, success bool) {
	if success {
		m.SourceOK++
		return
	}
	m.SourceFailed++
}

func (m *CountingMetrics) QuoteWritten() { m.Written++ }

// Утилита для быстрого создания ошибок
func Err(msg string) error { return errors.New(msg) }
