package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/boxdancer/go-price-oracle/internal/observability"
	"github.com/boxdancer/go-price-oracle/internal/price"
)

var ErrNilWriter = errors.New("nil output writer")

// Quote — то, что печатает оракул: {"price": <value>}.
type Quote struct {
	Price int64 `json:"price"`
}

// Encode сериализует котировку в формате {"price": 130000}: пробел после двоеточия,
// перевод строки в конце. Потребители сравнивают вывод побайтно.
func Encode(q Quote) ([]byte, error) {
	value, err := json.Marshal(q.Price)
	if err != nil {
		return nil, fmt.Errorf("encode quote: %w", err)
	}
	line := make([]byte, 0, len(value)+12)
	line = append(line, `{"price": `...)
	line = append(line, value...)
	return append(line, '}', '\n'), nil
}

type Reporter struct {
	source  price.Source
	metrics observability.Metrics
	logger  *zap.SugaredLogger
}

func NewReporter(src price.Source, m observability.Metrics, logger *zap.SugaredLogger) *Reporter {
	return &Reporter{
		source:  src,
		metrics: m,
		logger:  logger,
	}
}

// Report берёт одну цену у источника и пишет её в w одной строкой.
// Если источник вернул ошибку, в w ничего не пишется.
func (r *Reporter) Report(ctx context.Context, w io.Writer) error {
	if w == nil {
		return ErrNilWriter
	}

	start := time.Now()
	value, err := r.source.LatestPrice(ctx)
	r.metrics.ObserveSourceCall(time.Since(start), err == nil)
	if err != nil {
		r.logger.Warnw("price source failed", "error", err)
		return fmt.Errorf("fetch price: %w", err)
	}
	r.logger.Debugw("price fetched", "price", value, "took", time.Since(start))

	line, err := Encode(Quote{Price: value})
	if err != nil {
		return err
	}

	if _, err := w.Write(line); err != nil {
		r.logger.Warnw("write quote failed", "error", err)
		return fmt.Errorf("write quote: %w", err)
	}
	r.metrics.QuoteWritten()
	return nil
}
