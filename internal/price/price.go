package price

import "context"

// StubPrice — фиксированная цена BTC, которую отдаёт заглушка вместо биржи.
const StubPrice int64 = 130000

// LatestPrice возвращает последнюю цену. Пока это константа: реального источника нет.
func LatestPrice() int64 {
	return StubPrice
}

// Source описывает минимальный контракт источника цены.
// Сюда подключается настоящий клиент биржи, оракул от него не зависит.
type Source interface {
	LatestPrice(ctx context.Context) (int64, error)
}

// StubSource always answers with the same value.
type StubSource struct {
	value func() int64
}

// NewStubSource отдаёт LatestPrice().
func NewStubSource() *StubSource {
	return &StubSource{value: LatestPrice}
}

// NewFixedSource отдаёт произвольное значение вместо StubPrice.
func NewFixedSource(value int64) *StubSource {
	return &StubSource{value: func() int64 { return value }}
}

func (s *StubSource) LatestPrice(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.value(), nil
}
