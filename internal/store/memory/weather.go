package memory

import (
	"context"

	"farmflow/internal/core"
	"farmflow/internal/store"
)

var _ store.WeatherReader = (*Weather)(nil)

// Weather serves a fixed forecast. Every backend uses it; there is no
// remote weather source.
type Weather struct {
	days []core.Forecast
}

func NewWeather(days []core.Forecast) *Weather {
	return &Weather{days: append([]core.Forecast(nil), days...)}
}

func (w *Weather) Forecast(ctx context.Context) ([]core.Forecast, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]core.Forecast{}, w.days...), nil
}

// Current returns the first forecast day.
func (w *Weather) Current(ctx context.Context) (core.Forecast, error) {
	if err := ctx.Err(); err != nil {
		return core.Forecast{}, err
	}
	if len(w.days) == 0 {
		return core.Forecast{}, core.NotFound("forecast", 0)
	}
	return w.days[0], nil
}
