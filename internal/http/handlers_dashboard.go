package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farmflow/internal/core"
	"farmflow/internal/insights"
)

type forecastView struct {
	core.Forecast
	Recommendation     insights.Recommendation `json:"recommendation"`
	RecommendationText string                  `json:"recommendationText"`
}

type weatherResponse struct {
	Current  *forecastView    `json:"current"`
	Forecast []forecastView   `json:"forecast"`
	Alerts   []insights.Alert `json:"alerts"`
}

func newForecastView(f core.Forecast) forecastView {
	r := insights.Recommend(f)
	return forecastView{Forecast: f, Recommendation: r, RecommendationText: r.Text()}
}

func (h *handler) weather(c *gin.Context) {
	ctx := c.Request.Context()
	days, err := h.Weather.Forecast(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := weatherResponse{
		Forecast: make([]forecastView, len(days)),
		Alerts:   insights.Alerts(days),
	}
	for i, d := range days {
		resp.Forecast[i] = newForecastView(d)
	}
	if len(days) > 0 {
		current, err := h.Weather.Current(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		v := newForecastView(current)
		resp.Current = &v
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) dashboard(c *gin.Context) {
	d, err := h.Dashboard.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}
