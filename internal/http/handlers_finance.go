package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farmflow/internal/core"
	"farmflow/internal/finance"
	"farmflow/internal/services"
)

type financesResponse struct {
	Filter      finance.FilterState       `json:"filter"`
	Period      finance.Period            `json:"period"`
	Entries     []services.EntryView      `json:"entries"`
	Trend       finance.TrendSeries       `json:"trend"`
	Breakdown   finance.CategoryBreakdown `json:"breakdown"`
	Percentages []int64                   `json:"percentages"`
	Summary     core.Summary              `json:"summary"`
	Categories  []finance.Option          `json:"categories"`
	Types       []finance.Option          `json:"types"`
}

// parseFinanceQuery reads the filter and period query parameters.
func parseFinanceQuery(c *gin.Context) (finance.FilterState, finance.Period, error) {
	typ, err := finance.ParseTypeFilter(c.Query("type"))
	if err != nil {
		return finance.FilterState{}, "", err
	}
	period, err := finance.ParsePeriod(c.Query("period"))
	if err != nil {
		return finance.FilterState{}, "", err
	}
	category := c.Query("category")
	if category == "" {
		category = finance.AllCategories
	}
	return finance.FilterState{Search: c.Query("search"), Type: typ, Category: category}, period, nil
}

func (h *handler) listFinances(c *gin.Context) {
	f, period, err := parseFinanceQuery(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	report, views, err := h.Finance.Report(c.Request.Context(), f, period)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, financesResponse{
		Filter:      report.Filter,
		Period:      report.Period,
		Entries:     views,
		Trend:       report.Trend,
		Breakdown:   report.Breakdown,
		Percentages: report.Percentages,
		Summary:     report.Summary,
		Categories:  report.Categories,
		Types:       finance.TypeOptions(),
	})
}

func (h *handler) financeSummary(c *gin.Context) {
	summary, err := h.Finance.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *handler) createEntry(c *gin.Context) {
	var d core.EntryDraft
	if !bind(c, &d) {
		return
	}
	e, err := h.Finance.CreateEntry(c.Request.Context(), d)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *handler) updateEntry(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var d core.EntryDraft
	if !bind(c, &d) {
		return
	}
	e, err := h.Finance.UpdateEntry(c.Request.Context(), id, d)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *handler) deleteEntry(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.Finance.DeleteEntry(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": deleted})
}
