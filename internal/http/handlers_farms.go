package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farmflow/internal/core"
	"farmflow/internal/insights"
	"farmflow/internal/store"
)

type farmView struct {
	core.Farm
	ActiveCrops int `json:"activeCrops"`
}

func (h *handler) listFarms(c *gin.Context) {
	ctx := c.Request.Context()
	farms, err := h.Farms.ListFarms(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	crops, err := h.Crops.ListCrops(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	active := insights.ActiveCropsByFarm(crops)
	out := make([]farmView, len(farms))
	for i, f := range farms {
		out[i] = farmView{Farm: f, ActiveCrops: active[store.FarmKey(f.ID)]}
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) getFarm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	f, err := h.Farms.GetFarm(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	crops, err := h.Crops.ListCropsByFarm(ctx, store.FarmKey(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, farmView{Farm: f, ActiveCrops: insights.ActiveCrops(crops)})
}

func (h *handler) createFarm(c *gin.Context) {
	var d core.FarmDraft
	if !bind(c, &d) {
		return
	}
	f, err := h.Farms.CreateFarm(c.Request.Context(), d)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

func (h *handler) updateFarm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var d core.FarmDraft
	if !bind(c, &d) {
		return
	}
	f, err := h.Farms.UpdateFarm(c.Request.Context(), id, d)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

func (h *handler) deleteFarm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.Farms.DeleteFarm(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": deleted})
}
