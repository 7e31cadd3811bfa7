package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farmflow/internal/core"
	"farmflow/internal/insights"
	"farmflow/internal/store"
)

type cropView struct {
	core.Crop
	FarmName       string `json:"farmName"`
	DaysToHarvest  *int   `json:"daysToHarvest"`
	HarvestOverdue bool   `json:"harvestOverdue"`
}

// listCrops lists crops, optionally narrowed with ?farmId=.
func (h *handler) listCrops(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		crops []core.Crop
		err   error
	)
	if farmID := c.Query("farmId"); farmID != "" {
		crops, err = h.Crops.ListCropsByFarm(ctx, farmID)
	} else {
		crops, err = h.Crops.ListCrops(ctx)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	farms, err := h.Farms.ListFarms(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	now := h.Now()
	out := make([]cropView, len(crops))
	for i, crop := range crops {
		v := cropView{
			Crop:           crop,
			FarmName:       store.FarmName(farms, crop.FarmID),
			HarvestOverdue: insights.HarvestOverdue(crop, now),
		}
		if days, ok := insights.DaysToHarvest(crop, now); ok {
			v.DaysToHarvest = &days
		}
		out[i] = v
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) createCrop(c *gin.Context) {
	var d core.CropDraft
	if !bind(c, &d) {
		return
	}
	crop, err := h.Crops.CreateCrop(c.Request.Context(), d)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, crop)
}

func (h *handler) updateCrop(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var d core.CropDraft
	if !bind(c, &d) {
		return
	}
	crop, err := h.Crops.UpdateCrop(c.Request.Context(), id, d)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, crop)
}

func (h *handler) deleteCrop(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.Crops.DeleteCrop(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": deleted})
}
