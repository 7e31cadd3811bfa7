package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"farmflow/internal/core"
	"farmflow/internal/insights"
	"farmflow/internal/store"
)

type taskView struct {
	core.Task
	FarmName string `json:"farmName"`
	Overdue  bool   `json:"overdue"`
}

func (h *handler) taskViews(c *gin.Context, tasks []core.Task) ([]taskView, error) {
	farms, err := h.Farms.ListFarms(c.Request.Context())
	if err != nil {
		return nil, err
	}
	now := h.Now()
	out := make([]taskView, len(tasks))
	for i, t := range tasks {
		out[i] = taskView{Task: t, FarmName: store.FarmName(farms, t.FarmID), Overdue: insights.TaskOverdue(t, now)}
	}
	return out, nil
}

func (h *handler) listTasks(c *gin.Context) {
	status, err := insights.ParseTaskStatus(c.Query("status"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	priority, err := insights.ParsePriority(c.Query("priority"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	tasks, err := h.Tasks.ListTasks(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	filtered := insights.FilterTasks(tasks, insights.TaskFilter{Search: c.Query("search"), Status: status, Priority: priority})
	views, err := h.taskViews(c, filtered)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// upcomingTasks lists tasks due within the week. ?limit= caps the list.
func (h *handler) upcomingTasks(c *gin.Context) {
	n := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			badRequest(c, "limit must be a non-negative integer")
			return
		}
		n = v
	}
	tasks, err := h.Dashboard.UpcomingTasks(c.Request.Context(), n)
	if err != nil {
		respondError(c, err)
		return
	}
	views, err := h.taskViews(c, tasks)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *handler) createTask(c *gin.Context) {
	var d core.TaskDraft
	if !bind(c, &d) {
		return
	}
	t, err := h.Tasks.CreateTask(c.Request.Context(), d)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *handler) updateTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var d core.TaskDraft
	if !bind(c, &d) {
		return
	}
	t, err := h.Tasks.UpdateTask(c.Request.Context(), id, d)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *handler) toggleTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.Dashboard.ToggleTask(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *handler) deleteTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.Tasks.DeleteTask(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": deleted})
}
