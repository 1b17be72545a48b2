package api

import (
	"patent-batch-engine/internal/api/handler"
	"patent-batch-engine/pkg/router"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "patent-batch-engine/docs" // registered swagger spec
)

func RegisterRoutes(r *router.Router, h *handler.BatchHandler) {
	r.POST("/api/v1/batch", h.SubmitBatch)
	r.GET("/api/v1/batch", h.ListBatches)
	// More specific routes first
	r.GET("/api/v1/batch/{id}/errors", h.GetBatchErrors)
	r.GET("/api/v1/batch/{id}/results", h.GetBatchResults)
	r.GET("/api/v1/batch/{id}/progress", h.GetBatchProgress)
	// Generic batch routes last
	r.GET("/api/v1/batch/{id}", h.GetBatch)
	r.DELETE("/api/v1/batch/{id}", h.CancelBatch)

	r.Mount("/swagger/", httpSwagger.WrapHandler)
}
