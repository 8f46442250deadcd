package router

import (
	"github.com/YashDixit26/File-Compression-and-Decompression-System/internal/handler"

	"github.com/gin-gonic/gin"
)

type Dependencies struct {
	CodecHandler *handler.CodecHandler
}

func Register(r *gin.Engine, d Dependencies) {
	// 공용 라우트
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	// v1 그룹
	v1 := r.Group("/api/v1")
	{
		v1.POST("/compress", d.CodecHandler.Compress)
		v1.POST("/decompress", d.CodecHandler.Decompress)
		v1.POST("/encode", d.CodecHandler.Encode)
		v1.POST("/decode", d.CodecHandler.Decode)

		runs := v1.Group("/runs")
		{
			runs.GET("", d.CodecHandler.ListRuns)
			runs.GET("/:id", d.CodecHandler.GetRun)
		}
	}
}
