package router

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/yi-nology/asset_harbor/biz/handler"
	"github.com/yi-nology/asset_harbor/biz/handler/version"
	"github.com/yi-nology/asset_harbor/biz/middleware"
)

// Register configures the HTTP routes. Mutating routes go through the
// global write lock when Redis locking is enabled.
func Register(r *server.Hertz, inventory *handler.InventoryHandler, files *handler.FileHandler, transfer *handler.TransferHandler) {
	v1 := r.Group("/api/v1")

	assets := v1.Group("/assets")
	assets.GET("", inventory.ListAssets)
	assets.POST("", locked(inventory.CreateAsset)...)
	assets.GET("/:assetID", inventory.GetAsset)
	assets.PUT("/:assetID", locked(inventory.UpdateAsset)...)
	assets.DELETE("/:assetID", locked(inventory.DeleteAsset)...)
	assets.GET("/:assetID/tree", inventory.GetAssetTree)
	assets.GET("/:assetID/components", inventory.ListAssetComponents)
	assets.GET("/:assetID/components/top", inventory.ListTopLevelComponents)

	components := v1.Group("/components")
	components.POST("", locked(inventory.CreateComponent)...)
	components.GET("/:componentID", inventory.GetComponent)
	components.PUT("/:componentID", locked(inventory.UpdateComponent)...)
	components.DELETE("/:componentID", locked(inventory.DeleteComponent)...)
	components.GET("/:componentID/children", inventory.ListComponentChildren)

	v1.GET("/files/*filepath", files.GetFile)

	v1.GET("/export", transfer.ExportBundle)
	v1.POST("/import", locked(transfer.ImportBundle)...)

	v1.GET("/version", version.GetVersion)
	v1.GET("/version/latest", version.GetLatestRelease)

	r.GET("/ping", handler.Ping)
}

// locked prepends the write lock middleware to a mutating handler.
func locked(h app.HandlerFunc) []app.HandlerFunc {
	return append(middleware.WriteLockMw(), h)
}
