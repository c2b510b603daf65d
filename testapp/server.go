package testapp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the REST routes over store. Collection names are taken
// from the URL, so any collection present in the database file is served
// without per-resource registration.
func NewRouter(store *Store) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/:collection", func(ctx *gin.Context) {
		items, ok := store.List(ctx.Param("collection"))
		if !ok {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
			return
		}
		ctx.JSON(http.StatusOK, items)
	})

	r.GET("/:collection/:id", func(ctx *gin.Context) {
		item, ok := store.Get(ctx.Param("collection"), ctx.Param("id"))
		if !ok {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		ctx.JSON(http.StatusOK, item)
	})

	r.POST("/:collection", func(ctx *gin.Context) {
		var item map[string]any
		if err := ctx.ShouldBindJSON(&item); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		ctx.JSON(http.StatusCreated, store.Create(ctx.Param("collection"), item))
	})

	r.PUT("/:collection/:id", func(ctx *gin.Context) {
		var item map[string]any
		if err := ctx.ShouldBindJSON(&item); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		updated, ok := store.Update(ctx.Param("collection"), ctx.Param("id"), item)
		if !ok {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		ctx.JSON(http.StatusOK, updated)
	})

	r.DELETE("/:collection/:id", func(ctx *gin.Context) {
		if !store.Delete(ctx.Param("collection"), ctx.Param("id")) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{})
	})

	return r
}

// Serve loads the database at dbPath and blocks serving it on addr.
func Serve(addr, dbPath string) error {
	store, err := LoadStore(dbPath)
	if err != nil {
		return err
	}
	return NewRouter(store).Run(addr)
}
