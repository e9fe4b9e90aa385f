package routes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// AddStaticRoutes serves uploaded images from disk.
func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}
