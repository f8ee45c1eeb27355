package contracts

import "github.com/julienschmidt/httprouter"

// Handler is what every domain handler exposes to the application
// bootstrap: the ability to mount its routes.
type Handler interface {
	RegisterRoutes(router *httprouter.Router)
}
