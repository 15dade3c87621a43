package handlers

import "github.com/labstack/echo/v4"

// adminID returns the authenticated admin's id set by RequireAuth.
// Zero only if a route was wired without the middleware.
func adminID(c echo.Context) uint {
	id, _ := c.Get("admin_id").(uint)
	return id
}
