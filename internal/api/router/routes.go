package router

import (
	"github.com/gofiber/fiber/v3"
)

// Router quản lý việc định tuyến cho API
type Router struct {
	app *fiber.App
}

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string // Prefix cơ bản (/api)
	V1   string // Prefix cho API version 1 (/api/v1)
}

// NewRoutePrefix tạo mới một instance của RoutePrefix với các giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// NewRouter tạo mới một instance của Router
func NewRouter(app *fiber.App) *Router {
	return &Router{
		app: app,
	}
}

// App trả về fiber app gốc (dùng cho các route ngoài /api/v1 như /metrics)
func (r *Router) App() *fiber.App {
	return r.app
}

// RegisterRouteWithMiddleware đăng ký route kèm chuỗi middleware riêng của route đó.
//
// Middleware được gắn vào chính route (không dùng group.Use) vì các route cùng prefix
// có thể yêu cầu vai trò khác nhau, ví dụ /jd vừa có route của HR vừa có route của ứng viên.
//
// Ví dụ:
//
//	hrOnly := middleware.AuthMiddleware(authmodels.RoleHR)
//	RegisterRouteWithMiddleware(v1, "/jd", "GET", "/getJD", []fiber.Handler{hrOnly}, h.HandleListOwnJobs)
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	fullPath := prefix + path
	switch len(middlewares) {
	case 0:
		router.Add([]string{method}, fullPath, handler)
	case 1:
		router.Add([]string{method}, fullPath, middlewares[0], handler)
	default:
		// Các route trùng method + path được xếp chồng, c.Next() đi tiếp sang route kế
		for _, mw := range middlewares {
			router.Add([]string{method}, fullPath, mw)
		}
		router.Add([]string{method}, fullPath, handler)
	}
}

// RegisterFunc là hàm đăng ký route của một domain (do domain/router export).
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes thiết lập tất cả các route cho ứng dụng. Caller truyền lần lượt Register của từng domain để tránh import cycle.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)
	r := NewRouter(app)
	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return err
		}
	}
	return nil
}
