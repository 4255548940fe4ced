// main.go
package main

import (
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	jsoniter "github.com/json-iterator/go"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

// --- Constants ---

const (
	defaultPort      = "3000"
	defaultDataDir   = "data"
	defaultIndexPath = "products.bleve"

	dateLayout = "2006-01-02"
)

// --- Global Variables ---

var (
	dataDir      = defaultDataDir
	templatesDir = "templates"
)

// envOr reads an environment variable with a fallback default.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// --- Metrics ---

var httpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{Name: "http_requests_total", Help: "Total number of HTTP requests."},
	[]string{"method", "path", "status_code"},
)

func metricsMiddleware(c *fiber.Ctx) error {
	err := c.Next() // Execute route handler first
	statusCode := c.Response().StatusCode()
	if err != nil {
		var e *fiber.Error
		if errors.As(err, &e) {
			statusCode = e.Code
		} else if statusCode < 400 {
			statusCode = fiber.StatusInternalServerError
		}
	}
	routePath := "unknown"
	if r := c.Route(); r != nil {
		routePath = r.Path
	}
	httpRequestsTotal.WithLabelValues(c.Method(), routePath, strconv.Itoa(statusCode)).Inc()
	return err
}

func metricsHandler(c *fiber.Ctx) error {
	return adaptor.HTTPHandler(promhttp.Handler())(c)
}

// --- Error Pages ---

func errorHandler(c *fiber.Ctx, err error) error {
	var e *fiber.Error
	if errors.As(err, &e) {
		return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
	}
	log.Printf("ERROR: [%s] %s - Unhandled Error: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).SendFile(filepath.Join(templatesDir, "500.html"))
}

func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).SendFile(filepath.Join(templatesDir, "404.html"))
}

// --- App Setup ---

func setupApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
		JSONEncoder:  jsoniter.Marshal,
		JSONDecoder:  jsoniter.Unmarshal,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: envOr("CORS_ORIGIN", "*"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${ip}:${port} ${status} - ${method} ${path} (${latency})\n",
		TimeFormat: "2006/01/02 15:04:05",
	}))
	app.Use(metricsMiddleware)
	app.Get("/metrics", metricsHandler)

	// --- Pages ---
	app.Get("/", loginPageHandler) // fiber's Get registers HEAD as well
	app.Get("/ping", pingHandler)
	app.Post("/login", loginHandler)
	app.Get("/admindashboard", pageHandler("admindashboard.html"))
	app.Get("/empdashboard", pageHandler("empdashboard.html"))
	app.Get("/pos", pageHandler("pos.html"))
	app.Get("/pg", pageHandler("pg.html"))
	app.Post("/mark_attendance", markAttendanceHandler)

	// --- API Routes ---
	api := app.Group("/api")
	api.Get("/employees", getEmployeesHandler)
	api.Post("/employees", addEmployeeHandler)
	api.Delete("/employees/:emp_code", deleteEmployeeHandler)
	api.Get("/today", todayHandler)
	api.Get("/products", getProductsHandler)
	api.Get("/products/search", searchProductsHandler)
	api.Post("/add_product", addProductHandler)
	api.Delete("/products/:product_name", deleteProductHandler)
	api.Get("/sales", getSalesHandler)
	api.Post("/save_sales", saveSalesHandler)
	api.Get("/attendance", getAttendanceHandler)

	// --- Static File Server ---
	app.Static("/static", "./static")

	// Anything left unmatched gets the not-found page.
	app.Use(notFoundHandler)

	return app
}

// localIP finds the LAN address this host would route out on, so the
// startup log shows a URL reachable from other devices on the network.
// Falls back to loopback when the host has no route out.
func localIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

// --- Main Application ---

func main() {
	log.Println("INFO: Application starting...")

	if err := godotenv.Load(); err != nil {
		log.Println("INFO: No .env file found, using process environment")
	}
	dataDir = envOr("DATA_DIR", defaultDataDir)

	if err := ensureTables(); err != nil {
		log.Fatalf("FATAL: Table initialization failed: %v", err)
	}

	var err error
	idx, err = initializeProductIndex(envOr("PRODUCT_INDEX_PATH", defaultIndexPath))
	if err != nil {
		log.Fatalf("FATAL: Product search index initialization failed: %v", err)
	}
	defer func() {
		log.Println("INFO: Closing product search index...")
		if err := idx.Close(); err != nil {
			log.Printf("ERROR: Failed to close product search index cleanly: %v", err)
		}
	}()
	if err := reindexProducts(); err != nil {
		log.Printf("WARN: Product reindex failed, search results may be stale: %v", err)
	}

	app := setupApp()

	interruptChan := make(chan os.Signal, 1)
	signal.Notify(interruptChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-interruptChan
		log.Printf("INFO: Received signal: %s. Starting graceful shutdown...", sig)
		if err := app.Shutdown(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("WARN: Server shutdown failed: %v", err)
		} else {
			log.Println("INFO: Server gracefully shut down.")
		}
	}()

	listenAddr := ":" + envOr("PORT", defaultPort)
	log.Printf("INFO: Starting server on http://%s%s (reachable on the local network)", localIP(), listenAddr)
	if err := app.Listen(listenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("ERROR: Server listener failed: %v", err)
	}

	log.Println("INFO: Application shutdown complete.")
}
