package mockupstream

import (
	"net"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
)

const (
	DashboardsPath   = "/api/config/v1/dashboards/"
	MetricsQueryPath = "/api/v2/metrics/query"
)

// Request is a metrics query received by the fake platform.
type Request struct {
	Selector   string
	Resolution string
	Accept     string
}

// Server is a fake monitoring platform serving the dashboard config API and
// the metrics v2 query API.
type Server struct {
	app   *fiber.App
	ln    net.Listener
	token string

	mu         sync.Mutex
	dashboards map[string]string
	series     map[string]string
	failures   map[string]int
	requests   []Request
}

// New configures the routes. Requests must carry "Api-Token <token>".
func New(token string) *Server {
	s := &Server{
		token:      token,
		dashboards: map[string]string{},
		series:     map[string]string{},
		failures:   map[string]int{},
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())
	app.Use(s.authorize)

	app.Get(DashboardsPath+":id", s.getDashboard)
	app.Get(MetricsQueryPath, s.queryMetrics)

	s.app = app
	return s
}

// Start listens on a random local port and returns the base URL.
func (s *Server) Start() (string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	s.ln = ln

	go func() {
		_ = s.app.Listener(ln)
	}()

	return "http://" + ln.Addr().String(), nil
}

// Close stops the server.
func (s *Server) Close() error {
	return s.app.Shutdown()
}

// AddDashboard serves body for GET <DashboardsPath><id>.
func (s *Server) AddDashboard(id, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dashboards[id] = body
}

// AddSeries serves csv for a metrics query with the given selector.
func (s *Server) AddSeries(selector, csv string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.series[selector] = csv
}

// FailSelector answers queries for selector with status.
func (s *Server) FailSelector(selector string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[selector] = status
}

// Requests returns the metrics queries received so far, in order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Server) authorize(c *fiber.Ctx) error {
	if c.Get(fiber.HeaderAuthorization) != "Api-Token "+s.token {
		return fiber.NewError(fiber.StatusUnauthorized, "missing or invalid token")
	}
	return c.Next()
}

func (s *Server) getDashboard(c *fiber.Ctx) error {
	s.mu.Lock()
	body, ok := s.dashboards[c.Params("id")]
	s.mu.Unlock()
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "dashboard not found")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.SendString(body)
}

func (s *Server) queryMetrics(c *fiber.Ctx) error {
	req := Request{
		Selector:   utils.CopyString(c.Query("metricSelector")),
		Resolution: utils.CopyString(c.Query("resolution")),
		Accept:     utils.CopyString(c.Get(fiber.HeaderAccept)),
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	status, failed := s.failures[req.Selector]
	body, ok := s.series[req.Selector]
	s.mu.Unlock()

	if failed {
		return fiber.NewError(status, "metric query failed")
	}
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "unknown metric selector")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.SendString(body)
}
