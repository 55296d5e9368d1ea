package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/apfdpotter-ops/dryer-dashboard/internal/models"
	"github.com/apfdpotter-ops/dryer-dashboard/internal/service"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastGenUsername    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	return m.genTokenToken, m.genTokenErr
}

func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockSampler struct {
	status    models.SamplerStatus
	startErr  error
	stopErr   error
	sampleErr error

	sampleFile string
	logs       []string
	logsErr    error
	latest     string
	latestErr  error
	tailRows   []string
	tailErr    error

	startCalled  int
	stopCalled   int
	sampleCalled int
	lastTailName string
	lastTailN    int
}

func (m *mockSampler) Start(ctx context.Context) error {
	m.startCalled++
	return m.startErr
}

func (m *mockSampler) Stop(ctx context.Context) error {
	m.stopCalled++
	return m.stopErr
}

func (m *mockSampler) IsRunning() bool { return m.status.Running }

func (m *mockSampler) CurrentFile() string { return m.status.CurrentFile }

func (m *mockSampler) Status() models.SamplerStatus { return m.status }

func (m *mockSampler) SampleOnce(ctx context.Context) (string, error) {
	m.sampleCalled++
	return m.sampleFile, m.sampleErr
}

func (m *mockSampler) ListLogs() ([]string, error) { return m.logs, m.logsErr }

func (m *mockSampler) LatestRow() (string, error) { return m.latest, m.latestErr }

func (m *mockSampler) TailRows(name string, n int) ([]string, error) {
	m.lastTailName = name
	m.lastTailN = n
	return m.tailRows, m.tailErr
}

type mockDashboard struct {
	data    models.DashboardData
	reading models.Reading
}

func (m *mockDashboard) Snapshot() models.DashboardData { return m.data }

func (m *mockDashboard) RawReading() models.Reading { return m.reading }

type mockEventLog struct {
	resp     []models.DryerEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.DryerEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
