package service

import (
	"context"
	"time"

	"github.com/apfdpotter-ops/dryer-dashboard/internal/logger"
	"github.com/apfdpotter-ops/dryer-dashboard/internal/models"
	"github.com/apfdpotter-ops/dryer-dashboard/internal/repository"
	"github.com/apfdpotter-ops/dryer-dashboard/internal/sensors"
)

// Sampler is the background sampling/logging engine: a periodic loop that
// captures readings and appends them to the session CSV log.
type Sampler interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	IsRunning() bool
	CurrentFile() string
	Status() models.SamplerStatus
	SampleOnce(ctx context.Context) (string, error)
	ListLogs() ([]string, error)
	LatestRow() (string, error)
	TailRows(name string, n int) ([]string, error)
}

// Dashboard exposes kiosk-shaped reads: converted units plus the raw snapshot.
type Dashboard interface {
	Snapshot() models.DashboardData
	RawReading() models.Reading
}

// Auger is the in-memory auger speed percentage, handed to whoever needs it
// via this accessor rather than shared globals.
type Auger interface {
	Pct() float64
	SetPct(pct float64) error
}

// EventLog exposes the sampling engine's audit trail with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.DryerEvent, error)
}

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// LogFilter narrows audit-event queries by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "LOGGER_START", "LOGGER_STOP", "SAMPLE", "ERROR"
}

// Config carries the service-level knobs resolved from configuration.
type Config struct {
	LogDir         string
	SampleInterval time.Duration
	SigningKey     string
}

// Service aggregates all sub-services.
type Service struct {
	Sampler
	Dashboard
	Auger
	EventLog
	Authorization
}

// NewService wires the sensor source and repository layer into concrete
// services. The auger state is shared between its HTTP accessor and the
// sampler, which serializes the current percentage into every log row.
func NewService(repos *repository.Repository, src sensors.Source, log *logger.Logger, cfg Config) *Service {
	auger := NewAugerState()
	return &Service{
		Sampler:       NewSamplerService(src, auger, repos.EventRepo, log, cfg.LogDir, cfg.SampleInterval),
		Dashboard:     NewDashboardService(src),
		Auger:         auger,
		EventLog:      NewEventLogService(repos.EventRepo),
		Authorization: NewAuthService(repos.Auth, cfg.SigningKey),
	}
}
