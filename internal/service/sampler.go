package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/apfdpotter-ops/dryer-dashboard/internal/logger"
	"github.com/apfdpotter-ops/dryer-dashboard/internal/models"
	"github.com/apfdpotter-ops/dryer-dashboard/internal/repository"
	"github.com/apfdpotter-ops/dryer-dashboard/internal/sensors"
)

// Session log naming: fixed-width UTC timestamp so lexicographic order on the
// name is creation order.
const (
	logFilePrefix       = "dryer-log-"
	logFileExt          = ".csv"
	fileTimestampLayout = "20060102T150405Z"

	defaultSampleInterval = 15 * time.Minute

	// Stop waits this long for the in-flight tick before abandoning the
	// goroutine to finish on its own.
	stopWait = 2 * time.Second
)

// Audit event types.
const (
	EventLoggerStart = "LOGGER_START"
	EventLoggerStop  = "LOGGER_STOP"
	EventSample      = "SAMPLE"
	EventError       = "ERROR"
)

// SamplerService owns the periodic sample-and-append loop and the session log
// file lifecycle.
//
// Locking: mu guards the control state (running flag, channels, active file);
// fileMu serializes every open-append-close against the log files. The loop
// goroutine only ever takes fileMu, so a Stop caller holding mu can never
// deadlock against it.
type SamplerService struct {
	src    sensors.Source
	auger  *AugerState
	events repository.EventRepo
	log    *logger.Logger

	dir      string
	interval time.Duration

	mu         sync.Mutex
	running    bool
	stopCh     chan struct{}
	doneCh     chan struct{}
	activeFile string // full path; "" until first session or on-demand sample

	fileMu sync.Mutex
}

func NewSamplerService(src sensors.Source, auger *AugerState, events repository.EventRepo, log *logger.Logger, dir string, interval time.Duration) *SamplerService {
	if interval <= 0 {
		interval = defaultSampleInterval
	}
	return &SamplerService{
		src:      src,
		auger:    auger,
		events:   events,
		log:      log,
		dir:      dir,
		interval: interval,
	}
}

// Start begins a new logging session: fresh timestamped file, header, one
// immediate sample, then the periodic loop. Calling Start while running is a
// no-op. File I/O failures are returned to the caller and leave the sampler
// stopped.
func (s *SamplerService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	path, err := s.createLogFile()
	if err != nil {
		return err
	}
	s.activeFile = path

	// The file stays active even if this fails, so SampleOnce can retry.
	if err := s.appendSample(path); err != nil {
		return fmt.Errorf("initial sample: %w", err)
	}

	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.running = true
	go s.run(s.stopCh, s.doneCh)

	s.log.Infow("sampling started", "file", filepath.Base(path), "interval", s.interval)
	s.logEvent(ctx, EventLoggerStart, "sampling session started", map[string]any{
		"file":             filepath.Base(path),
		"interval_seconds": int(s.interval.Seconds()),
	})
	return nil
}

// Stop signals the loop and waits a bounded time for the in-flight tick.
// The active file reference is preserved so CurrentFile and SampleOnce keep
// working after a stop. Calling Stop while stopped is a no-op.
func (s *SamplerService) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	close(s.stopCh)
	s.running = false
	done := s.doneCh
	s.mu.Unlock()

	select {
	case <-done:
	case <-time.After(stopWait):
		s.log.Warnw("sampling loop did not stop in time; abandoning it to finish its tick")
	}

	s.log.Infow("sampling stopped")
	s.logEvent(ctx, EventLoggerStop, "sampling session stopped", nil)
	return nil
}

func (s *SamplerService) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// CurrentFile returns the active log's file name (not path), or "" if no
// session or on-demand sample has created one yet.
func (s *SamplerService) CurrentFile() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeFile == "" {
		return ""
	}
	return filepath.Base(s.activeFile)
}

func (s *SamplerService) Status() models.SamplerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := models.SamplerStatus{
		Running:         s.running,
		IntervalSeconds: int(s.interval.Seconds()),
	}
	if s.activeFile != "" {
		st.CurrentFile = filepath.Base(s.activeFile)
	}
	return st
}

// SampleOnce performs exactly one capture-and-append cycle against the active
// file, creating one (with header) if none exists yet. It works whether or
// not the periodic loop is running and returns the file name written.
func (s *SamplerService) SampleOnce(ctx context.Context) (string, error) {
	s.mu.Lock()
	path := s.activeFile
	if path == "" {
		created, err := s.createLogFile()
		if err != nil {
			s.mu.Unlock()
			return "", err
		}
		s.activeFile = created
		path = created
	}
	s.mu.Unlock()

	if err := s.appendSample(path); err != nil {
		return "", err
	}

	name := filepath.Base(path)
	s.logEvent(ctx, EventSample, "on-demand sample written", map[string]any{"file": name})
	return name, nil
}

// ListLogs returns the log directory's session files, newest first.
func (s *SamplerService) ListLogs() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read log dir %q: %w", s.dir, err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, logFilePrefix) || !strings.HasSuffix(name, logFileExt) {
			continue
		}
		names = append(names, name)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// LatestRow returns the last data row (raw CSV text, header excluded) of the
// newest log file, or "" when there is no log or no data row yet.
func (s *SamplerService) LatestRow() (string, error) {
	names, err := s.ListLogs()
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", nil
	}

	lines, err := s.readDataRows(names[0])
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", nil
	}
	return lines[len(lines)-1], nil
}

// TailRows returns the last n data rows of a named log file (all rows when
// n <= 0). The name must be a bare session-log file name.
func (s *SamplerService) TailRows(name string, n int) ([]string, error) {
	if filepath.Base(name) != name || !strings.HasPrefix(name, logFilePrefix) || !strings.HasSuffix(name, logFileExt) {
		return nil, fmt.Errorf("invalid log name %q", name)
	}
	rows, err := s.readDataRows(name)
	if err != nil {
		return nil, err
	}
	if n > 0 && len(rows) > n {
		rows = rows[len(rows)-n:]
	}
	return rows, nil
}

// run is the periodic loop. Tick failures are logged and the loop keeps
// going; nothing in here may kill the goroutine.
func (s *SamplerService) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	t := time.NewTicker(s.interval)
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case <-t.C:
			s.mu.Lock()
			path := s.activeFile
			s.mu.Unlock()

			if err := s.appendSample(path); err != nil {
				s.log.Errorw("sample tick failed", "err", err)
				s.logEvent(context.Background(), EventError, "sample tick failed", map[string]any{
					"error": err.Error(),
				})
			}
		}
	}
}

// appendSample captures one reading, derives the row and appends it to path.
// The whole open-write-close sequence runs under fileMu so loop ticks and
// on-demand samples never interleave partial rows.
func (s *SamplerService) appendSample(path string) error {
	row := deriveRow(s.safeRead(), s.auger.Pct())

	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log %q: %w", filepath.Base(path), err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(row); err != nil {
		_ = f.Close()
		return fmt.Errorf("write row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush row: %w", err)
	}
	return f.Close()
}

// safeRead pulls a snapshot from the sensor source. The source contract says
// Read never fails, but a total failure still must not kill a tick: it
// degrades to an empty reading.
func (s *SamplerService) safeRead() (r models.Reading) {
	defer func() {
		if p := recover(); p != nil {
			s.log.Errorw("sensor source panicked", "panic", p)
			r = models.Reading{Timestamp: time.Now().UTC()}
		}
	}()
	r = s.src.Read()
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
	return r
}

// createLogFile ensures the log directory exists, names a new session file
// after the current UTC instant and writes the header row once. An existing
// file with the same name is left untouched.
func (s *SamplerService) createLogFile() (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create log dir %q: %w", s.dir, err)
	}

	name := logFilePrefix + time.Now().UTC().Format(fileTimestampLayout) + logFileExt
	path := filepath.Join(s.dir, name)

	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("stat log %q: %w", name, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return path, nil
		}
		return "", fmt.Errorf("create log %q: %w", name, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(csvColumns); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("flush header: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// readDataRows returns the non-blank lines of a log file with the header
// stripped. Reads take fileMu so a row mid-append is never observed.
func (s *SamplerService) readDataRows(name string) ([]string, error) {
	s.fileMu.Lock()
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	s.fileMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("read log %q: %w", name, err)
	}

	var lines []string
	for _, ln := range strings.Split(string(data), "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			lines = append(lines, ln)
		}
	}
	if len(lines) <= 1 {
		return nil, nil // header only, or empty
	}
	return lines[1:], nil
}

// logEvent appends to the audit trail best-effort; the sampler never fails an
// operation because the event store is down.
func (s *SamplerService) logEvent(ctx context.Context, typ, desc string, meta map[string]any) {
	if s.events == nil {
		return
	}
	ev := models.DryerEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        typ,
		Description: desc,
	}
	if meta != nil {
		ev.Metadata = meta
	}
	if err := s.events.Append(ctx, ev); err != nil {
		s.log.Warnw("append audit event failed", "type", typ, "err", err)
	}
}
