package fitconv

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tormoder/fit"
	"go.uber.org/multierr"

	"github.com/samuli/bike-logs/internal/session"
)

var (
	ErrNoSessions  = errors.New("activity file has no session message")
	ErrNoTimestamp = errors.New("session has no timestamp")
)

// Result lists what a conversion run did, by input file name.
type Result struct {
	Converted []string
	Existing  []string
	Failed    []string
}

// ConvertDir converts every .fit file in inDir into a session JSON file in
// outDir. Files whose output already exists are left alone. A failing file
// does not stop the others; all failures are returned combined.
func ConvertDir(inDir, outDir string) (Result, error) {
	var res Result

	entries, err := os.ReadDir(inDir)
	if err != nil {
		return res, fmt.Errorf("read FIT directory: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return res, fmt.Errorf("create output directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".fit") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var errs error
	for _, name := range names {
		outPath := filepath.Join(outDir, OutputName(name))
		if _, err := os.Stat(outPath); err == nil {
			res.Existing = append(res.Existing, name)
			continue
		}

		if err := convertFile(filepath.Join(inDir, name), outPath); err != nil {
			log.Warnf("Error reading %s: %v", name, err)
			res.Failed = append(res.Failed, name)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		log.Debugf("converted %s -> %s", name, outPath)
		res.Converted = append(res.Converted, name)
	}
	return res, errs
}

// OutputName maps "2021-02-01-10-00-00.fit" to "2021-02-01-10-00-00.json".
func OutputName(fitName string) string {
	return strings.TrimSuffix(fitName, filepath.Ext(fitName)) + ".json"
}

func convertFile(inPath, outPath string) error {
	f, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open FIT file: %w", err)
	}
	defer f.Close()

	messages, err := Convert(f)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := session.WriteMessages(&buf, messages...); err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}
	return os.WriteFile(outPath, buf.Bytes(), 0o644)
}

// Convert decodes a FIT activity and returns one message per session.
func Convert(r io.Reader) ([]session.Message, error) {
	decoded, err := fit.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode FIT file: %w", err)
	}
	activity, err := decoded.Activity()
	if err != nil {
		return nil, fmt.Errorf("activity FIT expected: %w", err)
	}
	if len(activity.Sessions) == 0 {
		return nil, ErrNoSessions
	}

	messages := make([]session.Message, 0, len(activity.Sessions))
	for _, s := range activity.Sessions {
		rec, err := SessionRecord(s)
		if err != nil {
			return nil, err
		}
		messages = append(messages, session.NewMessage(rec))
	}
	return messages, nil
}

// SessionRecord maps a FIT session message onto a Record. Invalid FIT
// values become zero. Average speed is stored in meters per hour.
func SessionRecord(s *fit.SessionMsg) (session.Record, error) {
	timestamp := validTimeOrZero(s.Timestamp)
	if timestamp.IsZero() {
		return session.Record{}, ErrNoTimestamp
	}
	start := validTimeOrZero(s.StartTime)
	if start.IsZero() {
		start = timestamp
	}

	speed := finiteOrZero(s.GetEnhancedAvgSpeedScaled())
	if speed == 0 {
		speed = finiteOrZero(s.GetAvgSpeedScaled())
	}

	return session.Record{
		StartTime:      start.UTC(),
		Timestamp:      timestamp.UTC(),
		DistanceMeters: finiteOrZero(s.GetTotalDistanceScaled()),
		TimerSeconds:   finiteOrZero(s.GetTotalTimerTimeScaled()),
		AvgSpeed:       speed * 3600,
		AvgTemperature: float64(validInt8(s.AvgTemperature)),
		TotalAscent:    float64(validUint16(s.TotalAscent)),
		TotalDescent:   float64(validUint16(s.TotalDescent)),
	}, nil
}

func validTimeOrZero(t time.Time) time.Time {
	if t.IsZero() || fit.IsBaseTime(t) {
		return time.Time{}
	}
	return t
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func validUint16(v uint16) uint16 {
	if v == 0xFFFF {
		return 0
	}
	return v
}

func validInt8(v int8) int8 {
	if v == 0x7F {
		return 0
	}
	return v
}
