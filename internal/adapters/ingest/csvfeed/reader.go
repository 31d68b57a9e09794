package csvfeed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"storewatch/internal/core/uptime"
	"storewatch/internal/platform/logger"
)

// poll timestamps look like "2023-01-25 10:05:52.276561 UTC"
var pollLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// feed wraps a csv file with a normalized header index
type feed struct {
	f    *os.File
	r    *csv.Reader
	cols map[string]int
	line int
}

func openFeed(path string, required ...string) (*feed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csvfeed: read header of %s: %w", path, err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range required {
		if _, ok := lookup(cols, name); !ok {
			_ = f.Close()
			return nil, fmt.Errorf("csvfeed: %s missing column %q", path, name)
		}
	}
	return &feed{f: f, r: r, cols: cols, line: 1}, nil
}

// lookup resolves a column by name or a known alias
func lookup(cols map[string]int, name string) (int, bool) {
	if i, ok := cols[name]; ok {
		return i, true
	}
	switch name {
	case "day_of_week":
		if i, ok := cols["dayofweek"]; ok {
			return i, true
		}
	case "timestamp_utc":
		if i, ok := cols["timestamp"]; ok {
			return i, true
		}
	}
	return 0, false
}

func (fd *feed) next() ([]string, error) {
	rec, err := fd.r.Read()
	if err != nil {
		return nil, err
	}
	fd.line++
	return rec, nil
}

func (fd *feed) col(rec []string, name string) string {
	i, ok := lookup(fd.cols, name)
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func (fd *feed) close() error { return fd.f.Close() }

// ReadTimezones streams the timezone feed in batches of chunk rows
func ReadTimezones(path string, chunk int, fn func([]TimezoneRecord) error) (Stats, error) {
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	fd, err := openFeed(path, "store_id", "timezone_str")
	if err != nil {
		return Stats{}, err
	}
	defer func() { _ = fd.close() }()
	log := logger.Named("csvfeed")

	var st Stats
	batch := make([]TimezoneRecord, 0, chunk)
	for {
		rec, err := fd.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return st, err
		}
		st.Rows++

		id := fd.col(rec, "store_id")
		tz := fd.col(rec, "timezone_str")
		if _, err := uuid.Parse(id); err != nil {
			st.Skipped++
			log.Warn().Int("line", fd.line).Str("store_id", id).Msg("bad store id in timezone feed")
			continue
		}
		if tz == "" {
			st.Skipped++
			log.Warn().Int("line", fd.line).Str("store_id", id).Msg("empty timezone")
			continue
		}
		batch = append(batch, TimezoneRecord{StoreID: id, Timezone: tz})
		if len(batch) >= chunk {
			if err := fn(batch); err != nil {
				return st, err
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := fn(batch); err != nil {
			return st, err
		}
	}
	return st, nil
}

// ReadHours streams the business hours feed in batches of chunk rows
func ReadHours(path string, chunk int, fn func([]HoursRecord) error) (Stats, error) {
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	fd, err := openFeed(path, "store_id", "day_of_week", "start_time_local", "end_time_local")
	if err != nil {
		return Stats{}, err
	}
	defer func() { _ = fd.close() }()
	log := logger.Named("csvfeed")

	var st Stats
	batch := make([]HoursRecord, 0, chunk)
	for {
		rec, err := fd.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return st, err
		}
		st.Rows++

		id := fd.col(rec, "store_id")
		if _, err := uuid.Parse(id); err != nil {
			st.Skipped++
			log.Warn().Int("line", fd.line).Str("store_id", id).Msg("bad store id in hours feed")
			continue
		}
		day, err := strconv.Atoi(fd.col(rec, "day_of_week"))
		if err != nil || day < 0 || day > 6 {
			st.Skipped++
			log.Warn().Int("line", fd.line).Str("store_id", id).Msg("bad day of week")
			continue
		}
		start, err := uptime.ParseClock(fd.col(rec, "start_time_local"))
		if err != nil {
			st.Skipped++
			log.Warn().Int("line", fd.line).Str("store_id", id).Msg("bad start time")
			continue
		}
		end, err := uptime.ParseClock(fd.col(rec, "end_time_local"))
		if err != nil {
			st.Skipped++
			log.Warn().Int("line", fd.line).Str("store_id", id).Msg("bad end time")
			continue
		}
		batch = append(batch, HoursRecord{StoreID: id, Day: day, Start: start, End: end})
		if len(batch) >= chunk {
			if err := fn(batch); err != nil {
				return st, err
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := fn(batch); err != nil {
			return st, err
		}
	}
	return st, nil
}

// ReadPolls streams the status poll feed in batches of chunk rows
func ReadPolls(path string, chunk int, fn func([]PollRecord) error) (Stats, error) {
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	fd, err := openFeed(path, "store_id", "timestamp_utc", "status")
	if err != nil {
		return Stats{}, err
	}
	defer func() { _ = fd.close() }()
	log := logger.Named("csvfeed")

	var st Stats
	batch := make([]PollRecord, 0, chunk)
	for {
		rec, err := fd.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return st, err
		}
		st.Rows++

		id := fd.col(rec, "store_id")
		if _, err := uuid.Parse(id); err != nil {
			st.Skipped++
			log.Warn().Int("line", fd.line).Str("store_id", id).Msg("bad store id in poll feed")
			continue
		}
		at, err := ParseTimestamp(fd.col(rec, "timestamp_utc"))
		if err != nil {
			st.Skipped++
			log.Warn().Int("line", fd.line).Str("store_id", id).Msg("bad poll timestamp")
			continue
		}
		status, ok := uptime.ParseStatus(fd.col(rec, "status"))
		if !ok {
			st.Skipped++
			log.Warn().Int("line", fd.line).Str("store_id", id).Msg("bad poll status")
			continue
		}
		batch = append(batch, PollRecord{StoreID: id, At: at, Status: status})
		if len(batch) >= chunk {
			if err := fn(batch); err != nil {
				return st, err
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := fn(batch); err != nil {
			return st, err
		}
	}
	return st, nil
}

// ParseTimestamp parses a poll timestamp, tolerating a trailing " UTC"
// zone label and fractional seconds
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), " UTC"))
	for _, layout := range pollLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("csvfeed: unparseable timestamp %q", s)
}
