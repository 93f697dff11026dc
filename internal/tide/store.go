package tide

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"github.com/mlebrun/sailcast/internal/models"
)

// Store keeps the tabulated tide events in sqlite. Monthly tide table
// files (MM_YYYY.json, a map of ISO date to event tuples) are imported
// once and queried per day afterwards.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the tide database at dbPath
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating tide database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening tide database: %w", err)
	}

	// Set pragmas for performance
	_, _ = db.Exec("PRAGMA journal_mode=WAL")
	_, _ = db.Exec("PRAGMA synchronous=NORMAL")

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS tide_events (
			day TEXT NOT NULL,
			type TEXT NOT NULL,
			time TEXT NOT NULL,
			height REAL NOT NULL,
			coefficient INTEGER
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_tide_events_day_time ON tide_events(day, type, time);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tide_events table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// ImportFile loads one monthly tide table JSON file into the store and
// returns the number of events imported. Entries with malformed heights
// or times are skipped.
func (s *Store) ImportFile(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading tide table %s: %w", path, err)
	}

	var days map[string][][]json.RawMessage
	if err := json.Unmarshal(raw, &days); err != nil {
		return 0, fmt.Errorf("parsing tide table %s: %w", path, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting import transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO tide_events (day, type, time, height, coefficient)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing import statement: %w", err)
	}
	defer stmt.Close()

	imported := 0
	for day, entries := range days {
		for _, entry := range entries {
			event, ok := parseRawEntry(entry)
			if !ok {
				log.Warn("skipping malformed tide entry", "day", day)
				continue
			}
			var coef any
			if event.Coefficient != nil {
				coef = *event.Coefficient
			}
			if _, err := stmt.Exec(day, string(event.Type), event.Time, event.Height, coef); err != nil {
				return imported, fmt.Errorf("inserting tide event for %s: %w", day, err)
			}
			imported++
		}
	}

	if err := tx.Commit(); err != nil {
		return imported, fmt.Errorf("committing tide import: %w", err)
	}
	return imported, nil
}

// ImportDir imports every *.json tide table found in dir
func (s *Store) ImportDir(dir string) (int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return 0, fmt.Errorf("scanning tide directory %s: %w", dir, err)
	}

	total := 0
	for _, path := range paths {
		n, err := s.ImportFile(path)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// EventsForDay returns the day's tide events ordered by time
func (s *Store) EventsForDay(date time.Time) ([]models.TideEvent, error) {
	rows, err := s.db.Query(`
		SELECT type, time, height, coefficient
		FROM tide_events
		WHERE day = ?
		ORDER BY time
	`, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("querying tide events: %w", err)
	}
	defer rows.Close()

	var events []models.TideEvent
	for rows.Next() {
		var (
			eventType string
			clock     string
			height    float64
			coef      sql.NullInt64
		)
		if err := rows.Scan(&eventType, &clock, &height, &coef); err != nil {
			return nil, fmt.Errorf("scanning tide event: %w", err)
		}
		event := models.TideEvent{
			Type:   models.TideType(eventType),
			Time:   clock,
			Height: height,
		}
		if coef.Valid {
			c := int(coef.Int64)
			event.Coefficient = &c
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// ReadingAt interpolates the tide height at t from the day's stored
// events.
func (s *Store) ReadingAt(t time.Time) (*Reading, error) {
	events, err := s.EventsForDay(t)
	if err != nil {
		return nil, err
	}
	return EstimateAt(t, events)
}

// parseRawEntry decodes one [type, time, height, coefficient?] tuple.
// Heights may be encoded as numbers or strings.
func parseRawEntry(entry []json.RawMessage) (models.TideEvent, bool) {
	if len(entry) < 3 {
		return models.TideEvent{}, false
	}

	var eventType, clock string
	if err := json.Unmarshal(entry[0], &eventType); err != nil {
		return models.TideEvent{}, false
	}
	if err := json.Unmarshal(entry[1], &clock); err != nil {
		return models.TideEvent{}, false
	}
	if _, ok := models.ParseClockMinutes(clock); !ok {
		return models.TideEvent{}, false
	}

	var height float64
	if err := json.Unmarshal(entry[2], &height); err != nil {
		var heightStr string
		if err := json.Unmarshal(entry[2], &heightStr); err != nil {
			return models.TideEvent{}, false
		}
		parsed, err := strconv.ParseFloat(heightStr, 64)
		if err != nil {
			return models.TideEvent{}, false
		}
		height = parsed
	}

	event := models.TideEvent{
		Type:   models.TideType(eventType),
		Time:   clock,
		Height: height,
	}
	if len(entry) > 3 {
		var coef int
		if err := json.Unmarshal(entry[3], &coef); err == nil {
			event.Coefficient = &coef
		}
	}
	return event, true
}
