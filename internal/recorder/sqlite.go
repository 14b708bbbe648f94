package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists market history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while ticks are written.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS price_ticks (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			symbol         TEXT,
			source         TEXT,
			trading_day    TEXT,
			session        TEXT,
			current_price  REAL,
			close_price    REAL,
			change_percent REAL,
			day_high       REAL,
			day_low        REAL,
			volume         REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ticks_ts ON price_ticks(timestamp)`,

		`CREATE TABLE IF NOT EXISTS session_transitions (
			id                     INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp              INTEGER NOT NULL,
			from_session           TEXT,
			to_session             TEXT,
			previous_segment_close REAL,
			close_price            REAL,
			rolled_over            INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transitions_ts ON session_transitions(timestamp)`,

		`CREATE TABLE IF NOT EXISTS feed_items (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			kind      TEXT,
			item_id   TEXT,
			title     TEXT,
			category  TEXT,
			sentiment TEXT,
			impact    INTEGER,
			source    TEXT,
			UNIQUE(kind, title)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_feed_ts ON feed_items(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordTick(evt *TickEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := evt.Price
	_, err := r.db.Exec(`INSERT INTO price_ticks
		(timestamp, symbol, source, trading_day, session,
		 current_price, close_price, change_percent, day_high, day_low, volume)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		p.AsOf.Unix(), p.Symbol, evt.Source, p.TradingDay, p.Session.String(),
		p.Current, p.ClosePrice, p.ChangePercent, p.DayHigh, p.DayLow, p.Volume,
	)
	return err
}

func (r *SQLiteRecorder) RecordTransition(evt *SessionTransition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rolled := 0
	if evt.RolledOver {
		rolled = 1
	}
	_, err := r.db.Exec(`INSERT INTO session_transitions
		(timestamp, from_session, to_session, previous_segment_close, close_price, rolled_over)
		VALUES (?,?,?,?,?,?)`,
		evt.At.Unix(), evt.From.String(), evt.To.String(),
		evt.PreviousSegmentClose, evt.ClosePrice, rolled,
	)
	return err
}

// RecordFeedItem stores an item once; a repeated title of the same kind is ignored.
func (r *SQLiteRecorder) RecordFeedItem(evt *FeedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT OR IGNORE INTO feed_items
		(timestamp, kind, item_id, title, category, sentiment, impact, source)
		VALUES (?,?,?,?,?,?,?,?)`,
		evt.Timestamp.Unix(), evt.Kind, evt.ItemID, evt.Title,
		string(evt.Category), string(evt.Sentiment), evt.Impact, evt.Source,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
