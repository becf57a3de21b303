package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"DominanceSentinel/internal/model"
)

// SQLiteRecorder persists analysis history to a SQLite database.
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

	// WAL mode so dashboards can read while the bot writes.
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
		`CREATE TABLE IF NOT EXISTS analyses (
			id           TEXT PRIMARY KEY,
			timestamp    INTEGER NOT NULL,
			pair         TEXT NOT NULL,
			as_of        INTEGER NOT NULL,
			dominance    REAL,
			rsi          REAL,
			macd_hist    REAL,
			ma_short     REAL,
			ma_long      REAL,
			crossover    TEXT,
			rsi_signal   TEXT,
			macd_signal  TEXT,
			trend_signal TEXT,
			report       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_pair_ts ON analyses(pair, timestamp)`,

		`CREATE TABLE IF NOT EXISTS analysis_failures (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			pair      TEXT NOT NULL,
			kind      TEXT NOT NULL,
			message   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_failures_ts ON analysis_failures(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordAnalysis stores a successful run and returns its id.
func (r *SQLiteRecorder) RecordAnalysis(a *model.Analysis) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	c := a.Classification
	_, err := r.db.Exec(`INSERT INTO analyses
		(id, timestamp, pair, as_of, dominance, rsi, macd_hist, ma_short, ma_long,
		 crossover, rsi_signal, macd_signal, trend_signal, report)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		id, time.Now().UnixMilli(), a.Pair.Name, c.Time.UnixMilli(),
		c.Dominance, c.RSI, c.MACDHist, c.MAShort, c.MALong,
		string(c.Crossover), string(c.RSISignal), string(c.MACDSignal), string(c.TrendSignal),
		strings.Join(a.Report, "\n"),
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// RecordFailure stores a failed run.
func (r *SQLiteRecorder) RecordFailure(pair model.Pair, failure error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO analysis_failures (timestamp, pair, kind, message) VALUES (?,?,?,?)`,
		time.Now().UnixMilli(), pair.Name, FailureKind(failure), failure.Error(),
	)
	return err
}

// RecentAnalyses returns up to limit runs for pair, newest first.
func (r *SQLiteRecorder) RecentAnalyses(pair string, limit int) ([]AnalysisRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT id, timestamp, pair, as_of, dominance, rsi, macd_hist, ma_short, ma_long,
			crossover, rsi_signal, macd_signal, trend_signal, report
		FROM analyses WHERE pair = ? ORDER BY timestamp DESC, rowid DESC LIMIT ?`, pair, limit)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	var out []AnalysisRecord
	for rows.Next() {
		var (
			rec                                  AnalysisRecord
			recordedAt, asOf                     int64
			crossover, rsiSig, macdSig, trendSig string
			report                               string
		)
		if err := rows.Scan(&rec.ID, &recordedAt, &rec.Pair, &asOf, &rec.Dominance, &rec.RSI, &rec.MACDHist,
			&rec.MAShort, &rec.MALong, &crossover, &rsiSig, &macdSig, &trendSig, &report); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		rec.RecordedAt = time.UnixMilli(recordedAt)
		rec.AsOf = time.UnixMilli(asOf).UTC()
		rec.Crossover = model.CrossoverState(crossover)
		rec.RSISignal = model.RSISignal(rsiSig)
		rec.MACDSignal = model.MACDSignal(macdSig)
		rec.TrendSignal = model.TrendSignal(trendSig)
		if report != "" {
			rec.Report = model.Report(strings.Split(report, "\n"))
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
