package store

// dialect holds the statements that differ between PostgreSQL and SQLite:
// identity columns, identity reset, and parameter placeholders. Every string
// takes the table name via fmt.Sprintf; the table name is validated as a bare
// identifier before it ever reaches one of these.
type dialect struct {
	createTable string
	reset       []string // run inside the ReplaceAll transaction, before inserts
	insert      string
	searchTitle string
}

var postgresDialect = dialect{
	createTable: `CREATE TABLE IF NOT EXISTS %s (
		id         SERIAL PRIMARY KEY,
		title      VARCHAR(255) NOT NULL,
		employer   VARCHAR(255),
		salary     BIGINT,
		currency   VARCHAR(5),
		rate       REAL,
		url        TEXT,
		date_added DATE
	)`,
	reset: []string{
		`TRUNCATE TABLE %s RESTART IDENTITY`,
	},
	insert: `INSERT INTO %s (title, employer, salary, currency, rate, url, date_added)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
	searchTitle: `SELECT title, employer, salary, currency, url, date_added
		FROM %s WHERE title LIKE $1 ESCAPE '\'`,
}

var sqliteDialect = dialect{
	createTable: `CREATE TABLE IF NOT EXISTS %s (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		title      VARCHAR(255) NOT NULL,
		employer   VARCHAR(255),
		salary     BIGINT,
		currency   VARCHAR(5),
		rate       REAL,
		url        TEXT,
		date_added DATE
	)`,
	// SQLite has no TRUNCATE; the sqlite_sequence row resets the identity.
	reset: []string{
		`DELETE FROM %s`,
		`DELETE FROM sqlite_sequence WHERE name = '%s'`,
	},
	insert: `INSERT INTO %s (title, employer, salary, currency, rate, url, date_added)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
	searchTitle: `SELECT title, employer, salary, currency, url, date_added
		FROM %s WHERE title LIKE ? ESCAPE '\'`,
}
