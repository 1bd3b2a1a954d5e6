package iodb

var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		run_id               TEXT PRIMARY KEY,
		genome               TEXT NOT NULL,
		chromosome           TEXT NOT NULL,
		chrom_length         INTEGER NOT NULL,
		blocks               INTEGER NOT NULL,
		blocks_excluded      INTEGER NOT NULL,
		annotations          INTEGER NOT NULL,
		annotations_excluded INTEGER NOT NULL,
		windows              INTEGER NOT NULL,
		families             INTEGER NOT NULL,
		tested               INTEGER NOT NULL,
		iterations           INTEGER NOT NULL,
		seed                 INTEGER NOT NULL,
		length_model         TEXT NOT NULL,
		window_size          INTEGER NOT NULL,
		threshold            REAL NOT NULL,
		p_adjust_method      TEXT NOT NULL,
		matrix_from_cache    INTEGER NOT NULL,
		saved_at             TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS results (
		run_id      TEXT NOT NULL,
		position    INTEGER NOT NULL,
		family      TEXT NOT NULL,
		superfamily TEXT NOT NULL,
		observed    INTEGER NOT NULL,
		expected    REAL NOT NULL,
		enrichment  REAL NOT NULL,
		p_value     REAL,
		fdr         REAL,
		PRIMARY KEY (run_id, family)
	)`,
	`CREATE INDEX IF NOT EXISTS results_family_idx ON results (family)`,
}
