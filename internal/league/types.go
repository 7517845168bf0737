package league

import (
	"database/sql"
	"sync"
)

// store handles all database operations for the league.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
