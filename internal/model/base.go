package model

import "time"

type BaseModel struct {
	ID        string    `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Now is the timestamp stored on writes, truncated to the database's microsecond
// precision so values read back compare equal to what was written.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
