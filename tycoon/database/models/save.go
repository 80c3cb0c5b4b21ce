package models

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

// Save is one persisted game snapshot. Data holds the serialized game
// state as JSON so the schema never chases the simulation structs.
type Save struct {
	bun.BaseModel `bun:"table:saves"`

	ID        int64           `bun:",pk,autoincrement" json:"id"`
	Slot      string          `bun:",unique,notnull" json:"slot"`
	Data      json.RawMessage `bun:",notnull" json:"data"`
	CreatedAt time.Time       `bun:",nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time       `bun:",nullzero,notnull,default:current_timestamp" json:"updated_at"`
}
