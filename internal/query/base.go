package query

import (
	"encoding/binary"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is embedded by every persisted resource. ID is the public identifier;
// InternalID is monotonic and is the only column rows are ordered by.
type Base struct {
	InternalID int64 `gorm:"column:internal_id;primaryKey;autoIncrement" json:"-"`
	ID         int64 `gorm:"column:id;uniqueIndex;not null" json:"id"`
	CreatedAt  int64 `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  int64 `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (b Base) GetID() int64 {
	return b.ID
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == 0 {
		b.ID = NewID()
	}
	return nil
}

// NewID returns a random positive integer that fits in 53 bits, so it survives
// a round trip through JavaScript numbers.
func NewID() int64 {
	for {
		u := uuid.New()
		if id := int64(binary.BigEndian.Uint64(u[:8]) >> 11); id != 0 {
			return id
		}
	}
}
