package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/kirari-dev/streamtycoon/tycoon/database/models"
	"github.com/kirari-dev/streamtycoon/tycoon/logger"
)

var (
	ErrNoSave      = errors.New("no save in slot")
	ErrCorruptSave = errors.New("save data is corrupt")
)

// DefaultSlot is the slot single-profile shells use.
const DefaultSlot = "default"

type SaveRepository interface {
	Save(ctx context.Context, slot string, state any) error
	Load(ctx context.Context, slot string, out any) error
	Info(ctx context.Context, slot string) (*models.Save, error)
	Exists(ctx context.Context, slot string) (bool, error)
	Delete(ctx context.Context, slot string) error
}

type saveRepository struct {
	db *bun.DB
}

func NewSaveRepository(db *bun.DB) SaveRepository {
	return &saveRepository{db: db}
}

// Save upserts the serialized state into the slot.
func (r *saveRepository) Save(ctx context.Context, slot string, state any) error {
	start := time.Now()

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize save: %w", err)
	}
	now := time.Now().UTC()
	save := &models.Save{
		Slot:      slot,
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = r.db.NewInsert().
		Model(save).
		On("CONFLICT (slot) DO UPDATE").
		Set("data = EXCLUDED.data").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)

	logger.LogQuery("upsert save", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to write save: %w", err)
	}
	return nil
}

// Load reads the slot into out. Returns ErrNoSave when the slot is empty
// and ErrCorruptSave when the stored JSON no longer parses.
func (r *saveRepository) Load(ctx context.Context, slot string, out any) error {
	save, err := r.Info(ctx, slot)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(save.Data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	return nil
}

// Info fetches the raw save row without decoding it.
func (r *saveRepository) Info(ctx context.Context, slot string) (*models.Save, error) {
	start := time.Now()

	save := new(models.Save)
	err := r.db.NewSelect().
		Model(save).
		Where("slot = ?", slot).
		Scan(ctx)

	logger.LogQuery("select save", time.Since(start), err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNoSave, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read save: %w", err)
	}
	return save, nil
}

func (r *saveRepository) Exists(ctx context.Context, slot string) (bool, error) {
	n, err := r.db.NewSelect().
		Model((*models.Save)(nil)).
		Where("slot = ?", slot).
		Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check save: %w", err)
	}
	return n > 0, nil
}

func (r *saveRepository) Delete(ctx context.Context, slot string) error {
	start := time.Now()

	_, err := r.db.NewDelete().
		Model((*models.Save)(nil)).
		Where("slot = ?", slot).
		Exec(ctx)

	logger.LogQuery("delete save", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to delete save: %w", err)
	}
	return nil
}
