package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrRecordNotFound = errors.New("store: record not found")
	ErrRecordExists   = errors.New("store: record already exists")
	ErrNotOwner       = errors.New("store: caller does not own the record")
	ErrUnknownDriver  = errors.New("store: unknown driver")
)

// Record is the persisted form of a tournament. Nested structures are JSON strings.
type Record struct {
	ID              string `json:"id"`
	OwnerID         string `json:"owner_id"`
	Name            string `json:"name"`
	Settings        string `json:"settings"`
	Levels          string `json:"levels"`
	PayoutStructure string `json:"payout_structure"`
	Players         string `json:"players"`
	State           string `json:"state"`
	CreatedAt       int64  `json:"created_at"`
	UpdatedAt       int64  `json:"updated_at"`
}

// RecordPatch is a partial update; nil fields are left untouched.
type RecordPatch struct {
	Name            *string `json:"name,omitempty"`
	Settings        *string `json:"settings,omitempty"`
	Levels          *string `json:"levels,omitempty"`
	PayoutStructure *string `json:"payout_structure,omitempty"`
	Players         *string `json:"players,omitempty"`
	State           *string `json:"state,omitempty"`
}

func (p RecordPatch) Apply(rec *Record) {
	if p.Name != nil {
		rec.Name = *p.Name
	}
	if p.Settings != nil {
		rec.Settings = *p.Settings
	}
	if p.Levels != nil {
		rec.Levels = *p.Levels
	}
	if p.PayoutStructure != nil {
		rec.PayoutStructure = *p.PayoutStructure
	}
	if p.Players != nil {
		rec.Players = *p.Players
	}
	if p.State != nil {
		rec.State = *p.State
	}
}

// PatchFromRecord builds a patch that overwrites every mutable field.
func PatchFromRecord(rec Record) RecordPatch {
	return RecordPatch{
		Name:            &rec.Name,
		Settings:        &rec.Settings,
		Levels:          &rec.Levels,
		PayoutStructure: &rec.PayoutStructure,
		Players:         &rec.Players,
		State:           &rec.State,
	}
}

type Store interface {
	Create(ctx context.Context, rec Record) (*Record, error)
	Update(ctx context.Context, id string, patch RecordPatch) error
	Get(ctx context.Context, id string) (*Record, error)
}

// CheckOwner rejects access to records owned by someone else. Records without an owner are public.
func CheckOwner(rec *Record, ownerID string) error {
	if rec.OwnerID == "" || rec.OwnerID == ownerID {
		return nil
	}
	return ErrNotOwner
}

func prepareCreate(rec Record) Record {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	return rec
}
