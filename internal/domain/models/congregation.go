// internal/domain/models/congregation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Congregation is an organizational unit with members, settings, schedule,
// and backup data. Member records are not embedded here; users carry a
// cong_id pointing back at this document, and the member list is always
// derived from the users collection so membership checks reflect prior
// writes from the same session.
type Congregation struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CongName    string             `bson:"cong_name" json:"cong_name"`
	CongNumber  int                `bson:"cong_number" json:"cong_number"`
	CountryCode string             `bson:"country_code" json:"country_code"`

	// LastBackup records who performed the most recent backup and when.
	// Nil until the first backup is saved.
	LastBackup *BackupInfo `bson:"last_backup,omitempty" json:"last_backup,omitempty"`

	// Backup payload sections. These are opaque client documents persisted
	// and returned verbatim; the server never inspects them except for the
	// settings extraction in the schedule endpoints.
	CongPersons        any `bson:"cong_persons,omitempty" json:"cong_persons"`
	CongDeleted        any `bson:"cong_deleted,omitempty" json:"cong_deleted"`
	CongSchedule       any `bson:"cong_schedule,omitempty" json:"cong_schedule"`
	CongSourceMaterial any `bson:"cong_source_material,omitempty" json:"cong_sourceMaterial"`
	CongSwsPocket      any `bson:"cong_sws_pocket,omitempty" json:"cong_swsPocket"`
	CongSettings       any `bson:"cong_settings,omitempty" json:"cong_settings"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// BackupInfo is the metadata of the most recent congregation backup.
type BackupInfo struct {
	By   string    `bson:"by" json:"by"`
	Date time.Time `bson:"date" json:"date"`
}

// Backup is the full backup object returned verbatim to verified members.
type Backup struct {
	CongPersons        any `json:"cong_persons"`
	CongDeleted        any `json:"cong_deleted"`
	CongSchedule       any `json:"cong_schedule"`
	CongSourceMaterial any `json:"cong_sourceMaterial"`
	CongSwsPocket      any `json:"cong_swsPocket"`
	CongSettings       any `json:"cong_settings"`
}
