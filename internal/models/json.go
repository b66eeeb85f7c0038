package models

import (
	"database/sql/driver"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// RawJSON stores the verbatim classifier response body on Analysis rows.
// It wraps gorm.io/datatypes.JSON so the column type can be mapped per driver.
type RawJSON struct {
	datatypes.JSON
}

// NewRawJSON wraps a raw response body for persistence. A nil body stores
// SQL NULL rather than an empty JSON document.
func NewRawJSON(body []byte) RawJSON {
	return RawJSON{JSON: datatypes.JSON(body)}
}

func (j RawJSON) Value() (driver.Value, error) {
	return j.JSON.Value()
}

func (j *RawJSON) Scan(value interface{}) error {
	return j.JSON.Scan(value)
}

// GormDBDataType picks a native JSON column where the driver has one.
// MSSQL has no json type, so it falls back to NVARCHAR(MAX).
func (RawJSON) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	case "sqlite":
		return "JSON"
	}
	return "TEXT"
}
