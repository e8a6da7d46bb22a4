package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// jsonbValue and jsonbScan back the driver.Valuer / sql.Scanner
// implementations on checklist and payload structs stored in JSONB columns.

func jsonbValue(v any) (driver.Value, error) {
	return json.Marshal(v)
}

func jsonbScan(dest any, value any) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("jsonb scan failed, expected []byte but got %T", value)
	}
	return json.Unmarshal(b, dest)
}
