package health

import (
	"fmt"
	"reflect"
	"strings"

	"inventory-sync/core/database"

	"gorm.io/gorm"
)

// SchemaReport is the result of comparing a model against its table.
type SchemaReport struct {
	Table          string   `json:"table"`
	Matched        bool     `json:"matched"`
	MissingColumns []string `json:"missing_columns"`
	Error          string   `json:"error,omitempty"`
}

// CheckSchema verifies the table behind model exposes every column named in
// the model's gorm tags.
func CheckSchema(db *gorm.DB, model any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	tabler, ok := reflect.New(t).Interface().(interface{ TableName() string })
	if !ok {
		return nil, fmt.Errorf("model %s does not implement TableName", t.Name())
	}

	report := &SchemaReport{
		Table:          tabler.TableName(),
		Matched:        true,
		MissingColumns: []string{},
	}

	missing, err := database.MissingColumns(db, report.Table, modelColumns(t)...)
	if err != nil {
		report.Matched = false
		report.Error = err.Error()
		return report, nil
	}
	if len(missing) > 0 {
		report.Matched = false
		report.MissingColumns = missing
	}
	return report, nil
}

func modelColumns(t reflect.Type) []string {
	var cols []string
	for i := 0; i < t.NumField(); i++ {
		if col := parseGormColumn(t.Field(i).Tag.Get("gorm")); col != "" {
			cols = append(cols, col)
		}
	}
	return cols
}

func parseGormColumn(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}
