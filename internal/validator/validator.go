package validator

import "fmt"

// booleanFields lists the fields whose value must be a JSON boolean
var booleanFields = map[string]bool{
	"industry_connected": true,
}

// Validate checks that every required field of record is present and, for
// boolean fields, holds a boolean. It returns nil when the record is valid.
// Fields that are not listed are optional and left unchecked.
func Validate(record map[string]interface{}, required ...string) []string {
	var errs []string
	for _, field := range required {
		value, ok := record[field]
		if !ok || value == nil {
			errs = append(errs, fmt.Sprintf("%s is required", field))
			continue
		}
		if booleanFields[field] {
			if _, isBool := value.(bool); !isBool {
				errs = append(errs, fmt.Sprintf("%s should be a boolean", field))
			}
		}
	}
	return errs
}
