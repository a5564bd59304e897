package export

import "github.com/santhosh-tekuri/jsonschema/v5"

// reportSchema is the contract every serialized item report must satisfy.
// Checked locally before writing; a mismatch is logged, never fatal.
const reportSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["id", "file_name", "processed_at", "validation"],
  "properties": {
    "id": {"type": "string", "minLength": 36, "maxLength": 36},
    "file_name": {"type": "string", "minLength": 1},
    "processed_at": {"type": "string"},
    "error": {"type": "string"},
    "validation": {
      "type": "object",
      "required": ["is_valid", "warnings", "errors", "weight_consistency"],
      "properties": {
        "is_valid": {"type": "boolean"},
        "warnings": {"type": "array", "items": {"type": "string"}},
        "errors": {"type": "array", "items": {"type": "string"}},
        "weight_consistency": {"type": "boolean"},
        "computed_net_weight_kg": {"type": ["number", "null"]}
      }
    },
    "data": {
      "type": ["object", "null"],
      "properties": {
        "gross_weight_kg": {"type": ["number", "null"], "minimum": 0},
        "tare_weight_kg": {"type": ["number", "null"], "minimum": 0},
        "net_weight_kg": {"type": ["number", "null"]},
        "vehicle_number": {"type": ["string", "null"]},
        "measurement_date": {"type": ["string", "null"]},
        "measurement_time": {"type": ["string", "null"]},
        "customer_name": {"type": ["string", "null"]},
        "product_name": {"type": ["string", "null"]},
        "transaction_type": {"type": ["string", "null"]},
        "measurement_id": {"type": ["string", "null"]},
        "location": {"type": ["string", "null"]},
        "raw_text": {"type": "string"},
        "confidence_score": {"type": ["number", "null"], "minimum": 0, "maximum": 1}
      }
    }
  }
}`

var compiledReportSchema = jsonschema.MustCompileString("report.schema.json", reportSchema)
