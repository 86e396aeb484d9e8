package itembank

// bankSchema is the JSON schema an item-bank file must satisfy. Psychometric
// constraints beyond the schema's reach (positive discrimination bounds,
// known domain tags) are enforced by the loader after parsing.
var bankSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name": map[string]any{
			"type":        "string",
			"description": "Human-readable bank name",
		},
		"items": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":      "string",
						"minLength": 1,
					},
					"discrimination": map[string]any{
						"type":             "number",
						"exclusiveMinimum": 0,
					},
					"difficulty": map[string]any{
						"type":    "number",
						"minimum": -4.0,
						"maximum": 4.0,
					},
					"domain": map[string]any{
						"type":      "string",
						"minLength": 1,
					},
				},
				"required":             []any{"id", "discrimination", "difficulty", "domain"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"items"},
	"additionalProperties": false,
}
