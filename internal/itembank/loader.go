package itembank

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/gioe/quotient/internal/blueprint"
)

// Bank is a named set of calibrated items loaded from a bank file.
type Bank struct {
	Name  string
	Items []Calibrated
}

// bankFile mirrors the on-disk JSON layout.
type bankFile struct {
	Name  string `json:"name"`
	Items []struct {
		ID             string  `json:"id"`
		Discrimination float64 `json:"discrimination"`
		Difficulty     float64 `json:"difficulty"`
		Domain         string  `json:"domain"`
	} `json:"items"`
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// compiledBankSchema compiles the bank schema once and caches it.
func compiledBankSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value (any), not raw
		// bytes. Marshal then unmarshal to get a clean any representation.
		raw, err := json.Marshal(bankSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal bank schema: %w", err)
			return
		}
		var parsed any
		if err := json.Unmarshal(raw, &parsed); err != nil {
			compileErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://item-bank.json"
		if err := c.AddResource(schemaURL, parsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

// Parse validates raw bank JSON against the schema and checks every item
// against the blueprint. Duplicate item ids and unknown domain tags fail.
func Parse(raw []byte, reg *blueprint.Registry) (*Bank, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid bank JSON: %w", err)
	}

	schema, err := compiledBankSchema()
	if err != nil {
		return nil, fmt.Errorf("compile bank schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("bank schema validation failed: %w", err)
	}

	var bf bankFile
	if err := json.Unmarshal(raw, &bf); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}

	bank := &Bank{Name: bf.Name, Items: make([]Calibrated, 0, len(bf.Items))}
	seen := make(map[string]bool, len(bf.Items))
	for _, it := range bf.Items {
		if seen[it.ID] {
			return nil, fmt.Errorf("duplicate item id %q", it.ID)
		}
		seen[it.ID] = true
		if !reg.Has(it.Domain) {
			return nil, fmt.Errorf("item %q: %w", it.ID, &blueprint.UnknownDomainError{Tag: it.Domain})
		}
		bank.Items = append(bank.Items, Calibrated{
			ItemID: it.ID,
			A:      it.Discrimination,
			B:      it.Difficulty,
			Tag:    it.Domain,
		})
	}
	return bank, nil
}

// Load reads and parses a bank file from disk.
func Load(path string, reg *blueprint.Registry) (*Bank, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank file: %w", err)
	}
	bank, err := Parse(raw, reg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bank, nil
}

// Pool returns the bank's items as the interface slice the selector consumes.
func (b *Bank) Pool() []Item {
	pool := make([]Item, len(b.Items))
	for i, it := range b.Items {
		pool[i] = it
	}
	return pool
}
