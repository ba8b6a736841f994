package analysis

import (
	"embed"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/yanqian/stylecast/internal/domain/language"
)

//go:embed fixtures/*.json
var fixtureFS embed.FS

// internalFlag marks fixture documents and never reaches clients.
const internalFlag = "useDummy"

// Fixture returns the canned result for (kind, descriptive, lang), falling
// back to the Korean document when no localized one exists.
func Fixture(kind Kind, descriptive bool, lang string) (Result, error) {
	name := promptName(kind, descriptive)
	raw, err := fixtureFS.ReadFile(fmt.Sprintf("fixtures/%s_%s.json", name, language.Normalize(lang)))
	if err != nil {
		raw, err = fixtureFS.ReadFile(fmt.Sprintf("fixtures/%s_%s.json", name, language.Default))
	}
	if err != nil {
		return nil, fmt.Errorf("load fixture %s: %w", name, err)
	}
	return stripInternalFlag(raw)
}

// stripInternalFlag removes the flag member in place so the rest of the
// document keeps its original bytes and key order.
func stripInternalFlag(raw []byte) (Result, error) {
	if !gjson.ValidBytes(raw) {
		return nil, errors.New("decode fixture: invalid json")
	}
	out, err := sjson.DeleteBytes(raw, internalFlag)
	if err != nil {
		return nil, fmt.Errorf("strip fixture flag: %w", err)
	}
	return out, nil
}
