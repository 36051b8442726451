package games

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"

	domaingames "github.com/preston-bernstein/game-library-service/internal/domain/games"
)

var (
	//go:embed schema/new_game.schema.json
	newGameSchema []byte
	//go:embed schema/game_patch.schema.json
	gamePatchSchema []byte
)

// fieldOrder keeps validation messages in form order.
var fieldOrder = map[string]int{
	"title":       0,
	"description": 1,
	"category":    2,
	"imageUrl":    3,
	"downloadUrl": 4,
	"fileSize":    5,
	"releaseDate": 6,
	"featured":    7,
}

type validator struct {
	create *gojsonschema.Schema
	patch  *gojsonschema.Schema
}

func newValidator() (*validator, error) {
	create, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(newGameSchema))
	if err != nil {
		return nil, fmt.Errorf("load new game schema: %w", err)
	}
	patch, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(gamePatchSchema))
	if err != nil {
		return nil, fmt.Errorf("load game patch schema: %w", err)
	}
	return &validator{create: create, patch: patch}, nil
}

// mustValidator panics only if the embedded schemas are malformed.
func mustValidator() *validator {
	v, err := newValidator()
	if err != nil {
		panic(err)
	}
	return v
}

// ValidateNew checks that every required field of in is present. Empty
// strings count as missing.
func (v *validator) ValidateNew(in domaingames.NewGame) error {
	doc := map[string]any{"featured": in.Featured}
	text := map[string]string{
		"title":       in.Title,
		"description": in.Description,
		"category":    in.Category,
		"imageUrl":    in.ImageURL,
		"downloadUrl": in.DownloadURL,
		"fileSize":    in.FileSize,
		"releaseDate": in.ReleaseDate,
	}
	for k, val := range text {
		if val != "" {
			doc[k] = val
		}
	}
	return run(v.create, doc)
}

// ValidatePatch checks that every text field set on p is non-empty.
func (v *validator) ValidatePatch(p domaingames.Patch) error {
	doc := map[string]any{}
	put := func(k string, f domaingames.Field[string]) {
		if f.Set {
			doc[k] = f.Value
		}
	}
	put("title", p.Title)
	put("description", p.Description)
	put("category", p.Category)
	put("imageUrl", p.ImageURL)
	put("downloadUrl", p.DownloadURL)
	put("fileSize", p.FileSize)
	put("releaseDate", p.ReleaseDate)
	if p.Featured.Set {
		doc["featured"] = p.Featured.Value
	}
	return run(v.patch, doc)
}

func run(schema *gojsonschema.Schema, doc map[string]any) error {
	res, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if res.Valid() {
		return nil
	}
	type problem struct {
		field string
		msg   string
	}
	problems := make([]problem, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		field := e.Field()
		var msg string
		switch e.Type() {
		case "required":
			if p, ok := e.Details()["property"].(string); ok {
				field = p
			}
			msg = field + " is required"
		case "string_gte":
			msg = field + " must not be empty"
		default:
			msg = field + ": " + e.Description()
		}
		problems = append(problems, problem{field: field, msg: msg})
	}
	sort.SliceStable(problems, func(i, j int) bool {
		return fieldOrder[problems[i].field] < fieldOrder[problems[j].field]
	})
	msgs := make([]string, len(problems))
	for i, p := range problems {
		msgs[i] = p.msg
	}
	return domaingames.NewValidationError(msgs...)
}
