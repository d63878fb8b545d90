package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Generator reflects a configuration object into a JSON schema document.
// Uses [github.com/invopop/jsonschema].
type Generator struct {
	obj      any
	id       string
	comments map[string]string // Import path -> source dir, for doc comments.
}

// NewGenerator creates a [Generator] for obj. The comments map associates Go
// import paths with their source directories so field doc comments end up in
// the schema descriptions.
func NewGenerator(obj any, id string, comments map[string]string) *Generator {
	return &Generator{
		obj:      obj,
		id:       id,
		comments: comments,
	}
}

// Generate returns the indented JSON schema for the generator's object.
func (g *Generator) Generate() ([]byte, error) {
	r := &jsonschema.Reflector{
		FieldNameTag: "json",
	}

	for pkg, dir := range g.comments {
		err := r.AddGoComments(pkg, dir)
		if err != nil {
			return nil, fmt.Errorf("add comments for %s: %w", pkg, err)
		}
	}

	jss := r.Reflect(g.obj)
	jss.ID = jsonschema.ID(g.id)

	b, err := json.MarshalIndent(jss, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return append(b, '\n'), nil
}
