package store

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed schema.cue
var schemaCUE string

// schema validates backing file documents against #TaskList.
type schema struct {
	ctx      *cue.Context
	taskList cue.Value
}

func newSchema() (*schema, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	taskList := v.LookupPath(cue.ParsePath("#TaskList"))
	if err := taskList.Err(); err != nil {
		return nil, fmt.Errorf("lookup #TaskList: %w", err)
	}
	return &schema{ctx: ctx, taskList: taskList}, nil
}

// validate checks a JSON document. filename is only used in error positions.
func (s *schema) validate(filename string, doc []byte) error {
	expr, err := cuejson.Extract(filename, doc)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	v := s.ctx.BuildExpr(expr)
	if err := v.Err(); err != nil {
		return fmt.Errorf("build: %w", err)
	}
	if err := s.taskList.Unify(v).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}
