// Package routertool exposes the routing engine as llmtools-go tools
// so an agent loop can match and compose skills directly.
package routertool

import (
	"context"
	"errors"

	"github.com/flexigpt/llmtools-go"
	llmtoolsgoSpec "github.com/flexigpt/llmtools-go/spec"

	"github.com/flexigpt/skillrouter-go/spec"
)

const (
	FuncIDSkillsRoute llmtoolsgoSpec.FuncID = "github.com/flexigpt/skillrouter-go/routertool.Route"
	FuncIDSkillsList  llmtoolsgoSpec.FuncID = "github.com/flexigpt/skillrouter-go/routertool.List"
)

// Register registers the router tools into an existing llmtools-go
// Registry. The router is bound by closure.
func Register(r *llmtools.Registry, router spec.Router) error {
	if r == nil {
		return errors.New("nil registry")
	}
	if router == nil {
		return errors.New("nil router")
	}

	// "skills.route" -> typed -> text output (JSON).
	if err := llmtools.RegisterTypedAsTextTool[spec.RouteArgs, spec.RouteResult](
		r,
		SkillsRouteTool(),
		func(ctx context.Context, args spec.RouteArgs) (spec.RouteResult, error) {
			return router.Route(ctx, args.Request)
		},
	); err != nil {
		return err
	}

	// "skills.list" -> typed -> text output (JSON).
	if err := llmtools.RegisterTypedAsTextTool[spec.ListSkillsArgs, spec.ListSkillsResult](
		r,
		SkillsListTool(),
		func(ctx context.Context, _ spec.ListSkillsArgs) (spec.ListSkillsResult, error) {
			if err := ctx.Err(); err != nil {
				return spec.ListSkillsResult{}, err
			}
			return spec.ListSkillsResult{Skills: router.ListSkills()}, nil
		},
	); err != nil {
		return err
	}

	return nil
}

func Tools() []llmtoolsgoSpec.Tool {
	return []llmtoolsgoSpec.Tool{
		SkillsRouteTool(),
		SkillsListTool(),
	}
}

func SkillsRouteTool() llmtoolsgoSpec.Tool {
	return llmtoolsgoSpec.Tool{
		SchemaVersion: llmtoolsgoSpec.SchemaVersion,
		ID:            "019c41b7-5a20-7c11-8e02-aa41c09d3d01",
		Slug:          "skills.route",
		Version:       "v1.0.0",
		DisplayName:   "Skills Route",
		Description:   "Match a request against the skill registry and return merged guidance plus conflict advisories.",
		Tags:          []string{"skills"},
		ArgSchema: llmtoolsgoSpec.JSONSchema(`{
		  "$schema":"http://json-schema.org/draft-07/schema#",
		  "type":"object",
		  "properties":{
		    "request":{"type":"string","description":"The user request text to route."}
		  },
		  "required":["request"],
		  "additionalProperties":false
		}`),
		GoImpl:     llmtoolsgoSpec.GoToolImpl{FuncID: FuncIDSkillsRoute},
		CreatedAt:  llmtoolsgoSpec.SchemaStartTime,
		ModifiedAt: llmtoolsgoSpec.SchemaStartTime,
	}
}

func SkillsListTool() llmtoolsgoSpec.Tool {
	return llmtoolsgoSpec.Tool{
		SchemaVersion: llmtoolsgoSpec.SchemaVersion,
		ID:            "019c41b7-5a20-7c11-8e02-aa41c09d3d02",
		Slug:          "skills.list",
		Version:       "v1.0.0",
		DisplayName:   "Skills List",
		Description:   "List all registered skills with their trigger descriptions.",
		Tags:          []string{"skills"},
		ArgSchema: llmtoolsgoSpec.JSONSchema(`{
		  "$schema":"http://json-schema.org/draft-07/schema#",
		  "type":"object",
		  "properties":{},
		  "additionalProperties":false
		}`),
		GoImpl:     llmtoolsgoSpec.GoToolImpl{FuncID: FuncIDSkillsList},
		CreatedAt:  llmtoolsgoSpec.SchemaStartTime,
		ModifiedAt: llmtoolsgoSpec.SchemaStartTime,
	}
}
