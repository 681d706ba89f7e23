// Package compiler drives the refetch transform over a project: it discovers
// compilation units, parses each one, rewrites every refetchable fragment it
// finds, and reports typed violations instead of stopping at the first
// problem.
package compiler

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vektah/gqlparser/v2/gqlerror"

	language "github.com/BigsonLvrocha/relay/internal/language"
	"github.com/BigsonLvrocha/relay/internal/printer"
	"github.com/BigsonLvrocha/relay/internal/refetch"
)

// Output is one synthesized refetch query, printed and ready to write out.
type Output struct {
	Unit         string
	FragmentName string
	QueryName    string
	Source       string
}

// Result aggregates a whole compile run. Outputs and Violations can both be
// non-empty: a failing fragment never blocks its siblings, and a failing
// unit never blocks other units.
type Result struct {
	Outputs    []*Output
	Violations refetch.ValidationError
}

// Err returns the run's violations as a single error, or nil.
func (r *Result) Err() error {
	if len(r.Violations) == 0 {
		return nil
	}
	return r.Violations
}

// Compile transforms every refetchable fragment of every unit disc lists.
// Units are independent compilations: fragments resolve only within their
// own unit, and each transform sees the unit's pristine parse.
func Compile(ctx context.Context, disc Discovery) (*Result, error) {
	tracer := otel.Tracer("relayc")

	units, err := disc.ListUnits(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, unit := range units {
		ctx, span := tracer.Start(ctx, "compile.unit",
			trace.WithAttributes(attribute.String("graphql.unit", unit.Name)))
		compileUnit(ctx, tracer, disc, unit, result)
		span.End()
	}
	return result, nil
}

func compileUnit(ctx context.Context, tracer trace.Tracer, disc Discovery, unit *UnitMetadata, result *Result) {
	source, err := disc.ReadUnitSource(ctx, unit.Name)
	if err != nil {
		result.Violations = append(result.Violations, &refetch.Violation{
			Code:    refetch.CodeSyntaxError,
			Message: err.Error(),
			File:    unit.FilePath,
		})
		return
	}
	doc, err := language.ParseQuery(unit.Name, source)
	if err != nil {
		result.Violations = append(result.Violations, syntaxViolation(unit, err))
		return
	}

	// Duplicate fragment names are a structural defect of the whole unit.
	if _, err := refetch.IndexFragments(doc); err != nil {
		var vio *refetch.Violation
		if errors.As(err, &vio) {
			result.Violations = append(result.Violations, vio)
		}
		return
	}

	for _, fragment := range doc.Fragments {
		if !refetch.IsRefetchable(fragment) {
			continue
		}
		_, span := tracer.Start(ctx, "compile.fragment",
			trace.WithAttributes(attribute.String("graphql.fragment", fragment.Name)))
		out, err := refetch.Transform(doc, fragment.Name)
		if err != nil {
			span.RecordError(err)
			span.End()
			var vio *refetch.Violation
			if !errors.As(err, &vio) {
				vio = &refetch.Violation{
					Code:    refetch.CodeSyntaxError,
					Message: err.Error(),
					File:    unit.FilePath,
				}
			}
			result.Violations = append(result.Violations, vio)
			// A structural defect taints every fragment in the unit.
			if refetch.ClassOf(vio.Code) == refetch.StructuralError {
				return
			}
			continue
		}
		meta, _ := refetch.QueryMetadataOf(out.Operations[0])
		result.Outputs = append(result.Outputs, &Output{
			Unit:         unit.Name,
			FragmentName: fragment.Name,
			QueryName:    out.Operations[0].Name,
			Source:       printer.Print(out),
		})
		span.SetAttributes(attribute.String("graphql.query", out.Operations[0].Name),
			attribute.String("graphql.refetched_fragment", meta.FragmentName))
		span.End()
	}
}

func syntaxViolation(unit *UnitMetadata, err error) *refetch.Violation {
	vio := &refetch.Violation{
		Code:    refetch.CodeSyntaxError,
		Message: err.Error(),
		File:    unit.FilePath,
	}
	var gqlErr *gqlerror.Error
	if errors.As(err, &gqlErr) && len(gqlErr.Locations) > 0 {
		vio.Message = gqlErr.Message
		vio.Line = gqlErr.Locations[0].Line
		vio.Column = gqlErr.Locations[0].Column
	}
	return vio
}
