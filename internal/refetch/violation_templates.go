package refetch

import (
	"fmt"

	language "github.com/BigsonLvrocha/relay/internal/language"
)

// Reusable violation constructors (template helpers)
// NOTE: Keep messages stable to avoid breaking golden tests.

func violationDuplicateFragmentName(name string, pos *language.Position) *Violation {
	return violationWithPosition(
		CodeDuplicateFragmentName,
		fmt.Sprintf("Fragment %q declared more than once in the compilation unit", name),
		pos,
	)
}

func violationMalformedArgumentDefinitions(fragment, detail string, pos *language.Position) *Violation {
	return violationWithPosition(
		CodeMalformedArgumentDefinitions,
		fmt.Sprintf("Malformed @argumentDefinitions on fragment %q: %s", fragment, detail),
		pos,
	)
}

func violationMissingQueryName(fragment string, pos *language.Position) *Violation {
	return violationWithPosition(
		CodeMissingQueryName,
		fmt.Sprintf("@refetchable on fragment %q requires exactly one string argument 'queryName'", fragment),
		pos,
	)
}

func violationCyclicFragmentReference(fragment, target string, pos *language.Position) *Violation {
	return violationWithPosition(
		CodeCyclicFragmentReference,
		fmt.Sprintf("Fragment %q spreads %q, closing a reference cycle", fragment, target),
		pos,
	)
}

func violationArgumentTypeConflict(variable, typeA, typeB string, pos *language.Position) *Violation {
	return violationWithPosition(
		CodeArgumentTypeConflict,
		fmt.Sprintf("Variable $%s would be declared with incompatible types %q and %q", variable, typeA, typeB),
		pos,
	)
}

func violationUnrecognizedRefetchableRoot(fragment, typeCondition string, pos *language.Position) *Violation {
	return violationWithPosition(
		CodeUnrecognizedRefetchableRoot,
		fmt.Sprintf("Fragment %q is on type %q, which maps to no known refetch root", fragment, typeCondition),
		pos,
	)
}

func violationUndeterminedVariableType(variable, fragment string, pos *language.Position) *Violation {
	return violationWithPosition(
		CodeUndeterminedVariableType,
		fmt.Sprintf("No type can be determined for variable $%s used in fragment %q", variable, fragment),
		pos,
	)
}

func violationUndefinedFragment(fragment, target string, pos *language.Position) *Violation {
	return violationWithPosition(
		CodeUndefinedFragment,
		fmt.Sprintf("Fragment %q spreads %q, which is not declared in the compilation unit", fragment, target),
		pos,
	)
}

func violationUnknownFragmentArgument(target, arg string, pos *language.Position) *Violation {
	return violationWithPosition(
		CodeUnknownFragmentArgument,
		fmt.Sprintf("@arguments supplies %q, which fragment %q does not declare in @argumentDefinitions", arg, target),
		pos,
	)
}
