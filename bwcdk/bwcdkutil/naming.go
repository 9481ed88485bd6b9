package bwcdkutil

import (
	"fmt"

	"github.com/aws/constructs-go/constructs/v10"
	"github.com/iancoleman/strcase"
)

// Casing specifies how to format the identifier string.
type Casing int

const (
	// CasingCamel formats as CamelCase (e.g., "BwtasksStagApiGateway").
	CasingCamel Casing = iota
	// CasingLowerCamel formats as lowerCamelCase (e.g., "bwtasksStagApiGateway").
	CasingLowerCamel
	// CasingSnake formats as snake_case (e.g., "bwtasks_stag_api_gateway").
	CasingSnake
	// CasingScreamingSnake formats as SCREAMING_SNAKE_CASE (e.g., "BWTASKS_STAG_API_GATEWAY").
	CasingScreamingSnake
	// CasingKebab formats as kebab-case (e.g., "bwtasks-stag-api-gateway").
	CasingKebab
	// CasingScreamingKebab formats as SCREAMING-KEBAB-CASE (e.g., "BWTASKS-STAG-API-GATEWAY").
	CasingScreamingKebab
)

// ResourceName generates a resource identifier prefixed with the stack's qualifier
// and deployment identifier. The label is a free-form string that the caller provides.
//
// The format is: "{qualifier}-{deploymentIdent}-{label}" converted to the specified casing.
//
// Outside a deployment stack the format is: "{qualifier}-{label}".
//
// Examples with qualifier "bwtasks", deployment "Stag", label "ApiGateway":
//   - CasingCamel:          "BwtasksStagApiGateway"
//   - CasingLowerCamel:     "bwtasksStagApiGateway"
//   - CasingSnake:          "bwtasks_stag_api_gateway"
//   - CasingScreamingSnake: "BWTASKS_STAG_API_GATEWAY"
//   - CasingKebab:          "bwtasks-stag-api-gateway"
//   - CasingScreamingKebab: "BWTASKS-STAG-API-GATEWAY"
func ResourceName(scope constructs.Construct, label string, casing Casing) string {
	qualifier := Qualifier(scope)
	deploymentIdent := DeploymentIdent(scope)

	var base string
	if deploymentIdent != "" {
		base = fmt.Sprintf("%s-%s-%s", qualifier, deploymentIdent, label)
	} else {
		base = fmt.Sprintf("%s-%s", qualifier, label)
	}

	return applyCasing(base, casing)
}

func applyCasing(s string, casing Casing) string {
	switch casing {
	case CasingCamel:
		return strcase.ToCamel(s)
	case CasingLowerCamel:
		return strcase.ToLowerCamel(s)
	case CasingSnake:
		return strcase.ToSnake(s)
	case CasingScreamingSnake:
		return strcase.ToScreamingSnake(s)
	case CasingKebab:
		return strcase.ToKebab(s)
	case CasingScreamingKebab:
		return strcase.ToScreamingKebab(s)
	default:
		return strcase.ToCamel(s)
	}
}
