package joiner

import (
	"github.com/erraggy/oasconsolidate/internal/nodeutil"
	"go.yaml.in/yaml/v4"
)

const errorInfoFallbackYAML = `
type: object
required:
  - message
  - error_code
  - cause
properties:
  message:
    type: string
  error_code:
    type: integer
  details:
    type: string
  cause:
    type: string
`

const odrlPolicyYAML = `
type: object
properties:
  profile:
    oneOf:
      - type: string
      - type: object
      - type: array
        items:
          type: string
  permission:
    type: array
    items:
      $ref: '#/components/schemas/OdrlPermission'
  obligation:
    type: array
    items:
      $ref: '#/components/schemas/OdrlObligation'
  prohibition:
    type: array
    items:
      $ref: '#/components/schemas/OdrlObligation'
`

// ErrorInfoFallback returns a new copy of the ErrorInfo schema installed
// when no source provides one.
func ErrorInfoFallback() *yaml.Node {
	return nodeutil.MustParse(errorInfoFallbackYAML)
}

// OdrlPolicySchema returns a new copy of the ODRL policy schema installed
// as OdrlInfo and OdrlPolicyInfo.
func OdrlPolicySchema() *yaml.Node {
	return nodeutil.MustParse(odrlPolicyYAML)
}
