// Package schema reads declarative form definitions and builds live forms
// from them.
//
// Documents are JSON or YAML files of the shape
//
//	forms:
//	  signup:
//	    errorOn: [error]
//	    fields:
//	      - name: email
//	        type: string
//	        required: true
//	        rules:
//	          - kind: email
//
// Definitions can also be derived from the request body of an OpenAPI 3
// operation with FromOpenAPI.
package schema
