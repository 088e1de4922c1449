// Generate the Go bindings and the schema descriptor set.
//
// Run from the repository root so the schema paths resolve:
//
//	go generate .
package tensorbored

//go:generate go run ./cmd/genprotos .
