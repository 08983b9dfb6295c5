// Package precision holds the mixed-precision collaborators: the gradient
// scaler's option surface and the nested autocast frame stack.
package precision
